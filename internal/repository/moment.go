// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"momentzero/internal/models"
	"momentzero/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MomentRepository defines persistence operations for accounts and their moments.
type MomentRepository interface {
	CreateWithAccount(ctx context.Context, account *models.Account, moment *models.Moment) error
	UsernameExists(ctx context.Context, username string) (bool, error)
	GetByUsername(ctx context.Context, username string) (*models.MomentView, error)
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
	UpsertByUsername(ctx context.Context, username string, patch models.MomentPatch, defaults models.Moment) (*models.MomentView, error)
	DeleteByUsername(ctx context.Context, username string) error
	DeleteAccount(ctx context.Context, username string) error
	CountPublic(ctx context.Context) (int64, error)
	ListPublic(ctx context.Context, limit, offset int) ([]models.MomentView, error)
	ListUsernames(ctx context.Context) ([]string, error)
}

type momentRepository struct {
	db      *gorm.DB
	log     *observability.RepoLogger
	metrics *observability.DatabaseMetrics
}

// NewMomentRepository returns a new MomentRepository implementation.
func NewMomentRepository(db *gorm.DB) MomentRepository {
	return &momentRepository{
		db:      db,
		log:     observability.NewRepoLogger("moments"),
		metrics: observability.NewDatabaseMetrics("moments"),
	}
}

const viewColumns = "moments.*, accounts.username AS username"

func (r *momentRepository) viewQuery(db *gorm.DB) *gorm.DB {
	return db.Table("moments").
		Select(viewColumns).
		Joins("JOIN accounts ON accounts.id = moments.account_id")
}

func (r *momentRepository) span(ctx context.Context, method string) (context.Context, func(error)) {
	ctx, span := observability.StartRepositorySpan(ctx, r.db.Dialector.Name(), method, "moments")
	done := r.metrics.TrackQuery(method)
	return ctx, func(err error) {
		done()
		observability.EndSpan(span, err)
	}
}

func (r *momentRepository) CreateWithAccount(ctx context.Context, account *models.Account, moment *models.Moment) (err error) {
	ctx, end := r.span(ctx, "create_with_account")
	defer func() { end(err) }()

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(account).Error; err != nil {
			return err
		}
		moment.AccountID = account.ID
		return tx.Create(moment).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError(models.MsgUsernameTaken)
		}
		r.log.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}

	r.log.LogCreate(ctx, map[string]interface{}{
		"username":   account.Username,
		"moment_id":  moment.ID,
		"account_id": account.ID,
	})
	return nil
}

func (r *momentRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	defer r.metrics.TrackQuery("username_exists")()

	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Account{}).Where("username = ?", username).Count(&n).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return n > 0, nil
}

func (r *momentRepository) GetByUsername(ctx context.Context, username string) (view *models.MomentView, err error) {
	ctx, end := r.span(ctx, "get_by_username")
	defer func() { end(err) }()

	var out models.MomentView
	err = r.viewQuery(r.db.WithContext(ctx)).
		Where("accounts.username = ?", username).
		Order("moments.updated_at DESC").
		Take(&out).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Moment", username)
		}
		return nil, models.NewInternalError(err)
	}
	r.log.LogRead(ctx, map[string]interface{}{"username": username})
	return &out, nil
}

func (r *momentRepository) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	defer r.metrics.TrackQuery("get_account")()

	var account models.Account
	if err := r.db.WithContext(ctx).Where("username = ?", username).Take(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Account", username)
		}
		return nil, models.NewInternalError(err)
	}
	return &account, nil
}

func (r *momentRepository) UpsertByUsername(ctx context.Context, username string, patch models.MomentPatch, defaults models.Moment) (view *models.MomentView, err error) {
	ctx, end := r.span(ctx, "upsert_by_username")
	defer func() { end(err) }()

	var out models.MomentView
	created := false
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account models.Account
		if err := tx.Where("username = ?", username).Take(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Account", username)
			}
			return err
		}

		var moment models.Moment
		err := tx.Where("account_id = ?", account.ID).Order("updated_at DESC").Take(&moment).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			moment = defaults
			moment.ID = ""
			moment.AccountID = account.ID
			patch.Apply(&moment)
			if err := tx.Create(&moment).Error; err != nil {
				return err
			}
			created = true
		case err != nil:
			return err
		default:
			patch.Apply(&moment)
			moment.UpdatedAt = time.Now()
			updates := patch.Updates()
			updates["updated_at"] = moment.UpdatedAt
			if err := tx.Model(&moment).Updates(updates).Error; err != nil {
				return err
			}
		}

		out = models.MomentView{Moment: moment, Username: account.Username}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		r.log.LogError(ctx, err, "update")
		return nil, models.NewInternalError(err)
	}

	r.log.LogUpdate(ctx, map[string]interface{}{
		"username":  username,
		"moment_id": out.ID,
		"created":   created,
	})
	return &out, nil
}

func (r *momentRepository) DeleteByUsername(ctx context.Context, username string) (err error) {
	ctx, end := r.span(ctx, "delete_by_username")
	defer func() { end(err) }()

	accountIDs := r.db.WithContext(ctx).Model(&models.Account{}).Select("id").Where("username = ?", username)
	res := r.db.WithContext(ctx).Where("account_id IN (?)", accountIDs).Delete(&models.Moment{})
	if res.Error != nil {
		r.log.LogError(ctx, res.Error, "delete")
		return models.NewInternalError(res.Error)
	}
	r.log.LogDelete(ctx, map[string]interface{}{"username": username, "rows": res.RowsAffected})
	return nil
}

func (r *momentRepository) DeleteAccount(ctx context.Context, username string) (err error) {
	ctx, end := r.span(ctx, "delete_account")
	defer func() { end(err) }()

	res := r.db.WithContext(ctx).Where("username = ?", username).Delete(&models.Account{})
	if res.Error != nil {
		r.log.LogError(ctx, res.Error, "delete_account")
		return models.NewInternalError(res.Error)
	}
	r.log.LogDelete(ctx, map[string]interface{}{"username": username, "account": true, "rows": res.RowsAffected})
	return nil
}

func (r *momentRepository) CountPublic(ctx context.Context) (int64, error) {
	defer r.metrics.TrackQuery("count_public")()

	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Moment{}).Where("is_public = ?", true).Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

func (r *momentRepository) ListPublic(ctx context.Context, limit, offset int) (views []models.MomentView, err error) {
	ctx, end := r.span(ctx, "list_public")
	defer func() { end(err) }()

	views = []models.MomentView{}
	err = r.viewQuery(r.db.WithContext(ctx)).
		Where("moments.is_public = ?", true).
		Order("moments.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&views).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return views, nil
}

func (r *momentRepository) ListUsernames(ctx context.Context) ([]string, error) {
	defer r.metrics.TrackQuery("list_usernames")()

	var usernames []string
	if err := r.db.WithContext(ctx).Model(&models.Account{}).Pluck("username", &usernames).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return usernames, nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
