// Package service holds the business rules for creating, reading, updating and sharing moments.
package service

import (
	"context"
	"strings"
	"time"

	"momentzero/internal/cache"
	"momentzero/internal/countdown"
	"momentzero/internal/featureflags"
	"momentzero/internal/models"
	"momentzero/internal/repository"
	"momentzero/internal/validation"
)

// DemoUsername is reserved for the built-in showcase moment.
const DemoUsername = "demo"

// MomentService applies validation, defaults and the username policy on top of the repository.
type MomentService struct {
	repo  repository.MomentRepository
	index *cache.UsernameIndex
	flags *featureflags.Manager
	now   func() time.Time
}

// CreateMomentInput is the payload for sealing a new moment.
type CreateMomentInput struct {
	Username   string
	Theme      string
	Atmosphere string
	Typography string
	Message    string
	TargetYear *int
	IsPublic   *bool
}

// CreateMomentResult is returned by CreateMoment.
type CreateMomentResult struct {
	Moment   *models.Moment
	Username string
}

// UpdateMomentInput carries the fields an update may change. Nil fields are left as is.
type UpdateMomentInput struct {
	Username   string
	Message    *string
	Theme      *string
	Atmosphere *string
	Typography *string
	IsPublic   *bool
}

// UsernameStatus answers the onboarding availability check.
type UsernameStatus struct {
	Username  string `json:"username"`
	Valid     bool   `json:"valid"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// ShareView is the public permalink payload.
type ShareView struct {
	models.MomentView
	Countdown countdown.Remaining `json:"countdown"`
	Demo      bool                `json:"demo"`
}

// PublicPage is one page of public moments.
type PublicPage struct {
	Moments []models.MomentView `json:"moments"`
	Total   int64               `json:"total"`
	Limit   int                 `json:"limit"`
	Offset  int                 `json:"offset"`
}

// NewMomentService wires a MomentService. index and flags may be nil.
func NewMomentService(repo repository.MomentRepository, index *cache.UsernameIndex, flags *featureflags.Manager) *MomentService {
	return &MomentService{
		repo:  repo,
		index: index,
		flags: flags,
		now:   time.Now,
	}
}

// WithClock replaces the time source used for year defaults and countdowns.
func (s *MomentService) WithClock(now func() time.Time) *MomentService {
	s.now = now
	return s
}

// CreateMoment validates the input, claims the username and stores the moment.
func (s *MomentService) CreateMoment(ctx context.Context, in CreateMomentInput) (*CreateMomentResult, error) {
	theme := strings.TrimSpace(in.Theme)
	atmosphere := strings.TrimSpace(in.Atmosphere)
	typography := strings.TrimSpace(in.Typography)

	targetYear := countdown.NextYear(s.now())
	if in.TargetYear != nil {
		targetYear = *in.TargetYear
	}

	var errs validation.Errors
	errs.Check("username", validation.ValidateUsername(in.Username))
	errs.Check("theme", validation.ValidateStyle("theme", theme))
	errs.Check("atmosphere", validation.ValidateStyle("atmosphere", atmosphere))
	errs.Check("typography", validation.ValidateStyle("typography", typography))
	errs.Check("message", validation.ValidateMessage(in.Message))
	errs.Check("targetYear", validation.ValidateTargetYear(targetYear))
	if err := errs.Err(); err != nil {
		return nil, err
	}

	if isReserved(in.Username) {
		return nil, models.NewConflictError(models.MsgUsernameTaken)
	}

	// Pre-check only; CreateWithAccount's unique constraint decides.
	taken, err := s.usernameTaken(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewConflictError(models.MsgUsernameTaken)
	}

	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}

	account := &models.Account{Username: in.Username}
	moment := &models.Moment{
		Theme:      theme,
		Atmosphere: atmosphere,
		Typography: typography,
		Message:    in.Message,
		TargetYear: targetYear,
		IsPublic:   isPublic,
	}
	if err := s.repo.CreateWithAccount(ctx, account, moment); err != nil {
		if models.IsCode(err, models.CodeConflict) {
			s.index.Claim(ctx, in.Username)
		}
		return nil, err
	}

	s.index.Claim(ctx, in.Username)
	return &CreateMomentResult{Moment: moment, Username: account.Username}, nil
}

// usernameTaken asks the database. A claim in the index that the database
// does not back is stale and gets released.
func (s *MomentService) usernameTaken(ctx context.Context, username string) (bool, error) {
	exists, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return false, err
	}
	if !exists && s.index.Claimed(ctx, username) {
		s.index.Release(ctx, username)
	}
	return exists, nil
}

// GetMoment returns the moment owned by username.
func (s *MomentService) GetMoment(ctx context.Context, username string) (*models.MomentView, error) {
	return s.repo.GetByUsername(ctx, username)
}

// UpdateMoment changes the supplied fields of the user's moment. An account
// whose moment was deleted gets a fresh one built from the defaults.
func (s *MomentService) UpdateMoment(ctx context.Context, in UpdateMomentInput) (*models.MomentView, error) {
	var errs validation.Errors
	errs.Check("username", validation.ValidateUsername(in.Username))
	if in.Message != nil {
		errs.Check("message", validation.ValidateMessage(*in.Message))
	}
	theme := optionalStyle(in.Theme)
	atmosphere := optionalStyle(in.Atmosphere)
	typography := optionalStyle(in.Typography)
	for _, f := range []struct {
		name  string
		value *string
	}{{"theme", theme}, {"atmosphere", atmosphere}, {"typography", typography}} {
		if f.value != nil {
			errs.Check(f.name, validation.ValidateStyle(f.name, *f.value))
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	patch := models.MomentPatch{
		Message:    in.Message,
		Theme:      theme,
		Atmosphere: atmosphere,
		Typography: typography,
		IsPublic:   in.IsPublic,
	}
	return s.repo.UpsertByUsername(ctx, in.Username, patch, s.defaultMoment())
}

// optionalStyle trims v; blank values count as "not supplied".
func optionalStyle(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *MomentService) defaultMoment() models.Moment {
	return models.Moment{
		Theme:      models.DefaultTheme,
		Atmosphere: models.DefaultAtmosphere,
		Typography: models.DefaultTypography,
		TargetYear: countdown.NextYear(s.now()),
		IsPublic:   true,
	}
}

// DeleteMoment removes the user's moment and keeps the account. Deleting
// something that does not exist succeeds.
func (s *MomentService) DeleteMoment(ctx context.Context, username string) error {
	return s.repo.DeleteByUsername(ctx, username)
}

// DeleteAccount removes the account with its moments and frees the username.
func (s *MomentService) DeleteAccount(ctx context.Context, username string) error {
	if err := s.repo.DeleteAccount(ctx, username); err != nil {
		return err
	}
	s.index.Release(ctx, username)
	return nil
}

// CheckUsername reports whether username is well-formed and unclaimed.
func (s *MomentService) CheckUsername(ctx context.Context, username string) (*UsernameStatus, error) {
	status := &UsernameStatus{Username: username}
	if err := validation.ValidateUsername(username); err != nil {
		status.Reason = err.Error()
		return status, nil
	}
	status.Valid = true

	if isReserved(username) {
		status.Reason = models.MsgUsernameTaken
		return status, nil
	}

	taken, err := s.usernameTaken(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		status.Reason = models.MsgUsernameTaken
		return status, nil
	}
	status.Available = true
	return status, nil
}

// ShareView returns the public permalink data for username with a countdown
// to its target year. Private moments are reported as not found.
func (s *MomentService) ShareView(ctx context.Context, username string) (*ShareView, error) {
	now := s.now()

	if username == DemoUsername && s.flags.Enabled(featureflags.DemoMoment, username) {
		demo := DemoMoment(now)
		return &ShareView{
			MomentView: demo,
			Countdown:  countdown.Until(now, demo.TargetYear),
			Demo:       true,
		}, nil
	}

	view, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !view.IsPublic {
		return nil, models.NewNotFoundError("Moment", username)
	}
	return &ShareView{
		MomentView: *view,
		Countdown:  countdown.Until(now, view.TargetYear),
	}, nil
}

// ListPublic returns a page of public moments, newest first.
func (s *MomentService) ListPublic(ctx context.Context, limit, offset int) (*PublicPage, error) {
	total, err := s.repo.CountPublic(ctx)
	if err != nil {
		return nil, err
	}
	moments, err := s.repo.ListPublic(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &PublicPage{Moments: moments, Total: total, Limit: limit, Offset: offset}, nil
}

// WarmUsernameIndex replaces the claimed-username index with the stored usernames.
func (s *MomentService) WarmUsernameIndex(ctx context.Context) error {
	usernames, err := s.repo.ListUsernames(ctx)
	if err != nil {
		return err
	}
	return s.index.Warm(ctx, usernames)
}

// DemoMoment is the built-in showcase served for DemoUsername.
func DemoMoment(now time.Time) models.MomentView {
	return models.MomentView{
		Moment: models.Moment{
			ID:         "demo",
			Theme:      "aurora",
			Atmosphere: "aurora",
			Typography: "serif",
			Message:    "Ready for the future!",
			TargetYear: countdown.NextYear(now),
			IsPublic:   true,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		Username: DemoUsername,
	}
}

func isReserved(username string) bool {
	return strings.EqualFold(username, DemoUsername)
}
