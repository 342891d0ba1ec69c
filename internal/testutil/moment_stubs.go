// Package testutil provides shared test doubles and fixtures for backend tests.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"momentzero/internal/models"
	"momentzero/internal/repository"

	"github.com/google/uuid"
)

var _ repository.MomentRepository = (*MomentRepoStub)(nil)

// MomentRepoStub is an in-memory moment repository implementation for tests.
// It enforces username uniqueness the way the database does.
type MomentRepoStub struct {
	mu       sync.Mutex
	accounts map[string]*models.Account
	moments  map[string]*models.Moment // keyed by account ID

	// Err, when set, is returned by every operation.
	Err error
	// BlindPrecheck makes UsernameExists always report false, so creates
	// race straight into the uniqueness check.
	BlindPrecheck bool
}

// NewMomentRepoStub creates an empty in-memory moment repository.
func NewMomentRepoStub() *MomentRepoStub {
	return &MomentRepoStub{
		accounts: make(map[string]*models.Account),
		moments:  make(map[string]*models.Moment),
	}
}

// CreateWithAccount stores both rows or neither.
func (s *MomentRepoStub) CreateWithAccount(_ context.Context, account *models.Account, moment *models.Moment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.accounts[account.Username]; ok {
		return models.NewConflictError(models.MsgUsernameTaken)
	}

	now := time.Now().UTC()
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	account.CreatedAt, account.UpdatedAt = now, now
	if moment.ID == "" {
		moment.ID = uuid.NewString()
	}
	moment.AccountID = account.ID
	moment.CreatedAt, moment.UpdatedAt = now, now

	acc := *account
	m := *moment
	s.accounts[account.Username] = &acc
	s.moments[account.ID] = &m
	return nil
}

// UsernameExists reports whether an account holds username.
func (s *MomentRepoStub) UsernameExists(_ context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	if s.BlindPrecheck {
		return false, nil
	}
	_, ok := s.accounts[username]
	return ok, nil
}

// GetByUsername returns a copy of the user's moment.
func (s *MomentRepoStub) GetByUsername(_ context.Context, username string) (*models.MomentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	account, ok := s.accounts[username]
	if !ok {
		return nil, models.NewNotFoundError("Moment", username)
	}
	moment, ok := s.moments[account.ID]
	if !ok {
		return nil, models.NewNotFoundError("Moment", username)
	}
	return &models.MomentView{Moment: *moment, Username: username}, nil
}

// GetAccountByUsername returns a copy of the account.
func (s *MomentRepoStub) GetAccountByUsername(_ context.Context, username string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	account, ok := s.accounts[username]
	if !ok {
		return nil, models.NewNotFoundError("Account", username)
	}
	acc := *account
	return &acc, nil
}

// UpsertByUsername patches the user's moment, creating it from defaults when absent.
func (s *MomentRepoStub) UpsertByUsername(_ context.Context, username string, patch models.MomentPatch, defaults models.Moment) (*models.MomentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	account, ok := s.accounts[username]
	if !ok {
		return nil, models.NewNotFoundError("Account", username)
	}

	now := time.Now().UTC()
	moment, ok := s.moments[account.ID]
	if !ok {
		m := defaults
		m.ID = uuid.NewString()
		m.AccountID = account.ID
		m.CreatedAt = now
		moment = &m
		s.moments[account.ID] = moment
	}
	patch.Apply(moment)
	moment.UpdatedAt = now
	return &models.MomentView{Moment: *moment, Username: username}, nil
}

// DeleteByUsername drops the user's moment; missing ones are ignored.
func (s *MomentRepoStub) DeleteByUsername(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if account, ok := s.accounts[username]; ok {
		delete(s.moments, account.ID)
	}
	return nil
}

// DeleteAccount drops the account and its moment.
func (s *MomentRepoStub) DeleteAccount(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if account, ok := s.accounts[username]; ok {
		delete(s.moments, account.ID)
		delete(s.accounts, username)
	}
	return nil
}

// CountPublic counts public moments.
func (s *MomentRepoStub) CountPublic(_ context.Context) (int64, error) {
	views, err := s.publicViews()
	return int64(len(views)), err
}

// ListPublic pages public moments newest first.
func (s *MomentRepoStub) ListPublic(_ context.Context, limit, offset int) ([]models.MomentView, error) {
	views, err := s.publicViews()
	if err != nil {
		return nil, err
	}
	if offset >= len(views) {
		return []models.MomentView{}, nil
	}
	end := offset + limit
	if end > len(views) {
		end = len(views)
	}
	return views[offset:end], nil
}

func (s *MomentRepoStub) publicViews() ([]models.MomentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	views := make([]models.MomentView, 0, len(s.moments))
	for username, account := range s.accounts {
		if m, ok := s.moments[account.ID]; ok && m.IsPublic {
			views = append(views, models.MomentView{Moment: *m, Username: username})
		}
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
	return views, nil
}

// ListUsernames returns every stored username.
func (s *MomentRepoStub) ListUsernames(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]string, 0, len(s.accounts))
	for username := range s.accounts {
		out = append(out, username)
	}
	sort.Strings(out)
	return out, nil
}
