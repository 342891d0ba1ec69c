package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"momentzero/internal/countdown"
	"momentzero/internal/i18n"
)

var (
	// ErrBusy is returned when a create, update or delete is already in flight.
	ErrBusy = errors.New("client: a request is already in flight")
	// ErrNoUsername is returned when a write is attempted before a username is chosen.
	ErrNoUsername = errors.New("client: username is required")
)

// NoticeKind classifies a user-facing notice.
type NoticeKind string

const (
	NoticeLoading NoticeKind = "loading"
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a localized message for the user.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// InitialState is moment data provided by the page that opened the app,
// such as a permalink. It wins over anything stored locally.
type InitialState struct {
	View       View
	Username   string
	Message    string
	Theme      string
	Atmosphere string
	Typography string
}

// Syncer mirrors the app state to the API and to local storage. Server writes
// are preferred; when the server fails the write lands locally instead, except
// for username conflicts which are always surfaced.
type Syncer struct {
	api    MomentAPI
	store  LocalStore
	state  *AppState
	msgs   i18n.Messages
	notify func(Notice)
	now    func() time.Time

	mu sync.Mutex
}

// NewSyncer returns a Syncer acting on state.
func NewSyncer(api MomentAPI, store LocalStore, state *AppState, locale i18n.Locale) *Syncer {
	return &Syncer{
		api:    api,
		store:  store,
		state:  state,
		msgs:   i18n.For(locale),
		notify: func(Notice) {},
		now:    time.Now,
	}
}

// OnNotice registers fn to receive every notice, including loading ones.
func (s *Syncer) OnNotice(fn func(Notice)) *Syncer {
	if fn != nil {
		s.notify = fn
	}
	return s
}

// WithClock replaces the time source used to pick the target year.
func (s *Syncer) WithClock(now func() time.Time) *Syncer {
	s.now = now
	return s
}

// State returns the state the Syncer acts on.
func (s *Syncer) State() *AppState {
	return s.state
}

// Load restores state at start-up and reports whether onboarding can be skipped.
// Page-provided state wins; otherwise a stored username marks the user as onboarded.
func (s *Syncer) Load(initial *InitialState) (bool, error) {
	if initial != nil {
		s.applyInitial(initial)
		s.state.Onboarded = true
		return true, nil
	}

	values, err := s.store.Load()
	if err != nil {
		return false, fmt.Errorf("load local state: %w", err)
	}
	s.state.Restore(values)

	if s.state.Username == "" {
		return false, nil
	}
	s.state.Onboarded = true
	s.state.View = ViewCapsule
	s.state.Mode = ModeView
	return true, nil
}

func (s *Syncer) applyInitial(in *InitialState) {
	if in.View != "" {
		s.state.View = in.View
	}
	if in.Username != "" {
		s.state.Username = in.Username
	}
	if in.Theme != "" {
		s.state.Theme = in.Theme
	}
	if in.Atmosphere != "" {
		s.state.Atmosphere = in.Atmosphere
	}
	if in.Typography != "" {
		s.state.Typography = in.Typography
	}
	if in.Message != "" {
		s.state.Wish = in.Message
	}
}

// Seal creates the moment on the server. A conflict or rejected input returns
// the APIError and writes nothing locally; server and network failures are
// saved locally and reported as success.
func (s *Syncer) Seal(ctx context.Context) (Notice, error) {
	if err := s.begin(); err != nil {
		return s.busy(), err
	}
	defer s.end()

	st := s.state
	if st.Username == "" {
		return Notice{}, ErrNoUsername
	}
	s.notify(Notice{Kind: NoticeLoading, Message: s.msgs.Sealing})

	_, err := s.api.SaveMoment(ctx, SavePayload{
		Username:   st.Username,
		Theme:      st.Theme,
		Atmosphere: st.Atmosphere,
		Typography: st.Typography,
		Message:    st.Wish,
		TargetYear: countdown.NextYear(s.now()),
	})
	switch {
	case err == nil:
		if merr := s.mirror(); merr != nil {
			return Notice{}, merr
		}
		st.Onboarded = true
		st.View = ViewCapsule
		st.Mode = ModeView
		return s.emit(NoticeSuccess, s.msgs.Sealed), nil
	case IsDuplicate(err):
		return s.emit(NoticeError, s.msgs.UsernameTaken), err
	case IsValidation(err):
		return s.emit(NoticeError, validationSummary(err)), err
	default:
		if merr := s.mirror(); merr != nil {
			return Notice{}, merr
		}
		st.Onboarded = true
		st.View = ViewCapsule
		return s.emit(NoticeSuccess, s.msgs.SavedOffline), nil
	}
}

// Update sends the current wish and styles. Rejected input is returned without
// touching local state; on any other failure the local copy is still updated
// and the returned notice says so.
func (s *Syncer) Update(ctx context.Context) (Notice, error) {
	if err := s.begin(); err != nil {
		return s.busy(), err
	}
	defer s.end()

	st := s.state
	if st.Username == "" {
		return Notice{}, ErrNoUsername
	}

	wish, theme, atmosphere, typography := st.Wish, st.Theme, st.Atmosphere, st.Typography
	_, err := s.api.UpdateMoment(ctx, UpdatePayload{
		Username:   st.Username,
		Message:    &wish,
		Theme:      &theme,
		Atmosphere: &atmosphere,
		Typography: &typography,
	})
	if IsValidation(err) {
		return s.emit(NoticeError, validationSummary(err)), err
	}
	if merr := s.mirror(); merr != nil {
		return Notice{}, merr
	}
	if err != nil {
		return s.emit(NoticeSuccess, s.msgs.UpdatedLocally), nil
	}
	st.Mode = ModeView
	return s.emit(NoticeSuccess, s.msgs.Updated), nil
}

// Delete removes the moment on the server and clears the local wish. The
// username stays stored since the server keeps it reserved. Failures are
// returned without touching local state.
func (s *Syncer) Delete(ctx context.Context) (Notice, error) {
	if err := s.begin(); err != nil {
		return s.busy(), err
	}
	defer s.end()

	st := s.state
	if st.Username == "" {
		return Notice{}, ErrNoUsername
	}

	if err := s.api.DeleteMoment(ctx, st.Username); err != nil {
		return s.emit(NoticeError, s.msgs.DeleteFailed), err
	}
	if err := s.store.Delete(KeyWish); err != nil {
		return Notice{}, fmt.Errorf("clear local wish: %w", err)
	}
	st.Wish = ""
	st.Mode = ModeEdit
	return s.emit(NoticeSuccess, s.msgs.Deleted), nil
}

// SavePreferences stores layout and volume, which never reach the server.
func (s *Syncer) SavePreferences() error {
	p := s.state.Persisted()
	return s.store.Save(map[string]string{
		KeyLayout: p[KeyLayout],
		KeyVolume: p[KeyVolume],
	})
}

func validationSummary(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Summary()
	}
	return err.Error()
}

func (s *Syncer) mirror() error {
	if err := s.store.Save(s.state.mirrored()); err != nil {
		return fmt.Errorf("mirror local state: %w", err)
	}
	return nil
}

func (s *Syncer) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.IsSending {
		return ErrBusy
	}
	s.state.IsSending = true
	return nil
}

func (s *Syncer) end() {
	s.mu.Lock()
	s.state.IsSending = false
	s.mu.Unlock()
}

func (s *Syncer) busy() Notice {
	return Notice{Kind: NoticeError, Message: s.msgs.Busy}
}

func (s *Syncer) emit(kind NoticeKind, msg string) Notice {
	n := Notice{Kind: kind, Message: msg}
	s.notify(n)
	return n
}
