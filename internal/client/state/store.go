package state

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultAlertTimeout is how long an alert stays visible unless removed
// earlier.
const DefaultAlertTimeout = 5 * time.Second

// TokenStorage persists the bearer token between runs. The dispatcher calls
// it from Dispatch; implementations must tolerate Clear on an empty store.
type TokenStorage interface {
	SaveToken(token string) error
	ClearToken() error
}

// Store serializes events through the reducers and owns the two side effects
// the reducers must not perform: token persistence and alert expiry timers.
// All methods are safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	alerts []Alert
	auth   AuthState
	lists  ListState

	tokens       TokenStorage
	alertTimeout time.Duration
	timers       map[string]*time.Timer
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithTokenStorage makes login/register/logout events persist or clear the
// token as they are reduced.
func WithTokenStorage(ts TokenStorage) StoreOption {
	return func(s *Store) { s.tokens = ts }
}

// WithAlertTimeout overrides the alert expiry window.
func WithAlertTimeout(d time.Duration) StoreOption {
	return func(s *Store) { s.alertTimeout = d }
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		auth:         InitialAuth(),
		lists:        InitialLists(),
		alertTimeout: DefaultAlertTimeout,
		timers:       make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch folds one event over every slice and runs the attached side
// effects. Token persistence failures are swallowed: the in-memory session
// is still valid, the next run just starts logged out.
func (s *Store) Dispatch(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatchLocked(event)
}

func (s *Store) dispatchLocked(event Event) {
	s.alerts = ReduceAlerts(s.alerts, event)
	s.auth = ReduceAuth(s.auth, event)
	s.lists = ReduceLists(s.lists, event)

	if s.tokens == nil {
		return
	}
	switch e := event.(type) {
	case LoginSuccessEvent:
		_ = s.tokens.SaveToken(e.Token)
	case RegisterSuccessEvent:
		_ = s.tokens.SaveToken(e.Token)
	case LoginFailEvent, RegisterFailEvent, AuthErrorEvent, LogoutEvent:
		_ = s.tokens.ClearToken()
	}
}

// SetAlert adds an alert and schedules its removal after the configured
// timeout. Returns the generated alert id. Removing the alert early (via
// RemoveAlert) cancels the pending timer.
func (s *Store) SetAlert(message, kind string) string {
	alertID := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatchLocked(SetAlertEvent{Alert: Alert{ID: alertID, Message: message, Kind: kind}})
	s.timers[alertID] = time.AfterFunc(s.alertTimeout, func() {
		s.RemoveAlert(alertID)
	})
	return alertID
}

// RemoveAlert drops an alert immediately and cancels its expiry timer.
// Removing an unknown or already-expired id is a no-op.
func (s *Store) RemoveAlert(alertID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[alertID]; ok {
		t.Stop()
		delete(s.timers, alertID)
	}
	s.dispatchLocked(RemoveAlertEvent{ID: alertID})
}

// RestoreToken seeds the auth slice from persisted storage without marking
// the session authenticated; only a successful user load does that.
func (s *Store) RestoreToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth.Token = token
}

// Alerts returns a copy of the current alert slice.
func (s *Store) Alerts() []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

// Auth returns the current auth snapshot.
func (s *Store) Auth() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auth
}

// Lists returns the current list snapshot.
func (s *Store) Lists() ListState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lists
}
