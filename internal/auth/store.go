package auth

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"artvista/internal/apperror"
	"artvista/internal/events"
	applog "artvista/internal/log"
	"artvista/internal/storage"
	"artvista/models"
)

// LegacyAdmin is the externally supplied admin pair accepted by the deprecated
// role login.
type LegacyAdmin struct {
	Enabled  bool
	Email    string
	Password string
}

// Store tracks the identity signed in to one workspace and persists it so it survives
// restarts. The registered-users table lives in the shared Directory.
type Store struct {
	mu      sync.RWMutex
	kv      storage.Store
	dir     *Directory
	legacy  LegacyAdmin
	now     func() time.Time
	current *models.Session
	loading bool
	hub     events.Hub
}

// Option customises a Store.
type Option func(*Store)

// WithLegacyLogin enables the deprecated role login with the provided admin pair.
func WithLegacyLogin(admin LegacyAdmin) Option {
	return func(s *Store) {
		s.legacy = admin
	}
}

// WithClock overrides the clock used to stamp sessions.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore builds a Store whose session record lives in kv. Loading reports true
// until Load has run.
func NewStore(kv storage.Store, dir *Directory, opts ...Option) *Store {
	s := &Store{
		kv:      kv,
		dir:     dir,
		now:     func() time.Time { return time.Now().UTC() },
		loading: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load rehydrates the persisted session, if any. A malformed record is returned as an
// error and leaves the store signed out; a record with an unknown role is deleted.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.loading = false }()

	var session models.Session
	found, err := storage.LoadJSON(ctx, s.kv, storage.KeySession, &session)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	if !models.ValidRole(session.Role) {
		applog.Warn(ctx, "discarding session with unknown role", "sessionID", session.ID, "role", session.Role)
		if err := s.kv.Delete(ctx, storage.KeySession); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		return nil
	}
	s.current = &session
	return nil
}

// Loading reports whether the persisted session has not been read yet.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Current returns the signed-in session.
func (s *Store) Current() (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.Session{}, false
	}
	return *s.current, true
}

// Subscribe registers l for session changes.
func (s *Store) Subscribe(l events.Listener) func() {
	return s.hub.Subscribe(l)
}

// SignUp registers a visitor account and signs it in.
func (s *Store) SignUp(ctx context.Context, email, password, name string) (models.Session, error) {
	account, err := s.dir.Register(ctx, email, password, name)
	if err != nil {
		return models.Session{}, err
	}
	session := account.Session()
	if err := s.establish(ctx, session); err != nil {
		return models.Session{}, err
	}
	s.hub.Publish(events.StoreSession, "signup")
	return session, nil
}

// SignIn authenticates staff first, then registered accounts.
func (s *Store) SignIn(ctx context.Context, email, password string) (models.Session, error) {
	lower := normalizeEmail(email)

	var session models.Session
	if staff, ok := s.dir.Staff(lower); ok {
		if !staff.matches(password) {
			return models.Session{}, ErrInvalidStaffCredentials
		}
		session = models.Session{
			ID:        "staff-" + lower,
			Email:     lower,
			Name:      staff.Name,
			Role:      staff.Role,
			CreatedAt: s.now(),
		}
	} else {
		account, err := s.dir.Authenticate(ctx, lower, password)
		if err != nil {
			return models.Session{}, err
		}
		session = account.Session()
	}

	if err := s.establish(ctx, session); err != nil {
		return models.Session{}, err
	}
	s.hub.Publish(events.StoreSession, "signin")
	return session, nil
}

// Login is the deprecated role login. Admin requires the configured admin pair; any
// other role is granted as asked.
//
// Deprecated: use SignIn.
func (s *Store) Login(ctx context.Context, role models.Role, email, password string) (models.Session, error) {
	if !s.legacy.Enabled {
		return models.Session{}, ErrLegacyLoginDisabled
	}
	if !models.ValidRole(role) {
		return models.Session{}, apperror.Invalid("role", "Please choose a valid role.")
	}
	if role == models.RoleAdmin {
		if s.legacy.Email == "" || s.legacy.Password == "" ||
			!secureEqual(s.legacy.Email, strings.TrimSpace(email)) ||
			!secureEqual(s.legacy.Password, password) {
			return models.Session{}, ErrInvalidAdminCredentials
		}
	}

	now := s.now()
	session := models.Session{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Name:      strings.ToUpper(string(role[:1])) + string(role[1:]),
		Role:      role,
		CreatedAt: now,
	}
	if err := s.establish(ctx, session); err != nil {
		return models.Session{}, err
	}
	applog.Warn(ctx, "deprecated role login used", "role", role)
	s.hub.Publish(events.StoreSession, "login")
	return session, nil
}

// Logout clears the session and its persisted record. It is a no-op when signed out.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return nil
	}
	if err := s.kv.Delete(ctx, storage.KeySession); err != nil {
		s.mu.Unlock()
		return err
	}
	s.current = nil
	s.mu.Unlock()

	s.hub.Publish(events.StoreSession, "logout")
	return nil
}

func (s *Store) establish(ctx context.Context, session models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := storage.SaveJSON(ctx, s.kv, storage.KeySession, session); err != nil {
		return err
	}
	s.current = &session
	applog.Debug(ctx, "session established", "sessionID", session.ID, "role", session.Role)
	return nil
}
