// Package auth owns the signed-in session: it signs users in and out,
// restores the session persisted by a previous run, and publishes every
// change to subscribed screens.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/naveenspark/gobarber/internal/storage"
	"github.com/naveenspark/gobarber/pkg/domain"
)

// API is the part of the GoBarber client the manager talks to.
type API interface {
	CreateSession(ctx context.Context, email, password string) (*domain.Session, error)
	SetToken(token string)
}

// Credentials are the values submitted by the sign-in form.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Snapshot is the session state handed to subscribers. User is nil when
// nobody is signed in.
type Snapshot struct {
	User *domain.User
}

// Authenticated reports whether the snapshot has a signed-in user.
func (s Snapshot) Authenticated() bool {
	return s.User != nil
}

// Manager is the single owner of the in-memory session and its persisted copy.
type Manager struct {
	api   API
	store storage.Store
	log   *zap.Logger

	mu      sync.Mutex
	session *domain.Session
	subs    map[int]chan Snapshot
	nextSub int
}

// NewManager creates a manager with no session. Call Initialize before the
// first screen renders.
func NewManager(api API, store storage.Store, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		api:   api,
		store: store,
		log:   log.Named("auth"),
		subs:  make(map[int]chan Snapshot),
	}
}

// Initialize restores the session persisted by a previous run. A missing
// token, missing user record or unreadable user record all leave the
// manager signed out.
func (m *Manager) Initialize() {
	s := m.restore()

	m.mu.Lock()
	m.session = s
	m.setTokenLocked()
	m.publishLocked()
	m.mu.Unlock()
}

func (m *Manager) restore() *domain.Session {
	token, err := m.store.Get(storage.TokenKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			m.log.Warn("read persisted token", zap.Error(err))
		}
		return nil
	}
	raw, err := m.store.Get(storage.UserKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			m.log.Warn("read persisted user", zap.Error(err))
		}
		return nil
	}
	if token == "" {
		return nil
	}
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		m.log.Warn("decode persisted user", zap.Error(err))
		return nil
	}
	m.log.Debug("session restored", zap.String("user_id", u.ID))
	return &domain.Session{Token: token, User: u}
}

// SignIn exchanges credentials for a session. The persisted copy is written
// before the in-memory session changes, and both happen before SignIn
// returns. An API error is returned unchanged and leaves all state as it was.
func (m *Manager) SignIn(ctx context.Context, creds Credentials) error {
	s, err := m.api.CreateSession(ctx, creds.Email, creds.Password)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// a caller that gave up while the request was in flight keeps its state
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("auth.SignIn: %w", err)
	}
	m.persist(storage.TokenKey, s.Token)
	m.persistUser(s.User)
	m.session = &domain.Session{Token: s.Token, User: s.User}
	m.setTokenLocked()
	m.publishLocked()
	m.log.Info("signed in", zap.String("user_id", s.User.ID))
	return nil
}

// SignOut removes the persisted session and clears the in-memory one.
// Signing out while signed out only clears stale storage and publishes nothing.
func (m *Manager) SignOut() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range []string{storage.TokenKey, storage.UserKey} {
		if err := m.store.Remove(key); err != nil {
			m.log.Warn("remove persisted session key", zap.String("key", key), zap.Error(err))
		}
	}
	wasSignedIn := m.session != nil
	m.session = nil
	if !wasSignedIn {
		return
	}
	m.setTokenLocked()
	m.publishLocked()
	m.log.Info("signed out")
}

// UpdateUser replaces the signed-in user's profile, for example after a
// profile edit or avatar upload. The token is left alone. Without a session
// there is nothing to update and nothing is written.
func (m *Manager) UpdateUser(u domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		m.log.Warn("update user without a session", zap.String("user_id", u.ID))
		return
	}
	m.persistUser(u)
	m.session.User = u
	m.publishLocked()
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (m *Manager) CurrentUser() *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil
	}
	u := m.session.User
	return &u
}

// Token returns the bearer token, or "" when signed out.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return ""
	}
	return m.session.Token
}

// Subscribe registers for session snapshots. The channel holds at most one
// pending snapshot: a subscriber that falls behind only sees the latest
// state. Call the returned func to unsubscribe; it closes the channel.
func (m *Manager) Subscribe() (<-chan Snapshot, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	ch := make(chan Snapshot, 1)
	m.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.subs, id)
			close(ch)
		})
	}
}

func (m *Manager) persist(key, value string) {
	if err := m.store.Set(key, value); err != nil {
		m.log.Warn("persist session key", zap.String("key", key), zap.Error(err))
	}
}

func (m *Manager) persistUser(u domain.User) {
	data, err := json.Marshal(u)
	if err != nil {
		m.log.Warn("encode user", zap.Error(err))
		return
	}
	m.persist(storage.UserKey, string(data))
}

func (m *Manager) setTokenLocked() {
	if m.api == nil {
		return
	}
	if m.session == nil {
		m.api.SetToken("")
		return
	}
	m.api.SetToken(m.session.Token)
}

func (m *Manager) snapshotLocked() Snapshot {
	if m.session == nil {
		return Snapshot{}
	}
	u := m.session.User
	return Snapshot{User: &u}
}

func (m *Manager) publishLocked() {
	snap := m.snapshotLocked()
	for _, ch := range m.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}
