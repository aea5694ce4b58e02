package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenspark/gobarber/internal/storage"
	"github.com/naveenspark/gobarber/pkg/client"
	"github.com/naveenspark/gobarber/pkg/domain"
)

var johnDoe = domain.User{ID: "user-123", Name: "John Doe", Email: "johndoe@email.com"}

type fakeAPI struct {
	mu      sync.Mutex
	session *domain.Session
	err     error
	calls   int
	token   string

	// onCreate runs inside CreateSession, after the call is counted
	onCreate func()
}

func (f *fakeAPI) CreateSession(_ context.Context, email, _ string) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.onCreate != nil {
		f.onCreate()
	}
	if f.err != nil {
		return nil, f.err
	}
	s := *f.session
	s.User.Email = email
	return &s, nil
}

func (f *fakeAPI) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeAPI) currentToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

type op struct {
	name  string
	key   string
	value string
}

// recordingStore wraps a Memory store and records every write.
type recordingStore struct {
	*storage.Memory
	mu  sync.Mutex
	ops []op
	err error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{Memory: storage.NewMemory()}
}

func (r *recordingStore) Set(key, value string) error {
	r.mu.Lock()
	r.ops = append(r.ops, op{"set", key, value})
	r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	return r.Memory.Set(key, value)
}

func (r *recordingStore) Remove(key string) error {
	r.mu.Lock()
	r.ops = append(r.ops, op{"remove", key, ""})
	r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	return r.Memory.Remove(key)
}

func (r *recordingStore) recorded() []op {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]op(nil), r.ops...)
}

func seedSession(t *testing.T, s storage.Store, token string, u domain.User) {
	t.Helper()
	data, err := json.Marshal(u)
	require.NoError(t, err)
	require.NoError(t, s.Set(storage.TokenKey, token))
	require.NoError(t, s.Set(storage.UserKey, string(data)))
}

func TestSignIn(t *testing.T) {
	api := &fakeAPI{session: &domain.Session{Token: "token-123", User: johnDoe}}
	store := newRecordingStore()
	m := NewManager(api, store, nil)
	m.Initialize()

	err := m.SignIn(context.Background(), Credentials{Email: "johndoe@email.com", Password: "123456"})
	require.NoError(t, err)

	u := m.CurrentUser()
	require.NotNil(t, u)
	assert.Equal(t, "johndoe@email.com", u.Email)
	assert.Equal(t, "token-123", m.Token())
	assert.Equal(t, "token-123", api.currentToken())

	token, err := store.Get(storage.TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "token-123", token)

	raw, err := store.Get(storage.UserKey)
	require.NoError(t, err)
	want, _ := json.Marshal(johnDoe) //nolint:errcheck
	assert.JSONEq(t, string(want), raw)

	assert.Equal(t, []op{
		{"set", storage.TokenKey, "token-123"},
		{"set", storage.UserKey, string(want)},
	}, store.recorded())
}

func TestSignInFailureLeavesStateUntouched(t *testing.T) {
	apiErr := &client.HTTPError{StatusCode: http.StatusUnauthorized, Message: "Incorrect email/password combination."}
	api := &fakeAPI{err: apiErr}
	store := newRecordingStore()
	seedSession(t, store.Memory, "old-token", johnDoe)

	m := NewManager(api, store, nil)
	m.Initialize()

	err := m.SignIn(context.Background(), Credentials{Email: "other@email.com", Password: "bad"})
	require.Error(t, err)
	assert.Same(t, apiErr, err, "adapter error should surface unchanged")
	assert.True(t, client.IsUnauthorized(err))

	assert.Empty(t, store.recorded())
	assert.Equal(t, "old-token", m.Token())
	assert.Equal(t, johnDoe, *m.CurrentUser())
}

func TestSignInCancelledAfterResponse(t *testing.T) {
	api := &fakeAPI{session: &domain.Session{Token: "token-123", User: johnDoe}}
	store := newRecordingStore()
	m := NewManager(api, store, nil)
	m.Initialize()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := m.SignIn(ctx, Credentials{Email: "johndoe@email.com", Password: "123456"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, m.CurrentUser())
	assert.Empty(t, store.recorded())
}

func TestSignInCancelledWhileWaitingForState(t *testing.T) {
	api := &fakeAPI{session: &domain.Session{Token: "token-123", User: johnDoe}}
	store := newRecordingStore()
	m := NewManager(api, store, nil)
	m.Initialize()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	responded := make(chan struct{})
	api.onCreate = func() { close(responded) }

	// Hold the state lock so the response can only be applied after the cancel.
	m.mu.Lock()
	done := make(chan error, 1)
	go func() {
		done <- m.SignIn(ctx, Credentials{Email: "johndoe@email.com", Password: "123456"})
	}()
	<-responded
	cancel()
	m.mu.Unlock()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("SignIn did not return")
	}
	assert.Nil(t, m.CurrentUser())
	assert.Empty(t, m.Token())
	assert.Empty(t, store.recorded())
}

func TestSignInStorageFailureIsNotFatal(t *testing.T) {
	api := &fakeAPI{session: &domain.Session{Token: "token-123", User: johnDoe}}
	store := newRecordingStore()
	store.err = errors.New("disk full")
	m := NewManager(api, store, nil)
	m.Initialize()

	require.NoError(t, m.SignIn(context.Background(), Credentials{Email: "johndoe@email.com", Password: "123456"}))
	require.NotNil(t, m.CurrentUser())
	assert.Equal(t, "token-123", m.Token())
}

func TestInitialize(t *testing.T) {
	userJSON, _ := json.Marshal(johnDoe) //nolint:errcheck

	tests := []struct {
		name     string
		values   map[string]string
		wantUser *domain.User
	}{
		{
			name:     "both keys present",
			values:   map[string]string{storage.TokenKey: "token-123", storage.UserKey: string(userJSON)},
			wantUser: &johnDoe,
		},
		{
			name:   "token missing",
			values: map[string]string{storage.UserKey: string(userJSON)},
		},
		{
			name:   "user missing",
			values: map[string]string{storage.TokenKey: "token-123"},
		},
		{
			name: "nothing stored",
		},
		{
			name:   "empty token",
			values: map[string]string{storage.TokenKey: "", storage.UserKey: string(userJSON)},
		},
		{
			name:   "corrupt user record",
			values: map[string]string{storage.TokenKey: "token-123", storage.UserKey: "{not json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemory()
			for k, v := range tt.values {
				require.NoError(t, store.Set(k, v))
			}
			api := &fakeAPI{}
			m := NewManager(api, store, nil)
			m.Initialize()

			got := m.CurrentUser()
			if tt.wantUser == nil {
				assert.Nil(t, got)
				assert.Empty(t, m.Token())
				assert.Empty(t, api.currentToken())
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.wantUser, *got)
			assert.Equal(t, "token-123", api.currentToken())
		})
	}
}

func TestSignOut(t *testing.T) {
	store := newRecordingStore()
	seedSession(t, store.Memory, "token-123", johnDoe)
	api := &fakeAPI{}
	m := NewManager(api, store, nil)
	m.Initialize()
	require.NotNil(t, m.CurrentUser())

	m.SignOut()

	assert.Nil(t, m.CurrentUser())
	assert.Empty(t, m.Token())
	assert.Empty(t, api.currentToken())
	assert.Empty(t, store.Keys())
	assert.Equal(t, []op{
		{"remove", storage.TokenKey, ""},
		{"remove", storage.UserKey, ""},
	}, store.recorded())
}

func TestSignOutIsIdempotent(t *testing.T) {
	store := newRecordingStore()
	require.NoError(t, store.Memory.Set("unrelated", "keep-me"))
	m := NewManager(&fakeAPI{}, store, nil)
	m.Initialize()

	m.SignOut()
	m.SignOut()

	assert.Nil(t, m.CurrentUser())
	assert.Len(t, store.recorded(), 4)
	for _, o := range store.recorded() {
		assert.Equal(t, "remove", o.name)
		assert.Contains(t, []string{storage.TokenKey, storage.UserKey}, o.key)
	}
	v, err := store.Get("unrelated")
	require.NoError(t, err)
	assert.Equal(t, "keep-me", v)
}

func TestSignOutWhileSignedOutPublishesNothing(t *testing.T) {
	m := NewManager(&fakeAPI{}, storage.NewMemory(), nil)
	m.Initialize()
	ch, unsubscribe := m.Subscribe()
	defer unsubscribe()

	m.SignOut()

	select {
	case snap := <-ch:
		t.Fatalf("unexpected snapshot %+v", snap)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUpdateUser(t *testing.T) {
	store := newRecordingStore()
	seedSession(t, store.Memory, "token-123", johnDoe)
	m := NewManager(&fakeAPI{}, store, nil)
	m.Initialize()

	updated := domain.User{ID: "user-123", Name: "John Doe", Email: "johndoe@email.com", AvatarURL: "image-test.jpg"}
	m.UpdateUser(updated)

	want, _ := json.Marshal(updated) //nolint:errcheck
	ops := store.recorded()
	require.Len(t, ops, 1)
	assert.Equal(t, op{"set", storage.UserKey, string(want)}, ops[0])

	token, err := store.Get(storage.TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "token-123", token)
	assert.Equal(t, updated, *m.CurrentUser())
}

func TestUpdateUserWithoutSession(t *testing.T) {
	store := newRecordingStore()
	m := NewManager(&fakeAPI{}, store, nil)
	m.Initialize()

	m.UpdateUser(johnDoe)

	assert.Nil(t, m.CurrentUser())
	assert.Empty(t, store.recorded())
}

func TestCurrentUserReturnsCopy(t *testing.T) {
	store := storage.NewMemory()
	seedSession(t, store, "token-123", johnDoe)
	m := NewManager(&fakeAPI{}, store, nil)
	m.Initialize()

	u := m.CurrentUser()
	u.Name = "Mallory"
	assert.Equal(t, "John Doe", m.CurrentUser().Name)
}

func recv(t *testing.T, ch <-chan Snapshot) Snapshot {
	t.Helper()
	select {
	case s, ok := <-ch:
		require.True(t, ok, "channel closed")
		return s
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
		return Snapshot{}
	}
}

func TestSubscribe(t *testing.T) {
	api := &fakeAPI{session: &domain.Session{Token: "token-123", User: johnDoe}}
	m := NewManager(api, storage.NewMemory(), nil)
	ch, unsubscribe := m.Subscribe()
	defer unsubscribe()

	m.Initialize()
	assert.False(t, recv(t, ch).Authenticated())

	require.NoError(t, m.SignIn(context.Background(), Credentials{Email: "johndoe@email.com", Password: "123456"}))
	snap := recv(t, ch)
	require.True(t, snap.Authenticated())
	assert.Equal(t, "johndoe@email.com", snap.User.Email)

	m.UpdateUser(domain.User{ID: "user-123", Name: "Jane"})
	assert.Equal(t, "Jane", recv(t, ch).User.Name)

	m.SignOut()
	assert.False(t, recv(t, ch).Authenticated())
}

func TestSubscribeKeepsLatestSnapshot(t *testing.T) {
	store := storage.NewMemory()
	seedSession(t, store, "token-123", johnDoe)
	m := NewManager(&fakeAPI{}, store, nil)
	m.Initialize()

	ch, unsubscribe := m.Subscribe()
	defer unsubscribe()

	m.UpdateUser(domain.User{ID: "user-123", Name: "First"})
	m.UpdateUser(domain.User{ID: "user-123", Name: "Second"})
	m.SignOut()

	assert.False(t, recv(t, ch).Authenticated())
	select {
	case s := <-ch:
		t.Fatalf("unexpected extra snapshot %+v", s)
	default:
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	m := NewManager(&fakeAPI{}, storage.NewMemory(), nil)
	ch, unsubscribe := m.Subscribe()
	unsubscribe()
	unsubscribe()

	_, ok := <-ch
	assert.False(t, ok)

	// Publishing after unsubscribe must not panic on the closed channel.
	m.Initialize()
}
