// Package toast manages short-lived notifications that outlive the screen
// that raised them.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/naveenspark/gobarber/pkg/domain"
)

// DefaultTTL is how long a toast stays visible unless dismissed earlier.
const DefaultTTL = 3 * time.Second

// Message is what callers pass to Add; the manager assigns the ID.
type Message struct {
	Type        domain.ToastType
	Title       string
	Description string
}

// stopper is satisfied by *time.Timer.
type stopper interface {
	Stop() bool
}

// Manager owns the ordered toast collection. Toasts are appended newest-last
// and removed by ID or when their timer fires.
type Manager struct {
	ttl time.Duration
	log *zap.Logger

	// afterFunc schedules expiry; replaced in tests.
	afterFunc func(d time.Duration, f func()) stopper

	mu      sync.Mutex
	toasts  []domain.Toast
	timers  map[string]stopper
	subs    map[int]chan []domain.Toast
	nextSub int
	closed  bool
}

// NewManager creates an empty manager. A ttl <= 0 means DefaultTTL.
func NewManager(ttl time.Duration, log *zap.Logger) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		ttl: ttl,
		log: log.Named("toast"),
		afterFunc: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
		timers: make(map[string]stopper),
		subs:   make(map[int]chan []domain.Toast),
	}
}

// TTL returns the expiry delay applied to new toasts.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Add appends a toast and schedules its removal after the TTL.
func (m *Manager) Add(msg Message) {
	if !domain.ValidToastType(msg.Type) {
		msg.Type = domain.ToastInfo
	}
	t := domain.Toast{
		ID:          uuid.NewString(),
		Type:        msg.Type,
		Title:       msg.Title,
		Description: msg.Description,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.toasts = append(m.toasts, t)
	id := t.ID
	m.timers[id] = m.afterFunc(m.ttl, func() { m.expire(id) })
	m.log.Debug("toast added", zap.String("id", id), zap.String("type", string(t.Type)), zap.String("title", t.Title))
	m.publishLocked()
}

// Remove drops the toast with the given ID. Unknown IDs are ignored, so a
// manual dismissal racing the expiry timer is harmless.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if timer, ok := m.timers[id]; ok {
		timer.Stop()
	}
	m.removeLocked(id)
}

func (m *Manager) expire(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.removeLocked(id) {
		m.log.Debug("toast expired", zap.String("id", id))
	}
}

func (m *Manager) removeLocked(id string) bool {
	delete(m.timers, id)
	for i, t := range m.toasts {
		if t.ID == id {
			m.toasts = append(m.toasts[:i:i], m.toasts[i+1:]...)
			m.publishLocked()
			return true
		}
	}
	return false
}

// Toasts returns a copy of the visible toasts, oldest first.
func (m *Manager) Toasts() []domain.Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Subscribe registers for collection snapshots. Like auth.Manager, a slow
// subscriber only sees the latest collection. The returned func unsubscribes
// and closes the channel.
func (m *Manager) Subscribe() (<-chan []domain.Toast, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	ch := make(chan []domain.Toast, 1)
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

// Close stops all pending timers. Toasts added after Close are dropped.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, timer := range m.timers {
		timer.Stop()
		delete(m.timers, id)
	}
	m.closed = true
}

func (m *Manager) snapshotLocked() []domain.Toast {
	out := make([]domain.Toast, len(m.toasts))
	copy(out, m.toasts)
	return out
}

func (m *Manager) publishLocked() {
	for _, ch := range m.subs {
		select {
		case <-ch:
		default:
		}
		ch <- m.snapshotLocked()
	}
}
