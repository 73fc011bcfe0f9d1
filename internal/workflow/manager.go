package workflow

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/deepmindcheck/web/internal/metrics"
	"github.com/deepmindcheck/web/pkg/logger"
)

// Manager owns the live sessions and evicts those idle past the TTL.
type Manager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	ttl         time.Duration
	sweepTicker *time.Ticker
	done        chan struct{}
}

func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = time.Hour
	}

	m := &Manager{
		sessions:    make(map[string]*Session),
		ttl:         ttl,
		sweepTicker: time.NewTicker(5 * time.Minute),
		done:        make(chan struct{}),
	}

	go m.sweep()

	return m
}

func (m *Manager) GetOrCreate(id string) *Session {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if ok {
		s.touch()
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		s.touch()
		return s
	}

	s = newSession(id)
	m.sessions[id] = s
	metrics.SessionsActive.Set(float64(len(m.sessions)))
	return s
}

// Get returns an existing session without creating or touching one.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) sweep() {
	for {
		select {
		case <-m.done:
			return
		case <-m.sweepTicker.C:
			cutoff := time.Now().Add(-m.ttl)
			evicted := 0

			m.mu.Lock()
			for id, s := range m.sessions {
				// Never evict mid-analysis; the flag owner still needs it.
				if s.Analyzing() {
					continue
				}
				if s.idleSince(cutoff) {
					delete(m.sessions, id)
					evicted++
				}
			}
			remaining := len(m.sessions)
			m.mu.Unlock()

			metrics.SessionsActive.Set(float64(remaining))
			if evicted > 0 {
				logger.Debug("Swept idle sessions",
					zap.Int("evicted", evicted),
					zap.Int("remaining", remaining),
				)
			}
		}
	}
}

func (m *Manager) Stop() {
	m.sweepTicker.Stop()
	close(m.done)
}
