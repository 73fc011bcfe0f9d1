package workflow

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/deepmindcheck/web/internal/backend"
)

// Session is the per-visitor workflow state. At most one result is current
// at a time; a new submission fully replaces it. The analyzing flag is the
// only state shared with in-flight work, so it lives in an atomic and
// everything else sits behind the mutex.
type Session struct {
	ID string

	analyzing atomic.Bool

	mu       sync.Mutex
	current  *backend.AnalysisResult
	ratings  map[string]int
	lastSeen time.Time
}

func newSession(id string) *Session {
	return &Session{
		ID:       id,
		ratings:  make(map[string]int),
		lastSeen: time.Now(),
	}
}

// Analyzing reports whether a submission is in flight.
func (s *Session) Analyzing() bool {
	return s.analyzing.Load()
}

// Current returns the result shown to the visitor, or nil.
func (s *Session) Current() *backend.AnalysisResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Session) setCurrent(r *backend.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = r
}

func (s *Session) clearCurrent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// Rating returns the stars given to an analysis, zero when unrated.
func (s *Session) Rating(analysisID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ratings[analysisID]
}

func (s *Session) markRated(analysisID string, rating int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ratings[analysisID] = rating
}

func (s *Session) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
}

func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen.Before(cutoff)
}
