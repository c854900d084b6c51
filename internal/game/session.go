package game

import (
	"sync"
	"time"
)

const (
	// MinPlayers is the minimum number of players required to start a session
	MinPlayers = 5
	// MaxPlayers is the maximum number of players a session supports
	MaxPlayers = 10
)

// Session is one running game instance. The lobby that created it holds the
// only long-lived reference and never mutates it; progression happens through
// the session's own methods, driven by message-handling code.
type Session struct {
	players   []string
	startedAt time.Time

	mu    sync.Mutex
	round int
}

// NewSession creates a session with the given seating order, starting at round 1.
// The slice is copied; callers may reuse it.
func NewSession(players []string, now time.Time) *Session {
	seating := make([]string, len(players))
	copy(seating, players)
	return &Session{
		players:   seating,
		startedAt: now,
		round:     1,
	}
}

// Players returns the seating order fixed at session start
func (s *Session) Players() []string {
	players := make([]string, len(s.players))
	copy(players, s.players)
	return players
}

// PlayerCount returns the number of seated players
func (s *Session) PlayerCount() int {
	return len(s.players)
}

// StartedAt returns the session's creation time
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// Round returns the current round number
func (s *Session) Round() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

// AdvanceRound moves the session to the next round and returns it
func (s *Session) AdvanceRound() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.round++
	return s.round
}

// Snapshot returns a freshly allocated serializable view of the session.
// Callers may annotate or marshal the result without affecting the session.
func (s *Session) Snapshot() map[string]any {
	s.mu.Lock()
	round := s.round
	s.mu.Unlock()

	players := make([]string, len(s.players))
	copy(players, s.players)

	return map[string]any{
		"players":     players,
		"playerCount": len(players),
		"round":       round,
		"startedAt":   s.startedAt,
	}
}
