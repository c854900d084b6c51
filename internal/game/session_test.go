package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionCopiesSeatingOrder(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seating := []string{"alice", "bob", "carol", "dave", "erin"}

	s := NewSession(seating, now)

	// Mutating the caller's slice must not affect the session
	seating[0] = "mallory"
	assert.Equal(t, []string{"alice", "bob", "carol", "dave", "erin"}, s.Players())
	assert.Equal(t, 5, s.PlayerCount())
	assert.Equal(t, now, s.StartedAt())
	assert.Equal(t, 1, s.Round())
}

func TestPlayersReturnsCopy(t *testing.T) {
	s := NewSession([]string{"alice", "bob"}, time.Now())

	players := s.Players()
	players[0] = "mallory"

	assert.Equal(t, []string{"alice", "bob"}, s.Players())
}

func TestAdvanceRound(t *testing.T) {
	s := NewSession([]string{"alice", "bob", "carol", "dave", "erin"}, time.Now())

	assert.Equal(t, 2, s.AdvanceRound())
	assert.Equal(t, 3, s.AdvanceRound())
	assert.Equal(t, 3, s.Round())
}

func TestSnapshotContents(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := NewSession([]string{"alice", "bob", "carol", "dave", "erin"}, now)
	s.AdvanceRound()

	snap := s.Snapshot()

	require.Equal(t, []string{"alice", "bob", "carol", "dave", "erin"}, snap["players"])
	assert.Equal(t, 5, snap["playerCount"])
	assert.Equal(t, 2, snap["round"])
	assert.Equal(t, now, snap["startedAt"])
}

func TestSnapshotIsDetached(t *testing.T) {
	s := NewSession([]string{"alice", "bob", "carol", "dave", "erin"}, time.Now())

	snap := s.Snapshot()
	snap["round"] = 99
	snap["players"].([]string)[0] = "mallory"

	assert.Equal(t, 1, s.Round())
	assert.Equal(t, "alice", s.Players()[0])
}
