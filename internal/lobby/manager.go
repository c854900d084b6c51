package lobby

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/conclave-gg/conclave/internal/dependencies/clock"
	"github.com/conclave-gg/conclave/internal/dependencies/random"
	"github.com/conclave-gg/conclave/internal/game"
	"github.com/conclave-gg/conclave/internal/model"
	"github.com/conclave-gg/conclave/internal/storage"
)

const (
	// CodeLength is the length of generated lobby codes
	CodeLength = 6
	// CodeAlphabet is the characters used in lobby codes (avoids confusable chars)
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// ManagerConfig holds the lobby directory's tunables
type ManagerConfig struct {
	// IdleTTL is how long a lobby may sit with no connections before the
	// janitor prunes it
	IdleTTL time.Duration
	// JanitorInterval is how often the janitor scans for prunable lobbies
	JanitorInterval time.Duration
}

// DefaultManagerConfig returns the directory defaults
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		IdleTTL:         30 * time.Minute,
		JanitorInterval: time.Minute,
	}
}

// Manager is the directory of live lobbies, keyed by join code. Lobbies are
// process-local; only game records outlive them (via storage).
type Manager struct {
	cfg     ManagerConfig
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	mu      sync.RWMutex
	lobbies map[model.LobbyCode]*Lobby
}

// NewManager creates an empty lobby directory
func NewManager(
	cfg ManagerConfig,
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		cfg:     cfg,
		storage: store,
		clock:   clk,
		random:  rnd,
		logger:  logger.With(slog.String("component", "lobby")),
		lobbies: make(map[model.LobbyCode]*Lobby),
	}
}

// CreateLobby allocates a unique join code and registers an empty lobby
// under it, wired with the game package's player limits and session factory
func (m *Manager) CreateLobby() *Lobby {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Generate a code not held by any live lobby
	var code model.LobbyCode
	for {
		code = model.LobbyCode(m.random.String(CodeLength, CodeAlphabet))
		if _, taken := m.lobbies[code]; !taken {
			break
		}
	}

	lob := New(code, Config{
		MinPlayers: game.MinPlayers,
		MaxPlayers: game.MaxPlayers,
		NewGame: func(players []string) Game {
			return game.NewSession(players, m.clock.Now())
		},
	}, m.clock, m.random, m.logger)

	m.lobbies[code] = lob
	m.logger.Info("lobby created",
		slog.String("lobby", string(code)),
		slog.Int("lobby_count", len(m.lobbies)))
	return lob
}

// GetLobby retrieves a live lobby by code
func (m *Manager) GetLobby(code model.LobbyCode) (*Lobby, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lob, ok := m.lobbies[code]
	if !ok {
		return nil, model.ErrLobbyNotFound
	}
	return lob, nil
}

// StartGame starts a new game in the given lobby and archives a record of it.
// The game is already running once the record is written, so archive failures
// are logged rather than returned.
func (m *Manager) StartGame(ctx context.Context, code model.LobbyCode) (*model.GameRecord, error) {
	lob, err := m.GetLobby(code)
	if err != nil {
		return nil, err
	}

	players, err := lob.StartNewGame()
	if err != nil {
		return nil, err
	}

	record := &model.GameRecord{
		ID:        model.GameID(uuid.NewString()),
		LobbyCode: code,
		Players:   players,
		StartedAt: m.clock.Now(),
	}
	if err := m.storage.SaveGameRecord(ctx, record); err != nil {
		m.logger.Warn("game record not archived",
			slog.String("lobby", string(code)),
			slog.String("game_id", string(record.ID)),
			slog.Any("error", err))
	}
	return record, nil
}

// AdvanceRound advances the running game in the given lobby and returns the
// new round number
func (m *Manager) AdvanceRound(code model.LobbyCode) (int, error) {
	lob, err := m.GetLobby(code)
	if err != nil {
		return 0, err
	}

	g, err := lob.CurrentGame()
	if err != nil {
		return 0, err
	}
	session, ok := g.(*game.Session)
	if !ok {
		return 0, model.ErrNoActiveGame
	}
	return session.AdvanceRound(), nil
}

// RemoveLobby drops a lobby from the directory
func (m *Manager) RemoveLobby(code model.LobbyCode) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.lobbies[code]; ok {
		delete(m.lobbies, code)
		m.logger.Info("lobby removed", slog.String("lobby", string(code)))
	}
}

// Count returns the number of live lobbies
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.lobbies)
}

// Run prunes idle lobbies on a timer until ctx is cancelled
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.JanitorInterval)
	defer ticker.Stop()

	m.logger.Info("lobby janitor started",
		slog.Duration("interval", m.cfg.JanitorInterval),
		slog.Duration("idle_ttl", m.cfg.IdleTTL))
	for {
		select {
		case <-ctx.Done():
			m.logger.Info("lobby janitor stopped")
			return
		case <-ticker.C:
			m.PruneIdle()
		}
	}
}

// PruneIdle removes lobbies that have no connections and have been idle past
// IdleTTL, and returns the number removed. A lobby with a running game is
// prunable once every member has disconnected and the TTL has passed.
func (m *Manager) PruneIdle() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	removed := 0
	for code, lob := range m.lobbies {
		if lob.ConnectionCount() == 0 && now.Sub(lob.LastActive()) >= m.cfg.IdleTTL {
			delete(m.lobbies, code)
			removed++
			m.logger.Info("idle lobby pruned", slog.String("lobby", string(code)))
		}
	}
	return removed
}
