package lobby

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/conclave-gg/conclave/internal/dependencies/clock"
	"github.com/conclave-gg/conclave/internal/dependencies/random"
	"github.com/conclave-gg/conclave/internal/model"
)

// Conn is one live client connection as the lobby sees it. Implementations
// are pointer types, so two Conn values are equal iff they are the same
// connection. Send must be fire-and-forget and must never block; delivery
// failures are the transport's concern.
type Conn interface {
	Send(message []byte)
}

// Game is the running game instance as the lobby sees it. Snapshot returns a
// freshly allocated serializable view; the lobby annotates and marshals it but
// never mutates the game itself.
type Game interface {
	Snapshot() map[string]any
}

// Config carries the game-facing parameters a lobby is constructed with
type Config struct {
	// MinPlayers is the fewest active names StartNewGame accepts
	MinPlayers int
	// MaxPlayers caps the active-name count while gathering
	MaxPlayers int
	// NewGame constructs the game instance from a seating order.
	// Implementations must copy the slice if they retain it.
	NewGame func(players []string) Game
}

// Lobby coordinates membership for a single game session: which connections
// represent which names, who may join or rejoin, the one transition from
// gathering players to a running game, and fan-out of state to members.
//
// All state is guarded by a single mutex per lobby. View rendering and
// per-connection enqueue happen under it; Send never performs network I/O, so
// every member observes broadcasts in mutation order.
type Lobby struct {
	code      model.LobbyCode
	cfg       Config
	clock     clock.Clock
	random    random.Random
	logger    *slog.Logger
	createdAt time.Time

	mu           sync.Mutex
	reg          *registry
	participants map[string]struct{}
	game         Game
	lastActive   time.Time
}

// New creates an empty lobby in the gathering state
func New(code model.LobbyCode, cfg Config, clk clock.Clock, rnd random.Random, logger *slog.Logger) *Lobby {
	now := clk.Now()
	return &Lobby{
		code:         code,
		cfg:          cfg,
		clock:        clk,
		random:       rnd,
		logger:       logger.With(slog.String("lobby", string(code))),
		createdAt:    now,
		reg:          newRegistry(),
		participants: make(map[string]struct{}),
		lastActive:   now,
	}
}

// Code returns the lobby's join code
func (l *Lobby) Code() model.LobbyCode {
	return l.code
}

// CreatedAt returns the lobby's creation time
func (l *Lobby) CreatedAt() time.Time {
	return l.createdAt
}

// HasConnection reports whether conn is currently registered
func (l *Lobby) HasConnection(conn Conn) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.hasConn(conn)
}

// HasName reports whether name is currently active
func (l *Lobby) HasName(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.hasName(name)
}

// CanRejoin reports whether name belongs to the running game's participant
// snapshot and is still in the active set. Reconnecting mid-game replaces the
// connection of a still-active name; once a name has fully left the active
// set it no longer qualifies.
func (l *Lobby) CanRejoin(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.canRejoinLocked(name)
}

func (l *Lobby) canRejoinLocked(name string) bool {
	_, participated := l.participants[name]
	return participated && l.reg.hasName(name)
}

// IsFull reports whether the active-name count has reached MaxPlayers
func (l *Lobby) IsFull() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.isFullLocked()
}

func (l *Lobby) isFullLocked() bool {
	return l.reg.activeCount() >= l.cfg.MaxPlayers
}

// Join registers conn under name. Fails with ErrDuplicateConnection if conn
// is already registered; with ErrGameInProgress if a game is running and name
// cannot rejoin it; with ErrLobbyFull or ErrDuplicateName while gathering.
// Callers broadcast after a successful join.
func (l *Lobby) Join(conn Conn, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.reg.hasConn(conn) {
		return model.ErrDuplicateConnection
	}

	if l.game != nil {
		if !l.canRejoinLocked(name) {
			return model.ErrGameInProgress
		}
		l.reg.rebind(conn, name)
		l.touchLocked()
		l.logger.Info("member rejoined", slog.String("name", name))
		return nil
	}

	if l.isFullLocked() {
		return model.ErrLobbyFull
	}
	if l.reg.hasName(name) {
		return model.ErrDuplicateName
	}

	l.reg.add(conn, name)
	l.touchLocked()
	l.logger.Info("member joined",
		slog.String("name", name),
		slog.Int("user_count", l.reg.activeCount()))
	return nil
}

// CheckJoin reports whether a new connection could join under name right now,
// without mutating anything. The returned error is the policy error Join
// would produce, or nil if the join would be accepted.
func (l *Lobby) CheckJoin(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.game != nil {
		if !l.canRejoinLocked(name) {
			return model.ErrGameInProgress
		}
		return nil
	}
	if l.isFullLocked() {
		return model.ErrLobbyFull
	}
	if l.reg.hasName(name) {
		return model.ErrDuplicateName
	}
	return nil
}

// Leave unregisters conn and removes its name from the active set. The name
// comes out of the active set even if another connection is still bound to
// it. Fails with ErrUnknownConnection if conn is not registered. Callers
// broadcast after a successful leave.
func (l *Lobby) Leave(conn Conn) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	name, ok := l.reg.remove(conn)
	if !ok {
		return model.ErrUnknownConnection
	}
	l.touchLocked()
	l.logger.Info("member left",
		slog.String("name", name),
		slog.Int("user_count", l.reg.activeCount()))
	return nil
}

// StartNewGame snapshots the active names as the game's participants,
// shuffles them into a seating order, constructs the game instance, and moves
// the lobby into the in-game state. It returns the seating order handed to
// the game. Fails with ErrNotEnoughPlayers, ErrTooManyPlayers, or
// ErrAlreadyInGame.
func (l *Lobby) StartNewGame() ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	count := l.reg.activeCount()
	if count < l.cfg.MinPlayers {
		return nil, model.ErrNotEnoughPlayers
	}
	if count > l.cfg.MaxPlayers {
		return nil, model.ErrTooManyPlayers
	}
	if l.game != nil {
		return nil, model.ErrAlreadyInGame
	}

	seating := l.reg.activeNames()
	l.random.Shuffle(len(seating), func(i, j int) {
		seating[i], seating[j] = seating[j], seating[i]
	})

	l.participants = make(map[string]struct{}, len(seating))
	for _, name := range seating {
		l.participants[name] = struct{}{}
	}

	l.game = l.cfg.NewGame(seating)
	l.touchLocked()
	l.logger.Info("game started",
		slog.Int("player_count", len(seating)),
		slog.Any("players", seating))
	return seating, nil
}

// CurrentGame returns the running game instance as a shared read-only view.
// Fails with ErrNoActiveGame while gathering.
func (l *Lobby) CurrentGame() (Game, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.game == nil {
		return nil, model.ErrNoActiveGame
	}
	return l.game, nil
}

// BroadcastToAll renders the current view once and enqueues it to every
// registered connection. A full or broken connection cannot affect the others.
func (l *Lobby) BroadcastToAll() {
	l.mu.Lock()
	defer l.mu.Unlock()

	payload, err := l.renderLocked()
	if err != nil {
		l.logger.Error("view render failed", slog.Any("error", err))
		return
	}
	for conn := range l.reg.conns {
		conn.Send(payload)
	}
}

// BroadcastToOne renders the current view and enqueues it to conn only.
// Fails with ErrUnknownConnection if conn is not registered.
func (l *Lobby) BroadcastToOne(conn Conn) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.reg.hasConn(conn) {
		return model.ErrUnknownConnection
	}
	payload, err := l.renderLocked()
	if err != nil {
		l.logger.Error("view render failed", slog.Any("error", err))
		return err
	}
	conn.Send(payload)
	return nil
}

// renderLocked serializes the view every member should currently see: the
// game's snapshot when one is running, otherwise the roster of active names.
func (l *Lobby) renderLocked() ([]byte, error) {
	var view map[string]any
	if l.game != nil {
		view = l.game.Snapshot()
		view["inGame"] = true
	} else {
		view = map[string]any{
			"inGame":    false,
			"userCount": l.reg.activeCount(),
			"usernames": l.reg.activeNames(),
		}
	}
	return json.Marshal(view)
}

func (l *Lobby) touchLocked() {
	l.lastActive = l.clock.Now()
}

// ActiveNames returns the active names in insertion order
func (l *Lobby) ActiveNames() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.activeNames()
}

// ActiveCount returns the number of active names
func (l *Lobby) ActiveCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.activeCount()
}

// ConnectionCount returns the number of registered connections
func (l *Lobby) ConnectionCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.connCount()
}

// InGame reports whether a game is running
func (l *Lobby) InGame() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.game != nil
}

// LastActive returns the time of the last membership or game-lifecycle change
func (l *Lobby) LastActive() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastActive
}

// Info is a point-in-time summary of lobby state read under one lock
type Info struct {
	Code       model.LobbyCode
	InGame     bool
	UserCount  int
	Usernames  []string
	CreatedAt  time.Time
	LastActive time.Time
}

// Info returns a consistent summary of the lobby's current state
func (l *Lobby) Info() Info {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Info{
		Code:       l.code,
		InGame:     l.game != nil,
		UserCount:  l.reg.activeCount(),
		Usernames:  l.reg.activeNames(),
		CreatedAt:  l.createdAt,
		LastActive: l.lastActive,
	}
}
