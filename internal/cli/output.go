package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Lobby:
		o.printLobby(v)
	case JoinCheck:
		o.printJoinCheck(v)
	case GameRecord:
		o.printGameRecord(v)
	case []GameRecord:
		o.printGameRecords(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Lobby response type (matches API)
type Lobby struct {
	Code      string    `json:"code"`
	InGame    bool      `json:"inGame"`
	UserCount int       `json:"userCount"`
	Usernames []string  `json:"usernames"`
	CreatedAt time.Time `json:"createdAt"`
}

// JoinCheck response type
type JoinCheck struct {
	CanJoin bool   `json:"canJoin"`
	Reason  string `json:"reason"`
}

// GameRecord response type
type GameRecord struct {
	ID        string    `json:"id"`
	LobbyCode string    `json:"lobbyCode"`
	Players   []string  `json:"players"`
	StartedAt time.Time `json:"startedAt"`
}

// HealthResult response type
type HealthResult struct {
	Status  string `json:"status"`
	Lobbies int    `json:"lobbies"`
}

func (o *Output) printLobby(l Lobby) {
	state := "gathering"
	if l.InGame {
		state = "in game"
	}

	fmt.Printf("Lobby: %s\n", l.Code)
	fmt.Printf("State: %s\n", state)
	fmt.Printf("Created: %s\n", l.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Members (%d):\n", l.UserCount)
	for _, name := range l.Usernames {
		fmt.Printf("  - %s\n", name)
	}
}

func (o *Output) printJoinCheck(j JoinCheck) {
	if j.CanJoin {
		fmt.Println("Can join: yes")
	} else {
		fmt.Printf("Can join: no (%s)\n", j.Reason)
	}
}

func (o *Output) printGameRecord(g GameRecord) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Lobby: %s\n", g.LobbyCode)
	fmt.Printf("Started: %s\n", g.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Players (%d): %s\n", len(g.Players), strings.Join(g.Players, ", "))
}

func (o *Output) printGameRecords(records []GameRecord) {
	fmt.Printf("Games (%d):\n", len(records))
	for _, g := range records {
		fmt.Printf("  - %s  started %s  %d players\n",
			g.ID, g.StartedAt.Local().Format("2006-01-02 15:04:05"), len(g.Players))
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	fmt.Printf("Lobbies: %d\n", h.Lobbies)
}
