package response

import (
	"time"

	"github.com/conclave-gg/conclave/internal/lobby"
	"github.com/conclave-gg/conclave/internal/model"
)

// Lobby is a lobby summary in API responses. Field names match the view
// payloads broadcast to WebSocket members.
type Lobby struct {
	Code      string    `json:"code"`
	InGame    bool      `json:"inGame"`
	UserCount int       `json:"userCount"`
	Usernames []string  `json:"usernames"`
	CreatedAt time.Time `json:"createdAt"`
}

// LobbyFromInfo converts a lobby summary to a response
func LobbyFromInfo(info lobby.Info) Lobby {
	return Lobby{
		Code:      string(info.Code),
		InGame:    info.InGame,
		UserCount: info.UserCount,
		Usernames: info.Usernames,
		CreatedAt: info.CreatedAt,
	}
}

// GameRecord is an archived game in API responses
type GameRecord struct {
	ID        string    `json:"id"`
	LobbyCode string    `json:"lobbyCode"`
	Players   []string  `json:"players"`
	StartedAt time.Time `json:"startedAt"`
}

// GameRecordFromModel converts a model game record to a response
func GameRecordFromModel(record *model.GameRecord) GameRecord {
	return GameRecord{
		ID:        string(record.ID),
		LobbyCode: string(record.LobbyCode),
		Players:   record.Players,
		StartedAt: record.StartedAt,
	}
}

// GameRecordsFromModel converts a list of game records
func GameRecordsFromModel(records []*model.GameRecord) []GameRecord {
	out := make([]GameRecord, 0, len(records))
	for _, record := range records {
		out = append(out, GameRecordFromModel(record))
	}
	return out
}

// JoinCheck is the verdict for a prospective member name
type JoinCheck struct {
	CanJoin bool   `json:"canJoin"`
	Reason  string `json:"reason,omitempty"`
}

// Health reports service liveness and the live lobby count
type Health struct {
	Status  string `json:"status"`
	Lobbies int    `json:"lobbies"`
}
