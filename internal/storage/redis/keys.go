package redis

import (
	"fmt"

	"github.com/conclave-gg/conclave/internal/model"
)

// Key prefix for all lobby-service data
const keyPrefix = "conclave"

// gameRecordKey returns the Redis key for a GameRecord
func gameRecordKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// recordsForLobbyIndexKey returns the Redis key for the sorted set of record
// keys for a lobby, scored by game start time
func recordsForLobbyIndexKey(code model.LobbyCode) string {
	return fmt.Sprintf("%s:idx:games_for_lobby:%s", keyPrefix, code)
}
