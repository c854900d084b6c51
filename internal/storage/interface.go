package storage

import (
	"context"

	"github.com/conclave-gg/conclave/internal/model"
)

// Storage defines the interface for game-record persistence. Live lobbies are
// process-local and never stored; the record of each started game is the one
// durable artifact.
type Storage interface {
	SaveGameRecord(ctx context.Context, record *model.GameRecord) error
	GetGameRecord(ctx context.Context, id model.GameID) (*model.GameRecord, error)
	// ListGameRecords returns the records for a lobby code, newest first
	ListGameRecords(ctx context.Context, code model.LobbyCode) ([]*model.GameRecord, error)
}
