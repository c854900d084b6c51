package memory

import (
	"context"
	"sync"

	"github.com/conclave-gg/conclave/internal/model"
	"github.com/conclave-gg/conclave/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	records []*model.GameRecord
	byID    map[model.GameID]*model.GameRecord
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		byID: make(map[model.GameID]*model.GameRecord),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveGameRecord(ctx context.Context, record *model.GameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[record.ID]; !ok {
		s.records = append(s.records, record)
	}
	s.byID[record.ID] = record
	return nil
}

func (s *Storage) GetGameRecord(ctx context.Context, id model.GameID) (*model.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.byID[id]
	if !ok {
		return nil, model.ErrGameRecordNotFound
	}
	return record, nil
}

func (s *Storage) ListGameRecords(ctx context.Context, code model.LobbyCode) ([]*model.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []*model.GameRecord{}
	// Newest first: records are appended in save order
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].LobbyCode == code {
			result = append(result, s.records[i])
		}
	}
	return result, nil
}
