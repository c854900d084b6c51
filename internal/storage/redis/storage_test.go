package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/conclave-gg/conclave/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.RecordTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) record(id model.GameID, code model.LobbyCode, startedAt time.Time) *model.GameRecord {
	return &model.GameRecord{
		ID:        id,
		LobbyCode: code,
		Players:   []string{"alice", "bob", "carol", "dave", "erin"},
		StartedAt: startedAt,
	}
}

func (s *StorageSuite) TestSaveAndGetGameRecord() {
	record := s.record("game-1", "ABC234", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	err := s.storage.SaveGameRecord(s.ctx, record)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGameRecord(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(record.ID, retrieved.ID)
	s.Equal(record.LobbyCode, retrieved.LobbyCode)
	s.Equal(record.Players, retrieved.Players)
	s.True(record.StartedAt.Equal(retrieved.StartedAt))
}

func (s *StorageSuite) TestGetGameRecordNotFound() {
	_, err := s.storage.GetGameRecord(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameRecordNotFound)
}

func (s *StorageSuite) TestListGameRecordsNewestFirst() {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	_ = s.storage.SaveGameRecord(s.ctx, s.record("game-1", "ABC234", base))
	_ = s.storage.SaveGameRecord(s.ctx, s.record("game-2", "ABC234", base.Add(time.Hour)))
	_ = s.storage.SaveGameRecord(s.ctx, s.record("game-3", "XYZ789", base.Add(2*time.Hour)))

	records, err := s.storage.ListGameRecords(s.ctx, "ABC234")
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal(model.GameID("game-2"), records[0].ID)
	s.Equal(model.GameID("game-1"), records[1].ID)
}

func (s *StorageSuite) TestListGameRecordsEmpty() {
	records, err := s.storage.ListGameRecords(s.ctx, "NONE")
	s.Require().NoError(err)
	s.Empty(records)
}

func (s *StorageSuite) TestListSkipsExpiredRecords() {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	_ = s.storage.SaveGameRecord(s.ctx, s.record("game-1", "ABC234", base))
	_ = s.storage.SaveGameRecord(s.ctx, s.record("game-2", "ABC234", base.Add(time.Hour)))

	// Expire one record's value while its index entry survives
	s.mini.Del(gameRecordKey("game-1"))

	records, err := s.storage.ListGameRecords(s.ctx, "ABC234")
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal(model.GameID("game-2"), records[0].ID)
}

func (s *StorageSuite) TestGameRecordTTL() {
	record := s.record("game-1", "ABC234", time.Now())
	_ = s.storage.SaveGameRecord(s.ctx, record)

	s.True(s.mini.TTL(gameRecordKey("game-1")) > 0, "Record should have TTL")
	s.True(s.mini.TTL(recordsForLobbyIndexKey("ABC234")) > 0, "Index should have TTL")
}
