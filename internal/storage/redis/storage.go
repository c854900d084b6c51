package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/conclave-gg/conclave/internal/model"
	"github.com/conclave-gg/conclave/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveGameRecord(ctx context.Context, record *model.GameRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	key := gameRecordKey(record.ID)
	indexKey := recordsForLobbyIndexKey(record.LobbyCode)

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, s.cfg.RecordTTL)
	pipe.ZAdd(ctx, indexKey, redis.Z{
		Score:  float64(record.StartedAt.UnixMilli()),
		Member: key,
	})
	pipe.Expire(ctx, indexKey, s.cfg.RecordTTL) // Keep index TTL in sync
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGameRecord(ctx context.Context, id model.GameID) (*model.GameRecord, error) {
	data, err := s.client.Get(ctx, gameRecordKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameRecordNotFound
		}
		return nil, err
	}

	var record model.GameRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Storage) ListGameRecords(ctx context.Context, code model.LobbyCode) ([]*model.GameRecord, error) {
	indexKey := recordsForLobbyIndexKey(code)

	// Highest score first = newest first
	recordKeys, err := s.client.ZRevRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	if len(recordKeys) == 0 {
		return []*model.GameRecord{}, nil
	}

	values, err := s.client.MGet(ctx, recordKeys...).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*model.GameRecord, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Record may have expired ahead of its index entry
		}
		var record model.GameRecord
		if err := json.Unmarshal([]byte(val.(string)), &record); err != nil {
			continue // Skip invalid data
		}
		records = append(records, &record)
	}

	return records, nil
}
