package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"motor-monitor/entities"

	"github.com/redis/go-redis/v9"
)

// LiveReadingTTL drops snapshots of motors that stopped reporting.
const LiveReadingTTL = 24 * time.Hour

type liveReadingRedisRepository struct {
	client *redis.Client
}

func NewLiveReadingRedisRepository(client *redis.Client) LiveReadingRepository {
	return &liveReadingRedisRepository{client: client}
}

func liveReadingKey(motorID uint) string {
	return fmt.Sprintf("motor:last:%d", motorID)
}

func (r *liveReadingRedisRepository) Save(ctx context.Context, reading entities.Reading) error {
	payload, err := json.Marshal(reading)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, liveReadingKey(reading.MotorID), payload, LiveReadingTTL).Err(); err != nil {
		return fmt.Errorf("redis set live reading: %w", err)
	}
	return nil
}

func (r *liveReadingRedisRepository) Get(ctx context.Context, motorID uint) (*entities.Reading, error) {
	payload, err := r.client.Get(ctx, liveReadingKey(motorID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get live reading: %w", err)
	}
	var reading entities.Reading
	if err := json.Unmarshal(payload, &reading); err != nil {
		return nil, fmt.Errorf("decode live reading: %w", err)
	}
	return &reading, nil
}
