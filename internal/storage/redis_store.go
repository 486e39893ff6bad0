package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"travel-trend-blogger/internal/config"
)

const statusTTL = 90 * 24 * time.Hour

// RedisStore keeps schedule status in Redis so a restarted process can tell
// whether it missed a trigger.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// DialRedis creates a Redis client from configuration. It does not connect
// until the first command.
func DialRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func statusKey(schedule string) string {
	return fmt.Sprintf("blogger:schedule:%s", schedule)
}

// Load returns the stored status, or a zero status when none exists.
func (s *RedisStore) Load(ctx context.Context, schedule string) (ScheduleStatus, error) {
	b, err := s.rdb.Get(ctx, statusKey(schedule)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ScheduleStatus{}, nil
	}
	if err != nil {
		return ScheduleStatus{}, err
	}
	var st ScheduleStatus
	if err := json.Unmarshal(b, &st); err != nil {
		return ScheduleStatus{}, fmt.Errorf("storage: decode status %s: %w", schedule, err)
	}
	return st, nil
}

// Save stores the status; it expires if the schedule stops running.
func (s *RedisStore) Save(ctx context.Context, schedule string, st ScheduleStatus) error {
	st.LastUpdated = time.Now().UTC()
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, statusKey(schedule), b, statusTTL).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
