package queue

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrQueueFull is returned when the memory driver's buffer is at capacity.
var ErrQueueFull = errors.New("queue: full")

const (
	redisJobsKey    = "medicart:queue:jobs"
	redisDelayedKey = "medicart:queue:delayed"
)

// RedisDriver backs the queue with a Redis list; delayed jobs sit in a
// sorted set scored by their run-at timestamp and are promoted by a
// background ticker.
type RedisDriver struct {
	rdb *redis.Client
}

// NewRedisDriver wraps the shared Redis client. ctx bounds the delayed-job
// promoter.
func NewRedisDriver(ctx context.Context, rdb *redis.Client) *RedisDriver {
	d := &RedisDriver{rdb: rdb}
	go d.promoteDelayed(ctx)
	return d
}

func (d *RedisDriver) Push(payload []byte) error {
	if err := d.rdb.LPush(context.Background(), redisJobsKey, payload).Err(); err != nil {
		return fmt.Errorf("queue/redis: push: %w", err)
	}
	return nil
}

// Pop blocks up to 5s for a job. A nil payload with nil error means the
// timeout expired with the queue empty.
func (d *RedisDriver) Pop(ctx context.Context) ([]byte, error) {
	result, err := d.rdb.BRPop(ctx, 5*time.Second, redisJobsKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("queue/redis: pop: %w", err)
	}
	if len(result) < 2 {
		return nil, nil
	}
	return []byte(result[1]), nil
}

// PushDelayed schedules payload to become poppable after delay.
func (d *RedisDriver) PushDelayed(payload []byte, delay time.Duration) error {
	score := float64(time.Now().Add(delay).Unix())
	err := d.rdb.ZAdd(context.Background(), redisDelayedKey, redis.Z{
		Score:  score,
		Member: string(payload),
	}).Err()
	if err != nil {
		return fmt.Errorf("queue/redis: push delayed: %w", err)
	}
	return nil
}

func (d *RedisDriver) promoteDelayed(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		now := strconv.FormatInt(time.Now().Unix(), 10)
		due, err := d.rdb.ZRangeByScore(ctx, redisDelayedKey, &redis.ZRangeBy{
			Min: "-inf",
			Max: now,
		}).Result()
		if err != nil || len(due) == 0 {
			continue
		}

		pipe := d.rdb.Pipeline()
		for _, payload := range due {
			pipe.ZRem(ctx, redisDelayedKey, payload)
			pipe.LPush(ctx, redisJobsKey, []byte(payload))
		}
		pipe.Exec(ctx) //nolint:errcheck
	}
}
