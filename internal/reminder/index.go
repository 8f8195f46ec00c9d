package reminder

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// PendingKey is the sorted set polled by the notification dispatcher.
// Members are reminder ids scored by the unix second they are due.
const PendingKey = "reminders:pending"

type Index interface {
	Add(ctx context.Context, reminders []models.AppointmentReminder) error
	Remove(ctx context.Context, ids []uuid.UUID) error
}

type RedisIndex struct {
	client *redis.Client
	key    string
}

func NewRedisIndex(client *redis.Client) *RedisIndex {
	return &RedisIndex{client: client, key: PendingKey}
}

// Connect parses a redis:// URL and checks the server is reachable.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (r *RedisIndex) Add(ctx context.Context, reminders []models.AppointmentReminder) error {
	members := make([]*redis.Z, 0, len(reminders))
	for _, rem := range reminders {
		if rem.Sent {
			continue
		}
		members = append(members, &redis.Z{
			Score:  float64(rem.ScheduledFor.Unix()),
			Member: rem.ID.String(),
		})
	}
	if len(members) == 0 {
		return nil
	}

	if err := r.client.ZAdd(ctx, r.key, members...).Err(); err != nil {
		return fmt.Errorf("zadd %s: %w", r.key, err)
	}
	return nil
}

func (r *RedisIndex) Remove(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	members := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		members = append(members, id.String())
	}

	if err := r.client.ZRem(ctx, r.key, members...).Err(); err != nil {
		return fmt.Errorf("zrem %s: %w", r.key, err)
	}
	return nil
}

// NopIndex is used when no redis is configured.
type NopIndex struct{}

func (NopIndex) Add(context.Context, []models.AppointmentReminder) error { return nil }
func (NopIndex) Remove(context.Context, []uuid.UUID) error               { return nil }

var (
	_ Index = (*RedisIndex)(nil)
	_ Index = NopIndex{}
)
