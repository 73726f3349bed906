package cache

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// PresenceTTL bounds how long a board survives without any clock activity.
	PresenceTTL = 7 * 24 * time.Hour

	presenceKeyPrefix = "presence"
)

// PresenceBoard is the Redis read model of who is currently on site.
// One set per business: "presence:{businessID}" holding employee ids.
// The employee store stays authoritative; the board is updated from
// employee.clocked events and may lag behind it.
type PresenceBoard struct {
	client redis.Cmdable
}

// NewPresenceBoard returns a PresenceBoard backed by the given RedisClient.
func NewPresenceBoard(r *RedisClient) *PresenceBoard {
	return &PresenceBoard{client: r.Client()}
}

// Mark adds the employee to the board when checkedIn is true and removes them otherwise.
// Applying the same mark twice is harmless.
func (p *PresenceBoard) Mark(ctx context.Context, businessID uuid.UUID, employeeID string, checkedIn bool) error {
	key := presenceKey(businessID)
	pipe := p.client.TxPipeline()
	if checkedIn {
		pipe.SAdd(ctx, key, employeeID)
	} else {
		pipe.SRem(ctx, key, employeeID)
	}
	pipe.Expire(ctx, key, PresenceTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("presence mark: %w", err)
	}
	return nil
}

// OnSite returns the ids of checked-in employees, sorted.
func (p *PresenceBoard) OnSite(ctx context.Context, businessID uuid.UUID) ([]string, error) {
	ids, err := p.client.SMembers(ctx, presenceKey(businessID)).Result()
	if err != nil {
		return nil, fmt.Errorf("presence members: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// Reset drops the board of one business.
func (p *PresenceBoard) Reset(ctx context.Context, businessID uuid.UUID) error {
	if err := p.client.Del(ctx, presenceKey(businessID)).Err(); err != nil {
		return fmt.Errorf("presence reset: %w", err)
	}
	return nil
}

func presenceKey(businessID uuid.UUID) string {
	return presenceKeyPrefix + ":" + businessID.String()
}
