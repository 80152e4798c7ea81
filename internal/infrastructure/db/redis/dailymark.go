package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dailyMarkTTL = 48 * time.Hour

// DailyBillMarker provides a fast-path check for the one-bill-per-day rule.
// Key format: bill:daily:<user_id>:<yyyy-mm-dd>
type DailyBillMarker struct {
	client *redis.Client
}

// NewDailyBillMarker creates a DailyBillMarker wrapping the given Redis client.
func NewDailyBillMarker(client *redis.Client) *DailyBillMarker {
	return &DailyBillMarker{client: client}
}

// Seen reports whether the user already had a bill accepted on the given day.
func (m *DailyBillMarker) Seen(ctx context.Context, userID string, day time.Time) (bool, error) {
	n, err := m.client.Exists(ctx, m.key(userID, day)).Result()
	if err != nil {
		return false, fmt.Errorf("daily mark check: %w", err)
	}
	return n > 0, nil
}

// Mark records a successful bill submission for the day (expires after dailyMarkTTL).
func (m *DailyBillMarker) Mark(ctx context.Context, userID string, day time.Time) error {
	return m.client.Set(ctx, m.key(userID, day), "1", dailyMarkTTL).Err()
}

func (m *DailyBillMarker) key(userID string, day time.Time) string {
	return fmt.Sprintf("bill:daily:%s:%s", userID, day.UTC().Format("2006-01-02"))
}
