package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/metinatakli/theatre-booking-system/internal/domain"
	"github.com/redis/go-redis/v9"
)

const DefaultPerformanceTTL = 10 * time.Minute

// PerformanceCache stores resolved performances in Redis as JSON. Entries
// expire after ttl.
type PerformanceCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewPerformanceCache(client redis.UniversalClient, ttl time.Duration) *PerformanceCache {
	if ttl <= 0 {
		ttl = DefaultPerformanceTTL
	}

	return &PerformanceCache{
		client: client,
		ttl:    ttl,
	}
}

func performanceKey(id int) string {
	return fmt.Sprintf("performance:%d", id)
}

type cachedPerformance struct {
	ID         int       `json:"id"`
	PlayID     int       `json:"playId"`
	PlayTitle  string    `json:"playTitle"`
	HallID     int       `json:"hallId"`
	HallName   string    `json:"hallName"`
	Rows       int       `json:"rows"`
	SeatsInRow int       `json:"seatsInRow"`
	ShowTime   time.Time `json:"showTime"`
}

func (c *PerformanceCache) Get(ctx context.Context, id int) (*domain.Performance, bool, error) {
	data, err := c.client.Get(ctx, performanceKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, err
	}

	var cached cachedPerformance
	err = json.Unmarshal(data, &cached)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode cached performance %d: %w", id, err)
	}

	return &domain.Performance{
		ID:        cached.ID,
		PlayID:    cached.PlayID,
		PlayTitle: cached.PlayTitle,
		HallID:    cached.HallID,
		HallName:  cached.HallName,
		Hall:      domain.HallGeometry{Rows: cached.Rows, SeatsInRow: cached.SeatsInRow},
		ShowTime:  cached.ShowTime,
	}, true, nil
}

func (c *PerformanceCache) Set(ctx context.Context, performance *domain.Performance) error {
	data, err := json.Marshal(cachedPerformance{
		ID:         performance.ID,
		PlayID:     performance.PlayID,
		PlayTitle:  performance.PlayTitle,
		HallID:     performance.HallID,
		HallName:   performance.HallName,
		Rows:       performance.Hall.Rows,
		SeatsInRow: performance.Hall.SeatsInRow,
		ShowTime:   performance.ShowTime,
	})
	if err != nil {
		return err
	}

	return c.client.Set(ctx, performanceKey(performance.ID), data, c.ttl).Err()
}
