package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/metinatakli/theatre-booking-system/internal/domain"
)

// PerformanceCache keeps resolved performances. Performance and hall records
// are read-only for booking, so entries never need to be invalidated here.
type PerformanceCache interface {
	Get(ctx context.Context, id int) (*domain.Performance, bool, error)
	Set(ctx context.Context, performance *domain.Performance) error
}

type Catalog struct {
	performances domain.PerformanceRepository
	cache        PerformanceCache
	logger       *slog.Logger
}

type CatalogOption func(*Catalog)

// WithCache puts a cache in front of performance lookups.
func WithCache(cache PerformanceCache) CatalogOption {
	return func(c *Catalog) {
		c.cache = cache
	}
}

func NewCatalog(performances domain.PerformanceRepository, logger *slog.Logger, opts ...CatalogOption) *Catalog {
	c := &Catalog{
		performances: performances,
		logger:       logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Performance resolves a performance together with the geometry of its hall.
// It returns ErrUnknownPerformance when no such performance exists.
func (c *Catalog) Performance(ctx context.Context, id int) (*domain.Performance, error) {
	if c.cache != nil {
		performance, ok, err := c.cache.Get(ctx, id)
		if err != nil {
			c.logger.Warn("failed to read performance from cache", "performance_id", id, "error", err)
		} else if ok {
			return performance, nil
		}
	}

	performance, err := c.performances.GetById(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrUnknownPerformance
		}

		return nil, fmt.Errorf("failed to get performance %d: %w", id, err)
	}

	if c.cache != nil {
		err = c.cache.Set(ctx, performance)
		if err != nil {
			c.logger.Warn("failed to cache performance", "performance_id", id, "error", err)
		}
	}

	return performance, nil
}

// TicketsFor returns the seats already sold for a performance.
func (c *Catalog) TicketsFor(ctx context.Context, performanceID int) (domain.SeatSet, error) {
	seats, err := c.performances.GetTakenSeats(ctx, performanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get taken seats of performance %d: %w", performanceID, err)
	}

	return domain.NewSeatSet(seats...), nil
}

// AvailableSeats is the hall capacity minus the tickets committed so far.
// The value is advisory and not read inside any booking transaction.
func (c *Catalog) AvailableSeats(ctx context.Context, performanceID int) (int, error) {
	performance, err := c.Performance(ctx, performanceID)
	if err != nil {
		return 0, err
	}

	sold, err := c.performances.CountTickets(ctx, performanceID)
	if err != nil {
		return 0, fmt.Errorf("failed to count tickets of performance %d: %w", performanceID, err)
	}

	return performance.Hall.Capacity() - sold, nil
}
