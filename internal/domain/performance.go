package domain

import (
	"context"
	"time"
)

// Performance is a scheduled showing of a play. Hall holds the geometry of
// the hosting hall as read from storage, which is the valid seat space for
// its tickets.
type Performance struct {
	ID        int
	PlayID    int
	PlayTitle string
	HallID    int
	HallName  string
	Hall      HallGeometry
	ShowTime  time.Time
}

func (p Performance) String() string {
	return p.PlayTitle
}

type PerformanceSummary struct {
	Performance
	TicketsAvailable int
}

type PerformanceRepository interface {
	Create(ctx context.Context, performance *Performance) error
	GetById(ctx context.Context, id int) (*Performance, error)
	GetAllWithAvailability(ctx context.Context) ([]PerformanceSummary, error)
	GetTakenSeats(ctx context.Context, performanceId int) ([]SeatPosition, error)
	CountTickets(ctx context.Context, performanceId int) (int, error)
}
