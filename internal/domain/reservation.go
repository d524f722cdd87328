package domain

import (
	"context"
	"fmt"
	"time"
)

type TicketRequest struct {
	PerformanceID int
	Row           int
	Seat          int
}

func (t TicketRequest) Position() SeatPosition {
	return SeatPosition{Row: t.Row, Seat: t.Seat}
}

type Ticket struct {
	ID            int
	ReservationID int
	PerformanceID int
	PlayTitle     string
	ShowTime      time.Time
	Row           int
	Seat          int
}

func (t Ticket) Position() SeatPosition {
	return SeatPosition{Row: t.Row, Seat: t.Seat}
}

func (t Ticket) String() string {
	return fmt.Sprintf("%s (row: %d, seat: %d)", t.PlayTitle, t.Row, t.Seat)
}

// Reservation owns its tickets. The ticket set is fixed once the reservation
// is created.
type Reservation struct {
	ID        int
	Code      string
	UserID    int
	Tickets   []Ticket
	CreatedAt time.Time
}

func (r Reservation) String() string {
	return r.CreatedAt.String()
}

// ReservationRepository persists reservations. Create must store the
// reservation and all of its tickets atomically, and report a seat taken
// by another reservation as a *TicketError wrapping ErrSeatAlreadyBooked.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *Reservation) error
	GetByIdAndUserId(ctx context.Context, id, userId int) (*Reservation, error)
	GetAllByUserId(ctx context.Context, userId int) ([]Reservation, error)
}
