package domain

import (
	"context"
	"time"
)

// HallGeometry is the seating grid of a hall. Rows and seats are numbered
// from 1.
type HallGeometry struct {
	Rows       int
	SeatsInRow int
}

func NewHallGeometry(rows, seatsInRow int) (HallGeometry, error) {
	if rows < 1 || seatsInRow < 1 {
		return HallGeometry{}, ErrInvalidHallGeometry
	}

	return HallGeometry{Rows: rows, SeatsInRow: seatsInRow}, nil
}

func (g HallGeometry) Capacity() int {
	return g.Rows * g.SeatsInRow
}

type TheatreHall struct {
	ID        int
	Name      string
	Geometry  HallGeometry
	CreatedAt time.Time
}

func (h TheatreHall) String() string {
	return h.Name
}

type HallRepository interface {
	Create(ctx context.Context, hall *TheatreHall) error
	GetById(ctx context.Context, id int) (*TheatreHall, error)
	GetAll(ctx context.Context) ([]TheatreHall, error)
}
