package domain

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

type SeatPosition struct {
	Row  int
	Seat int
}

type SeatSet map[SeatPosition]struct{}

func NewSeatSet(positions ...SeatPosition) SeatSet {
	set := make(SeatSet, len(positions))
	for _, p := range positions {
		set[p] = struct{}{}
	}

	return set
}

func (s SeatSet) Contains(p SeatPosition) bool {
	_, ok := s[p]
	return ok
}

// Positions lists the set ordered by row, then seat.
func (s SeatSet) Positions() []SeatPosition {
	positions := make([]SeatPosition, 0, len(s))
	for p := range s {
		positions = append(positions, p)
	}

	slices.SortFunc(positions, func(a, b SeatPosition) int {
		return cmp.Or(cmp.Compare(a.Row, b.Row), cmp.Compare(a.Seat, b.Seat))
	})

	return positions
}

// SeatError describes one coordinate that falls outside the hall grid.
// Kind is either ErrRowOutOfRange or ErrSeatOutOfRange.
type SeatError struct {
	Kind  error
	Value int
	Max   int
}

func (e *SeatError) Field() string {
	if errors.Is(e.Kind, ErrRowOutOfRange) {
		return "row"
	}

	return "seat"
}

func (e *SeatError) Error() string {
	return fmt.Sprintf("%s must be between 1 and %d, got %d", e.Field(), e.Max, e.Value)
}

func (e *SeatError) Unwrap() []error {
	return []error{ErrInvalidSeat, e.Kind}
}

// ValidateSeat checks row and seat against the hall grid. Both coordinates
// are always checked, so the returned error may hold two *SeatError values.
func ValidateSeat(row, seat int, hall HallGeometry) error {
	var errs []error

	if row < 1 || row > hall.Rows {
		errs = append(errs, &SeatError{Kind: ErrRowOutOfRange, Value: row, Max: hall.Rows})
	}

	if seat < 1 || seat > hall.SeatsInRow {
		errs = append(errs, &SeatError{Kind: ErrSeatOutOfRange, Value: seat, Max: hall.SeatsInRow})
	}

	return errors.Join(errs...)
}

// SeatErrors flattens the *SeatError values held by err.
func SeatErrors(err error) []*SeatError {
	switch e := err.(type) {
	case *SeatError:
		return []*SeatError{e}
	case interface{ Unwrap() []error }:
		var result []*SeatError
		for _, inner := range e.Unwrap() {
			result = append(result, SeatErrors(inner)...)
		}
		return result
	case interface{ Unwrap() error }:
		return SeatErrors(e.Unwrap())
	default:
		return nil
	}
}
