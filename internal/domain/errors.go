package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrHallAlreadyExists   = errors.New("theatre hall with this name already exists")
	ErrGenreAlreadyExists  = errors.New("genre with this name already exists")
	ErrUnknownGenre        = errors.New("genre does not exist")
	ErrUnknownActor        = errors.New("actor does not exist")
	ErrRecordNotFound      = errors.New("record not found")
	ErrInvalidHallGeometry = errors.New("hall must have at least one row and one seat per row")

	ErrRowOutOfRange          = errors.New("row is out of range for the hall")
	ErrSeatOutOfRange         = errors.New("seat is out of range for the row")
	ErrInvalidSeat            = errors.New("seat does not exist in the hall")
	ErrDuplicateSeatInRequest = errors.New("seat is requested more than once")
	ErrUnknownPerformance     = errors.New("performance does not exist")
	ErrSeatAlreadyBooked      = errors.New("seat is no longer available")
	ErrEmptyReservation       = errors.New("reservation must contain at least one ticket")
	ErrStorageUnavailable     = errors.New("storage is unavailable")
)

// TicketError ties a failure to the position of the ticket in the request.
type TicketError struct {
	Index int
	Err   error
}

func (e *TicketError) Error() string {
	return fmt.Sprintf("ticket %d: %v", e.Index, e.Err)
}

func (e *TicketError) Unwrap() error {
	return e.Err
}

// ReservationError reports every rejected ticket of a reservation request.
// Nothing has been persisted when it is returned.
type ReservationError struct {
	Tickets []*TicketError
}

func (e *ReservationError) Error() string {
	msgs := make([]string, len(e.Tickets))
	for i, t := range e.Tickets {
		msgs[i] = t.Error()
	}

	return "reservation rejected: " + strings.Join(msgs, "; ")
}

func (e *ReservationError) Unwrap() []error {
	errs := make([]error, len(e.Tickets))
	for i, t := range e.Tickets {
		errs[i] = t
	}

	return errs
}
