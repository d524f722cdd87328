package booking

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/metinatakli/theatre-booking-system/internal/domain"
	"github.com/metinatakli/theatre-booking-system/internal/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var showTime = time.Date(2025, time.March, 14, 19, 30, 0, 0, time.UTC)

type ManagerTestSuite struct {
	suite.Suite
	store   *mocks.InMemoryBookingStore
	catalog *Catalog
	manager *Manager
}

func (s *ManagerTestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.store = mocks.NewInMemoryBookingStore()
	s.store.AddPerformance(domain.Performance{
		ID:        1,
		PlayTitle: "Hamlet",
		Hall:      domain.HallGeometry{Rows: 10, SeatsInRow: 10},
		ShowTime:  showTime,
	})
	s.store.AddPerformance(domain.Performance{
		ID:        2,
		PlayTitle: "The Seagull",
		Hall:      domain.HallGeometry{Rows: 5, SeatsInRow: 10},
		ShowTime:  showTime.Add(24 * time.Hour),
	})

	s.catalog = NewCatalog(s.store, logger)
	s.manager = NewManager(s.catalog, s.store.Reservations(), logger)
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerTestSuite))
}

func (s *ManagerTestSuite) requireRejected(err error, wantIndex int, wantKind error) {
	var reservationErr *domain.ReservationError
	s.Require().ErrorAs(err, &reservationErr)

	for _, ticketErr := range reservationErr.Tickets {
		if ticketErr.Index == wantIndex && errors.Is(ticketErr, wantKind) {
			return
		}
	}

	s.Failf("ticket error not found", "want index %d with %v, got %v", wantIndex, wantKind, err)
}

func (s *ManagerTestSuite) TestCreateReservation() {
	tests := []struct {
		name        string
		setup       func()
		requests    []domain.TicketRequest
		wantErr     error
		wantIndex   int
		wantTickets int
	}{
		{
			name:        "should book the last seat of the last row",
			requests:    []domain.TicketRequest{{PerformanceID: 1, Row: 10, Seat: 10}},
			wantTickets: 1,
		},
		{
			name: "should book tickets across performances",
			requests: []domain.TicketRequest{
				{PerformanceID: 1, Row: 1, Seat: 1},
				{PerformanceID: 2, Row: 1, Seat: 1},
				{PerformanceID: 2, Row: 1, Seat: 2},
			},
			wantTickets: 3,
		},
		{
			name:     "should reject empty reservation",
			requests: nil,
			wantErr:  domain.ErrEmptyReservation,
		},
		{
			name:      "should reject row past the hall",
			requests:  []domain.TicketRequest{{PerformanceID: 1, Row: 11, Seat: 1}},
			wantErr:   domain.ErrRowOutOfRange,
			wantIndex: 0,
		},
		{
			name: "should reject seat zero on the second ticket",
			requests: []domain.TicketRequest{
				{PerformanceID: 1, Row: 1, Seat: 1},
				{PerformanceID: 1, Row: 1, Seat: 0},
			},
			wantErr:   domain.ErrSeatOutOfRange,
			wantIndex: 1,
		},
		{
			name: "should validate against the hall of each performance",
			requests: []domain.TicketRequest{
				{PerformanceID: 2, Row: 8, Seat: 1},
			},
			wantErr:   domain.ErrInvalidSeat,
			wantIndex: 0,
		},
		{
			name: "should reject the later duplicate in one request",
			requests: []domain.TicketRequest{
				{PerformanceID: 1, Row: 4, Seat: 4},
				{PerformanceID: 1, Row: 4, Seat: 4},
			},
			wantErr:   domain.ErrDuplicateSeatInRequest,
			wantIndex: 1,
		},
		{
			name:      "should reject unknown performance",
			requests:  []domain.TicketRequest{{PerformanceID: 1, Row: 1, Seat: 1}, {PerformanceID: 42, Row: 1, Seat: 1}},
			wantErr:   domain.ErrUnknownPerformance,
			wantIndex: 1,
		},
		{
			name: "should reject seat already sold",
			setup: func() {
				_, err := s.manager.CreateReservation(s.T().Context(), 7, []domain.TicketRequest{
					{PerformanceID: 1, Row: 3, Seat: 3},
				})
				s.Require().NoError(err)
			},
			requests: []domain.TicketRequest{
				{PerformanceID: 1, Row: 3, Seat: 4},
				{PerformanceID: 1, Row: 3, Seat: 3},
			},
			wantErr:   domain.ErrSeatAlreadyBooked,
			wantIndex: 1,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			if tt.setup != nil {
				tt.setup()
			}

			ticketsBefore := s.store.TicketCount()
			reservationsBefore := s.store.ReservationCount()

			reservation, err := s.manager.CreateReservation(s.T().Context(), 1, tt.requests)
			if tt.wantErr != nil {
				s.Nil(reservation)
				s.ErrorIs(err, tt.wantErr)

				if !errors.Is(tt.wantErr, domain.ErrEmptyReservation) {
					s.requireRejected(err, tt.wantIndex, tt.wantErr)
				}

				s.Equal(ticketsBefore, s.store.TicketCount())
				s.Equal(reservationsBefore, s.store.ReservationCount())
				return
			}

			s.Require().NoError(err)
			s.NotZero(reservation.ID)
			s.NotEmpty(reservation.Code)
			s.Len(reservation.Tickets, tt.wantTickets)
			s.Equal(ticketsBefore+tt.wantTickets, s.store.TicketCount())

			for i, ticket := range reservation.Tickets {
				s.Equal(reservation.ID, ticket.ReservationID)
				s.Equal(tt.requests[i].Position(), ticket.Position())
			}
		})
	}
}

func (s *ManagerTestSuite) TestCreateReservationReportsEveryInvalidTicket() {
	_, err := s.manager.CreateReservation(s.T().Context(), 1, []domain.TicketRequest{
		{PerformanceID: 1, Row: 0, Seat: 11},
		{PerformanceID: 1, Row: 2, Seat: 2},
		{PerformanceID: 1, Row: 12, Seat: 1},
	})

	var reservationErr *domain.ReservationError
	s.Require().ErrorAs(err, &reservationErr)
	s.Require().Len(reservationErr.Tickets, 2)

	s.Equal(0, reservationErr.Tickets[0].Index)
	s.Len(domain.SeatErrors(reservationErr.Tickets[0]), 2)
	s.Equal(2, reservationErr.Tickets[1].Index)
	s.ErrorIs(reservationErr.Tickets[1], domain.ErrRowOutOfRange)
}

func (s *ManagerTestSuite) TestCreateReservationIsAllOrNothing() {
	_, err := s.manager.CreateReservation(s.T().Context(), 2, []domain.TicketRequest{
		{PerformanceID: 1, Row: 5, Seat: 5},
	})
	s.Require().NoError(err)

	_, err = s.manager.CreateReservation(s.T().Context(), 1, []domain.TicketRequest{
		{PerformanceID: 1, Row: 5, Seat: 3},
		{PerformanceID: 1, Row: 5, Seat: 4},
		{PerformanceID: 1, Row: 5, Seat: 5},
	})
	s.ErrorIs(err, domain.ErrSeatAlreadyBooked)

	s.Equal(1, s.store.TicketCount())
	s.Equal(1, s.store.ReservationCount())

	taken, err := s.catalog.TicketsFor(s.T().Context(), 1)
	s.Require().NoError(err)
	s.False(taken.Contains(domain.SeatPosition{Row: 5, Seat: 3}))
	s.False(taken.Contains(domain.SeatPosition{Row: 5, Seat: 4}))
}

func (s *ManagerTestSuite) TestCreateReservationLosesCommitRace() {
	s.store.BeforeCreate = func(reservation *domain.Reservation) {
		s.store.BeforeCreate = nil

		competing := &domain.Reservation{
			UserID: 9,
			Code:   "COMPETING",
			Tickets: []domain.Ticket{
				{PerformanceID: 1, Row: 6, Seat: 6},
			},
		}
		s.Require().NoError(s.store.Reservations().Create(s.T().Context(), competing))
	}

	_, err := s.manager.CreateReservation(s.T().Context(), 1, []domain.TicketRequest{
		{PerformanceID: 1, Row: 6, Seat: 5},
		{PerformanceID: 1, Row: 6, Seat: 6},
	})

	s.requireRejected(err, 1, domain.ErrSeatAlreadyBooked)
	s.NotErrorIs(err, domain.ErrStorageUnavailable)
	s.Equal(1, s.store.TicketCount())
}

func (s *ManagerTestSuite) TestConcurrentReservationsForSameSeat() {
	const attempts = 20

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	start := make(chan struct{})

	for i := range attempts {
		wg.Add(1)

		go func(userID int) {
			defer wg.Done()
			<-start

			_, err := s.manager.CreateReservation(s.T().Context(), userID, []domain.TicketRequest{
				{PerformanceID: 1, Row: 7, Seat: 7},
			})

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrSeatAlreadyBooked):
				conflicts++
			}
		}(i + 1)
	}

	close(start)
	wg.Wait()

	s.Equal(1, succeeded)
	s.Equal(attempts-1, conflicts)
	s.Equal(1, s.store.TicketCount())
}

func (s *ManagerTestSuite) TestCreateReservationStorageUnavailable() {
	s.store.Err = errors.New("connection refused")

	_, err := s.manager.CreateReservation(s.T().Context(), 1, []domain.TicketRequest{
		{PerformanceID: 1, Row: 1, Seat: 1},
	})

	s.ErrorIs(err, domain.ErrStorageUnavailable)

	var reservationErr *domain.ReservationError
	s.False(errors.As(err, &reservationErr))
}

func (s *ManagerTestSuite) TestAvailableSeatsFollowsBookings() {
	_, err := s.manager.CreateReservation(s.T().Context(), 1, []domain.TicketRequest{
		{PerformanceID: 1, Row: 1, Seat: 1},
		{PerformanceID: 1, Row: 1, Seat: 2},
		{PerformanceID: 1, Row: 2, Seat: 1},
	})
	s.Require().NoError(err)

	available, err := s.catalog.AvailableSeats(s.T().Context(), 1)
	s.Require().NoError(err)
	s.Equal(97, available)

	_, err = s.manager.CreateReservation(s.T().Context(), 2, []domain.TicketRequest{
		{PerformanceID: 2, Row: 5, Seat: 10},
		{PerformanceID: 2, Row: 1, Seat: 1},
	})
	s.Require().NoError(err)

	available, err = s.catalog.AvailableSeats(s.T().Context(), 2)
	s.Require().NoError(err)
	s.Equal(48, available)
}

func (s *ManagerTestSuite) TestCreateReservationCopiesPerformanceIntoTickets() {
	s.manager.newCode = func() string { return "ABC123" }

	reservation, err := s.manager.CreateReservation(s.T().Context(), 1, []domain.TicketRequest{
		{PerformanceID: 2, Row: 2, Seat: 3},
	})
	s.Require().NoError(err)

	s.Equal("ABC123", reservation.Code)
	s.Equal("The Seagull (row: 2, seat: 3)", reservation.Tickets[0].String())
	s.Equal(showTime.Add(24*time.Hour), reservation.Tickets[0].ShowTime)
}

func (s *ManagerTestSuite) TestCreateReservationCommitFailures() {
	tests := []struct {
		name         string
		commitErr    error
		wantRejected bool
		wantErr      error
	}{
		{
			name:         "should report unique violation as booked seat",
			commitErr:    &domain.TicketError{Index: 0, Err: domain.ErrSeatAlreadyBooked},
			wantRejected: true,
			wantErr:      domain.ErrSeatAlreadyBooked,
		},
		{
			name:      "should wrap driver failure as storage unavailable",
			commitErr: errors.New("tx aborted"),
			wantErr:   domain.ErrStorageUnavailable,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			reservations := new(mocks.MockReservationRepo)
			reservations.On("Create", mock.Anything, mock.AnythingOfType("*domain.Reservation")).
				Return(tt.commitErr).Once()

			manager := NewManager(s.catalog, reservations, slog.New(slog.NewTextHandler(io.Discard, nil)))

			reservation, err := manager.CreateReservation(s.T().Context(), 1, []domain.TicketRequest{
				{PerformanceID: 1, Row: 2, Seat: 2},
			})

			s.Nil(reservation)
			s.ErrorIs(err, tt.wantErr)

			var reservationErr *domain.ReservationError
			s.Equal(tt.wantRejected, errors.As(err, &reservationErr))
			reservations.AssertExpectations(s.T())
		})
	}
}
