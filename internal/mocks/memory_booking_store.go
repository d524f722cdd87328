package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/metinatakli/theatre-booking-system/internal/domain"
)

type seatKey struct {
	performanceID int
	position      domain.SeatPosition
}

// InMemoryBookingStore implements the performance and reservation
// repositories over maps. A unique index on (performance, row, seat) is
// checked under the same lock that commits a reservation, which mirrors the
// uniqueness constraint of the database.
type InMemoryBookingStore struct {
	mu sync.Mutex

	performances map[int]domain.Performance
	reservations map[int]domain.Reservation
	seats        map[seatKey]int

	nextReservationID int
	nextTicketID      int

	// Err is returned by every operation when set.
	Err error

	// BeforeCreate runs after the pre-commit validation of a reservation and
	// before it is committed, without holding the store lock.
	BeforeCreate func(reservation *domain.Reservation)
}

func NewInMemoryBookingStore() *InMemoryBookingStore {
	return &InMemoryBookingStore{
		performances: make(map[int]domain.Performance),
		reservations: make(map[int]domain.Reservation),
		seats:        make(map[seatKey]int),
	}
}

func (s *InMemoryBookingStore) AddPerformance(performance domain.Performance) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.performances[performance.ID] = performance
}

func (s *InMemoryBookingStore) Create(ctx context.Context, performance *domain.Performance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	performance.ID = len(s.performances) + 1
	s.performances[performance.ID] = *performance

	return nil
}

func (s *InMemoryBookingStore) GetById(ctx context.Context, id int) (*domain.Performance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	performance, ok := s.performances[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	return &performance, nil
}

func (s *InMemoryBookingStore) GetAllWithAvailability(ctx context.Context) ([]domain.PerformanceSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	sold := make(map[int]int)
	for key := range s.seats {
		sold[key.performanceID]++
	}

	summaries := make([]domain.PerformanceSummary, 0, len(s.performances))
	for _, p := range s.performances {
		summaries = append(summaries, domain.PerformanceSummary{
			Performance:      p,
			TicketsAvailable: p.Hall.Capacity() - sold[p.ID],
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ID < summaries[j].ID
	})

	return summaries, nil
}

func (s *InMemoryBookingStore) GetTakenSeats(ctx context.Context, performanceId int) ([]domain.SeatPosition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	var taken []domain.SeatPosition
	for key := range s.seats {
		if key.performanceID == performanceId {
			taken = append(taken, key.position)
		}
	}

	return taken, nil
}

func (s *InMemoryBookingStore) CountTickets(ctx context.Context, performanceId int) (int, error) {
	taken, err := s.GetTakenSeats(ctx, performanceId)
	if err != nil {
		return 0, err
	}

	return len(taken), nil
}

// Reservations exposes the reservation side of the store, whose method set
// overlaps with the performance repository.
func (s *InMemoryBookingStore) Reservations() domain.ReservationRepository {
	return &inMemoryReservationRepo{store: s}
}

func (s *InMemoryBookingStore) TicketCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.seats)
}

func (s *InMemoryBookingStore) ReservationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.reservations)
}

type inMemoryReservationRepo struct {
	store *InMemoryBookingStore
}

func (r *inMemoryReservationRepo) Create(ctx context.Context, reservation *domain.Reservation) error {
	if r.store.BeforeCreate != nil {
		r.store.BeforeCreate(reservation)
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	keys := make([]seatKey, len(reservation.Tickets))
	for i, t := range reservation.Tickets {
		keys[i] = seatKey{performanceID: t.PerformanceID, position: t.Position()}

		if _, taken := s.seats[keys[i]]; taken {
			return &domain.TicketError{Index: i, Err: domain.ErrSeatAlreadyBooked}
		}

		for _, prev := range keys[:i] {
			if prev == keys[i] {
				return &domain.TicketError{Index: i, Err: domain.ErrSeatAlreadyBooked}
			}
		}

		if _, ok := s.performances[t.PerformanceID]; !ok {
			return &domain.TicketError{Index: i, Err: domain.ErrUnknownPerformance}
		}
	}

	s.nextReservationID++
	reservation.ID = s.nextReservationID
	reservation.CreatedAt = time.Now()

	for i := range reservation.Tickets {
		s.nextTicketID++
		reservation.Tickets[i].ID = s.nextTicketID
		reservation.Tickets[i].ReservationID = reservation.ID
		s.seats[keys[i]] = reservation.Tickets[i].ID
	}

	stored := *reservation
	stored.Tickets = append([]domain.Ticket(nil), reservation.Tickets...)
	s.reservations[reservation.ID] = stored

	return nil
}

func (r *inMemoryReservationRepo) GetByIdAndUserId(ctx context.Context, id, userId int) (*domain.Reservation, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	reservation, ok := s.reservations[id]
	if !ok || reservation.UserID != userId {
		return nil, domain.ErrRecordNotFound
	}

	return &reservation, nil
}

func (r *inMemoryReservationRepo) GetAllByUserId(ctx context.Context, userId int) ([]domain.Reservation, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	var result []domain.Reservation
	for _, reservation := range s.reservations {
		if reservation.UserID == userId {
			result = append(result, reservation)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID > result[j].ID
	})

	return result, nil
}
