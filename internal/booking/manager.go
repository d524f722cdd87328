package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/metinatakli/theatre-booking-system/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/metinatakli/theatre-booking-system/internal/booking"

// Manager is the only write path for reservations and tickets.
type Manager struct {
	catalog      *Catalog
	reservations domain.ReservationRepository
	logger       *slog.Logger
	tracer       trace.Tracer

	createdCounter  metric.Int64Counter
	conflictCounter metric.Int64Counter
	ticketHistogram metric.Int64Histogram

	newCode func() string
}

func NewManager(catalog *Catalog, reservations domain.ReservationRepository, logger *slog.Logger) *Manager {
	meter := otel.Meter(instrumentationName)

	m := &Manager{
		catalog:      catalog,
		reservations: reservations,
		logger:       logger,
		tracer:       otel.Tracer(instrumentationName),
		newCode:      newReservationCode,
	}

	var err error

	m.createdCounter, err = meter.Int64Counter("reservations.created",
		metric.WithDescription("Number of committed reservations"))
	if err != nil {
		logger.Warn("failed to create reservations.created counter", "error", err)
		m.createdCounter = noop.Int64Counter{}
	}

	m.conflictCounter, err = meter.Int64Counter("reservations.conflicts",
		metric.WithDescription("Number of reservations rejected because a seat was already booked"))
	if err != nil {
		logger.Warn("failed to create reservations.conflicts counter", "error", err)
		m.conflictCounter = noop.Int64Counter{}
	}

	m.ticketHistogram, err = meter.Int64Histogram("reservation.tickets",
		metric.WithDescription("Number of tickets per committed reservation"))
	if err != nil {
		logger.Warn("failed to create reservation.tickets histogram", "error", err)
		m.ticketHistogram = noop.Int64Histogram{}
	}

	return m
}

func newReservationCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

// CreateReservation validates every requested ticket and stores the
// reservation with all of its tickets as one unit. Rejections are returned as
// *domain.ReservationError; infrastructure faults wrap ErrStorageUnavailable.
// In both cases nothing has been persisted.
func (m *Manager) CreateReservation(
	ctx context.Context,
	userID int,
	requests []domain.TicketRequest) (*domain.Reservation, error) {

	ctx, span := m.tracer.Start(ctx, "booking.CreateReservation", trace.WithAttributes(
		attribute.Int("user.id", userID),
		attribute.Int("reservation.tickets", len(requests)),
	))
	defer span.End()

	reservation, err := m.createReservation(ctx, userID, requests)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		if errors.Is(err, domain.ErrSeatAlreadyBooked) {
			m.conflictCounter.Add(ctx, 1)
		}

		return nil, err
	}

	span.SetAttributes(attribute.Int("reservation.id", reservation.ID))
	m.createdCounter.Add(ctx, 1)
	m.ticketHistogram.Record(ctx, int64(len(reservation.Tickets)))

	return reservation, nil
}

func (m *Manager) createReservation(
	ctx context.Context,
	userID int,
	requests []domain.TicketRequest) (*domain.Reservation, error) {

	if len(requests) == 0 {
		return nil, domain.ErrEmptyReservation
	}

	performances, err := m.resolvePerformances(ctx, requests)
	if err != nil {
		return nil, err
	}

	err = validateSeats(requests, performances)
	if err != nil {
		return nil, err
	}

	err = checkDuplicates(requests)
	if err != nil {
		return nil, err
	}

	err = m.checkTaken(ctx, requests)
	if err != nil {
		return nil, err
	}

	reservation := &domain.Reservation{
		UserID:  userID,
		Code:    m.newCode(),
		Tickets: make([]domain.Ticket, len(requests)),
	}

	for i, req := range requests {
		performance := performances[req.PerformanceID]

		reservation.Tickets[i] = domain.Ticket{
			PerformanceID: req.PerformanceID,
			PlayTitle:     performance.PlayTitle,
			ShowTime:      performance.ShowTime,
			Row:           req.Row,
			Seat:          req.Seat,
		}
	}

	err = m.reservations.Create(ctx, reservation)
	if err != nil {
		return nil, m.commitError(ctx, err)
	}

	return reservation, nil
}

func (m *Manager) resolvePerformances(
	ctx context.Context,
	requests []domain.TicketRequest) (map[int]*domain.Performance, error) {

	performances := make(map[int]*domain.Performance)
	unknown := make(map[int]bool)

	for _, req := range requests {
		id := req.PerformanceID
		if performances[id] != nil || unknown[id] {
			continue
		}

		performance, err := m.catalog.Performance(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrUnknownPerformance) {
				unknown[id] = true
				continue
			}

			return nil, storageError(err)
		}

		performances[id] = performance
	}

	var rejected []*domain.TicketError
	for i, req := range requests {
		if unknown[req.PerformanceID] {
			rejected = append(rejected, &domain.TicketError{Index: i, Err: domain.ErrUnknownPerformance})
		}
	}

	if len(rejected) > 0 {
		return nil, &domain.ReservationError{Tickets: rejected}
	}

	return performances, nil
}

func validateSeats(requests []domain.TicketRequest, performances map[int]*domain.Performance) error {
	var rejected []*domain.TicketError

	for i, req := range requests {
		err := domain.ValidateSeat(req.Row, req.Seat, performances[req.PerformanceID].Hall)
		if err != nil {
			rejected = append(rejected, &domain.TicketError{Index: i, Err: err})
		}
	}

	if len(rejected) > 0 {
		return &domain.ReservationError{Tickets: rejected}
	}

	return nil
}

type seatKey struct {
	performanceID int
	position      domain.SeatPosition
}

// checkDuplicates rejects every repetition of a seat after its first
// occurrence in the request.
func checkDuplicates(requests []domain.TicketRequest) error {
	seen := make(map[seatKey]bool, len(requests))
	var rejected []*domain.TicketError

	for i, req := range requests {
		key := seatKey{performanceID: req.PerformanceID, position: req.Position()}
		if seen[key] {
			rejected = append(rejected, &domain.TicketError{Index: i, Err: domain.ErrDuplicateSeatInRequest})
			continue
		}

		seen[key] = true
	}

	if len(rejected) > 0 {
		return &domain.ReservationError{Tickets: rejected}
	}

	return nil
}

// checkTaken is an early exit only. Two requests may both pass it; the
// storage uniqueness guard decides between them at commit.
func (m *Manager) checkTaken(ctx context.Context, requests []domain.TicketRequest) error {
	taken := make(map[int]domain.SeatSet)
	var rejected []*domain.TicketError

	for i, req := range requests {
		seats, ok := taken[req.PerformanceID]
		if !ok {
			var err error

			seats, err = m.catalog.TicketsFor(ctx, req.PerformanceID)
			if err != nil {
				return storageError(err)
			}

			taken[req.PerformanceID] = seats
		}

		if seats.Contains(req.Position()) {
			rejected = append(rejected, &domain.TicketError{Index: i, Err: domain.ErrSeatAlreadyBooked})
		}
	}

	if len(rejected) > 0 {
		return &domain.ReservationError{Tickets: rejected}
	}

	return nil
}

func (m *Manager) commitError(ctx context.Context, err error) error {
	var ticketErr *domain.TicketError
	if errors.As(err, &ticketErr) {
		if errors.Is(ticketErr, domain.ErrSeatAlreadyBooked) {
			m.logger.InfoContext(ctx, "seat claimed by a concurrent reservation",
				"ticket_index", ticketErr.Index)
		}

		return &domain.ReservationError{Tickets: []*domain.TicketError{ticketErr}}
	}

	return storageError(err)
}

func storageError(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
}
