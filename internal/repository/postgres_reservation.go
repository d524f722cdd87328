package repository

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/theatre-booking-system/internal/domain"
)

type PostgresReservationRepository struct {
	db *pgxpool.Pool
}

func NewPostgresReservationRepository(db *pgxpool.Pool) *PostgresReservationRepository {
	return &PostgresReservationRepository{
		db: db,
	}
}

// Create inserts the reservation and its tickets in one transaction. The
// unique index on (performance_id, seat_row, seat_number) is the final
// arbiter between concurrent bookings of the same seat. Tickets are inserted
// in seat order so that overlapping transactions meet on the same first
// seat and the later one fails with a unique violation.
func (p *PostgresReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO reservations (code, user_id)
			VALUES ($1, $2)
			RETURNING id, created_at
		`

		err := tx.QueryRow(ctx, query, reservation.Code, reservation.UserID).
			Scan(&reservation.ID, &reservation.CreatedAt)
		if err != nil {
			return err
		}

		order := insertOrder(reservation.Tickets)

		batch := &pgx.Batch{}
		for _, i := range order {
			ticket := reservation.Tickets[i]

			batch.Queue(`
				INSERT INTO tickets (reservation_id, performance_id, seat_row, seat_number)
				VALUES ($1, $2, $3, $4)
				RETURNING id`,
				reservation.ID,
				ticket.PerformanceID,
				ticket.Row,
				ticket.Seat,
			)
		}

		results := tx.SendBatch(ctx, batch)

		for _, i := range order {
			err = results.QueryRow().Scan(&reservation.Tickets[i].ID)
			if err != nil {
				results.Close()
				return ticketInsertError(i, err)
			}

			reservation.Tickets[i].ReservationID = reservation.ID
		}

		return results.Close()
	})
}

// insertOrder returns ticket indexes sorted by performance, row and seat.
func insertOrder(tickets []domain.Ticket) []int {
	order := make([]int, len(tickets))
	for i := range order {
		order[i] = i
	}

	slices.SortStableFunc(order, func(a, b int) int {
		ta, tb := tickets[a], tickets[b]

		return cmp.Or(
			cmp.Compare(ta.PerformanceID, tb.PerformanceID),
			cmp.Compare(ta.Row, tb.Row),
			cmp.Compare(ta.Seat, tb.Seat),
		)
	})

	return order
}

func ticketInsertError(index int, err error) error {
	switch pgErrorCode(err) {
	case pgerrcode.UniqueViolation, pgerrcode.DeadlockDetected:
		return &domain.TicketError{Index: index, Err: domain.ErrSeatAlreadyBooked}
	case pgerrcode.ForeignKeyViolation:
		return &domain.TicketError{Index: index, Err: domain.ErrUnknownPerformance}
	case pgerrcode.CheckViolation:
		return &domain.TicketError{Index: index, Err: domain.ErrInvalidSeat}
	}

	return fmt.Errorf("failed to insert ticket %d: %w", index, err)
}

func (p *PostgresReservationRepository) GetByIdAndUserId(
	ctx context.Context,
	id,
	userId int) (*domain.Reservation, error) {

	query := `
		SELECT id, code, user_id, created_at
		FROM reservations
		WHERE id = $1 AND user_id = $2
	`

	var reservation domain.Reservation

	err := p.db.QueryRow(ctx, query, id, userId).Scan(
		&reservation.ID,
		&reservation.Code,
		&reservation.UserID,
		&reservation.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	tickets, err := p.retrieveTickets(ctx, []int{reservation.ID})
	if err != nil {
		return nil, err
	}

	reservation.Tickets = tickets[reservation.ID]

	return &reservation, nil
}

func (p *PostgresReservationRepository) GetAllByUserId(ctx context.Context, userId int) ([]domain.Reservation, error) {
	query := `
		SELECT id, code, user_id, created_at
		FROM reservations
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := p.db.Query(ctx, query, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := make([]domain.Reservation, 0)
	ids := make([]int, 0)

	for rows.Next() {
		var reservation domain.Reservation

		err = rows.Scan(
			&reservation.ID,
			&reservation.Code,
			&reservation.UserID,
			&reservation.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		reservations = append(reservations, reservation)
		ids = append(ids, reservation.ID)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return reservations, nil
	}

	tickets, err := p.retrieveTickets(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range reservations {
		reservations[i].Tickets = tickets[reservations[i].ID]
	}

	return reservations, nil
}

func (p *PostgresReservationRepository) retrieveTickets(
	ctx context.Context,
	reservationIds []int) (map[int][]domain.Ticket, error) {

	query := `
		SELECT t.id, t.reservation_id, t.performance_id, p.title, pf.show_time, t.seat_row, t.seat_number
		FROM tickets t
		JOIN performances pf ON pf.id = t.performance_id
		JOIN plays p ON p.id = pf.play_id
		WHERE t.reservation_id = ANY($1)
		ORDER BY t.reservation_id, t.id
	`

	rows, err := p.db.Query(ctx, query, reservationIds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make(map[int][]domain.Ticket, len(reservationIds))

	for rows.Next() {
		var ticket domain.Ticket

		err = rows.Scan(
			&ticket.ID,
			&ticket.ReservationID,
			&ticket.PerformanceID,
			&ticket.PlayTitle,
			&ticket.ShowTime,
			&ticket.Row,
			&ticket.Seat,
		)
		if err != nil {
			return nil, err
		}

		ticket.ShowTime = ticket.ShowTime.UTC()
		tickets[ticket.ReservationID] = append(tickets[ticket.ReservationID], ticket)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}
