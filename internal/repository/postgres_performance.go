package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/theatre-booking-system/internal/domain"
)

type PostgresPerformanceRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPerformanceRepository(db *pgxpool.Pool) *PostgresPerformanceRepository {
	return &PostgresPerformanceRepository{
		db: db,
	}
}

// Create stores the performance and fills in the title of its play and the
// name and geometry of its hall. It returns ErrRecordNotFound when either
// reference does not exist.
func (p *PostgresPerformanceRepository) Create(ctx context.Context, performance *domain.Performance) error {
	query := `
		WITH inserted AS (
			INSERT INTO performances (play_id, theatre_hall_id, show_time)
			VALUES ($1, $2, $3)
			RETURNING id, play_id, theatre_hall_id
		)
		SELECT i.id, p.title, h.name, h.rows, h.seats_in_row
		FROM inserted i
		JOIN plays p ON p.id = i.play_id
		JOIN theatre_halls h ON h.id = i.theatre_hall_id
	`

	err := p.db.QueryRow(ctx,
		query,
		performance.PlayID,
		performance.HallID,
		performance.ShowTime).Scan(
		&performance.ID,
		&performance.PlayTitle,
		&performance.HallName,
		&performance.Hall.Rows,
		&performance.Hall.SeatsInRow,
	)
	if err != nil {
		if pgErrorCode(err) == pgerrcode.ForeignKeyViolation {
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}

func (p *PostgresPerformanceRepository) GetById(ctx context.Context, id int) (*domain.Performance, error) {
	query := `
		SELECT pf.id, pf.play_id, p.title, pf.theatre_hall_id, h.name, h.rows, h.seats_in_row, pf.show_time
		FROM performances pf
		JOIN plays p ON p.id = pf.play_id
		JOIN theatre_halls h ON h.id = pf.theatre_hall_id
		WHERE pf.id = $1
	`

	var performance domain.Performance

	err := p.db.QueryRow(ctx, query, id).Scan(
		&performance.ID,
		&performance.PlayID,
		&performance.PlayTitle,
		&performance.HallID,
		&performance.HallName,
		&performance.Hall.Rows,
		&performance.Hall.SeatsInRow,
		&performance.ShowTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	performance.ShowTime = performance.ShowTime.UTC()

	return &performance, nil
}

func (p *PostgresPerformanceRepository) GetAllWithAvailability(ctx context.Context) ([]domain.PerformanceSummary, error) {
	query := `
		SELECT
			pf.id,
			pf.play_id,
			p.title,
			pf.theatre_hall_id,
			h.name,
			h.rows,
			h.seats_in_row,
			pf.show_time,
			h.rows * h.seats_in_row - COUNT(t.id)
		FROM performances pf
		JOIN plays p ON p.id = pf.play_id
		JOIN theatre_halls h ON h.id = pf.theatre_hall_id
		LEFT JOIN tickets t ON t.performance_id = pf.id
		GROUP BY pf.id, p.id, h.id
		ORDER BY pf.show_time, pf.id
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]domain.PerformanceSummary, 0)

	for rows.Next() {
		var summary domain.PerformanceSummary

		err = rows.Scan(
			&summary.ID,
			&summary.PlayID,
			&summary.PlayTitle,
			&summary.HallID,
			&summary.HallName,
			&summary.Hall.Rows,
			&summary.Hall.SeatsInRow,
			&summary.ShowTime,
			&summary.TicketsAvailable,
		)
		if err != nil {
			return nil, err
		}

		summary.ShowTime = summary.ShowTime.UTC()
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

func (p *PostgresPerformanceRepository) GetTakenSeats(
	ctx context.Context,
	performanceId int) ([]domain.SeatPosition, error) {

	query := `
		SELECT seat_row, seat_number
		FROM tickets
		WHERE performance_id = $1
		ORDER BY seat_row, seat_number
	`

	rows, err := p.db.Query(ctx, query, performanceId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.SeatPosition, 0)

	for rows.Next() {
		var seat domain.SeatPosition

		err = rows.Scan(&seat.Row, &seat.Seat)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

func (p *PostgresPerformanceRepository) CountTickets(ctx context.Context, performanceId int) (int, error) {
	query := `SELECT COUNT(*) FROM tickets WHERE performance_id = $1`

	var count int

	err := p.db.QueryRow(ctx, query, performanceId).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
