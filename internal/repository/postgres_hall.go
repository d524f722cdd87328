package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/theatre-booking-system/internal/domain"
)

type PostgresHallRepository struct {
	db *pgxpool.Pool
}

func NewPostgresHallRepository(db *pgxpool.Pool) *PostgresHallRepository {
	return &PostgresHallRepository{
		db: db,
	}
}

func (p *PostgresHallRepository) Create(ctx context.Context, hall *domain.TheatreHall) error {
	query := `INSERT INTO theatre_halls (name, rows, seats_in_row)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := p.db.QueryRow(ctx,
		query,
		hall.Name,
		hall.Geometry.Rows,
		hall.Geometry.SeatsInRow).Scan(&hall.ID, &hall.CreatedAt)

	if err != nil {
		switch pgErrorCode(err) {
		case pgerrcode.UniqueViolation:
			return domain.ErrHallAlreadyExists
		case pgerrcode.CheckViolation:
			return domain.ErrInvalidHallGeometry
		}

		return err
	}

	return nil
}

func (p *PostgresHallRepository) GetById(ctx context.Context, id int) (*domain.TheatreHall, error) {
	query := `
		SELECT id, name, rows, seats_in_row, created_at
		FROM theatre_halls
		WHERE id = $1
	`

	var hall domain.TheatreHall

	err := p.db.QueryRow(ctx, query, id).Scan(
		&hall.ID,
		&hall.Name,
		&hall.Geometry.Rows,
		&hall.Geometry.SeatsInRow,
		&hall.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &hall, nil
}

func (p *PostgresHallRepository) GetAll(ctx context.Context) ([]domain.TheatreHall, error) {
	query := `
		SELECT id, name, rows, seats_in_row, created_at
		FROM theatre_halls
		ORDER BY name
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	halls := make([]domain.TheatreHall, 0)

	for rows.Next() {
		var hall domain.TheatreHall

		err = rows.Scan(
			&hall.ID,
			&hall.Name,
			&hall.Geometry.Rows,
			&hall.Geometry.SeatsInRow,
			&hall.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		halls = append(halls, hall)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return halls, nil
}
