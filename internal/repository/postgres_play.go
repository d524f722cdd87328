package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/theatre-booking-system/internal/domain"
)

type PostgresPlayRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPlayRepository(db *pgxpool.Pool) *PostgresPlayRepository {
	return &PostgresPlayRepository{
		db: db,
	}
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Create stores the play and links it to existing genres and actors by ID.
// Unknown IDs yield ErrUnknownGenre or ErrUnknownActor and nothing is stored.
func (p *PostgresPlayRepository) Create(ctx context.Context, play *domain.Play) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		genreIDs := play.GenreIDs()
		actorIDs := play.ActorIDs()

		genres, err := genresByIds(ctx, tx, genreIDs)
		if err != nil {
			return err
		}
		if len(genres) != len(genreIDs) {
			return domain.ErrUnknownGenre
		}

		actors, err := actorsByIds(ctx, tx, actorIDs)
		if err != nil {
			return err
		}
		if len(actors) != len(actorIDs) {
			return domain.ErrUnknownActor
		}

		query := `
			INSERT INTO plays (title, description)
			VALUES ($1, $2)
			RETURNING id
		`

		err = tx.QueryRow(ctx, query, play.Title, play.Description).Scan(&play.ID)
		if err != nil {
			return err
		}

		batch := &pgx.Batch{}

		if len(genreIDs) > 0 {
			batch.Queue(`INSERT INTO play_genres (play_id, genre_id) SELECT $1, unnest($2::int[])`,
				play.ID, genreIDs)
		}

		if len(actorIDs) > 0 {
			batch.Queue(`INSERT INTO play_actors (play_id, actor_id) SELECT $1, unnest($2::int[])`,
				play.ID, actorIDs)
		}

		if batch.Len() > 0 {
			err = tx.SendBatch(ctx, batch).Close()
			if err != nil {
				return err
			}
		}

		play.Genres = genres
		play.Actors = actors

		return nil
	})
}

func (p *PostgresPlayRepository) GetById(ctx context.Context, id int) (*domain.Play, error) {
	query := `SELECT id, title, description FROM plays WHERE id = $1`

	var play domain.Play

	err := p.db.QueryRow(ctx, query, id).Scan(&play.ID, &play.Title, &play.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	plays := []domain.Play{play}

	err = p.attachCredits(ctx, plays)
	if err != nil {
		return nil, err
	}

	return &plays[0], nil
}

func (p *PostgresPlayRepository) GetAll(ctx context.Context) ([]domain.Play, error) {
	query := `SELECT id, title, description FROM plays ORDER BY title, id`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plays := make([]domain.Play, 0)

	for rows.Next() {
		var play domain.Play

		err = rows.Scan(&play.ID, &play.Title, &play.Description)
		if err != nil {
			return nil, err
		}

		plays = append(plays, play)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	err = p.attachCredits(ctx, plays)
	if err != nil {
		return nil, err
	}

	return plays, nil
}

// attachCredits loads the genres and actors of every play in two queries.
func (p *PostgresPlayRepository) attachCredits(ctx context.Context, plays []domain.Play) error {
	if len(plays) == 0 {
		return nil
	}

	index := make(map[int]int, len(plays))
	ids := make([]int, len(plays))

	for i, play := range plays {
		index[play.ID] = i
		ids[i] = play.ID
		plays[i].Genres = []domain.Genre{}
		plays[i].Actors = []domain.Actor{}
	}

	rows, err := p.db.Query(ctx, `
		SELECT pg.play_id, g.id, g.name
		FROM play_genres pg
		JOIN genres g ON g.id = pg.genre_id
		WHERE pg.play_id = ANY($1)
		ORDER BY g.name, g.id`, ids)
	if err != nil {
		return err
	}

	for rows.Next() {
		var playID int
		var genre domain.Genre

		err = rows.Scan(&playID, &genre.ID, &genre.Name)
		if err != nil {
			rows.Close()
			return err
		}

		i := index[playID]
		plays[i].Genres = append(plays[i].Genres, genre)
	}
	rows.Close()

	if err = rows.Err(); err != nil {
		return err
	}

	rows, err = p.db.Query(ctx, `
		SELECT pa.play_id, a.id, a.first_name, a.last_name
		FROM play_actors pa
		JOIN actors a ON a.id = pa.actor_id
		WHERE pa.play_id = ANY($1)
		ORDER BY a.last_name, a.first_name, a.id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var playID int
		var actor domain.Actor

		err = rows.Scan(&playID, &actor.ID, &actor.FirstName, &actor.LastName)
		if err != nil {
			return err
		}

		i := index[playID]
		plays[i].Actors = append(plays[i].Actors, actor)
	}

	return rows.Err()
}

func genresByIds(ctx context.Context, q querier, ids []int) ([]domain.Genre, error) {
	genres := make([]domain.Genre, 0, len(ids))
	if len(ids) == 0 {
		return genres, nil
	}

	rows, err := q.Query(ctx, `SELECT id, name FROM genres WHERE id = ANY($1) ORDER BY name, id`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var genre domain.Genre

		err = rows.Scan(&genre.ID, &genre.Name)
		if err != nil {
			return nil, err
		}

		genres = append(genres, genre)
	}

	return genres, rows.Err()
}

func actorsByIds(ctx context.Context, q querier, ids []int) ([]domain.Actor, error) {
	actors := make([]domain.Actor, 0, len(ids))
	if len(ids) == 0 {
		return actors, nil
	}

	rows, err := q.Query(ctx, `
		SELECT id, first_name, last_name
		FROM actors
		WHERE id = ANY($1)
		ORDER BY last_name, first_name, id`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var actor domain.Actor

		err = rows.Scan(&actor.ID, &actor.FirstName, &actor.LastName)
		if err != nil {
			return nil, err
		}

		actors = append(actors, actor)
	}

	return actors, rows.Err()
}
