package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigitentrk/show-booking-system/internal/domain"
)

type PostgresShowRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowRepository(db *pgxpool.Pool) *PostgresShowRepository {
	return &PostgresShowRepository{
		db: db,
	}
}

func (p *PostgresShowRepository) GetById(ctx context.Context, id int) (*domain.Show, error) {
	query := `
		SELECT id, event_name, theater_name, starts_at
		FROM shows
		WHERE id = $1
	`

	var show domain.Show

	err := p.db.QueryRow(ctx, query, id).Scan(
		&show.ID,
		&show.EventName,
		&show.TheaterName,
		&show.StartsAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &show, nil
}
