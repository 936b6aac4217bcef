package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigitentrk/show-booking-system/internal/domain"
)

type PostgresTicketRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTicketRepository(db *pgxpool.Pool) *PostgresTicketRepository {
	return &PostgresTicketRepository{
		db: db,
	}
}

func (p *PostgresTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	query := `
		INSERT INTO tickets (show_id, user_id, booked_seats, total_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, booked_at
	`

	return p.db.QueryRow(
		ctx,
		query,
		ticket.ShowID,
		ticket.UserID,
		ticket.BookedSeats,
		ticket.TotalPrice).Scan(&ticket.ID, &ticket.BookedAt)
}

func (p *PostgresTicketRepository) GetById(ctx context.Context, id int) (*domain.Ticket, error) {
	query := `
		SELECT id, show_id, user_id, booked_seats, total_price, booked_at
		FROM tickets
		WHERE id = $1
	`

	var ticket domain.Ticket

	err := p.db.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.ShowID,
		&ticket.UserID,
		&ticket.BookedSeats,
		&ticket.TotalPrice,
		&ticket.BookedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &ticket, nil
}

func (p *PostgresTicketRepository) GetByUserId(ctx context.Context, userID int) ([]domain.Ticket, error) {
	query := `
		SELECT id, show_id, user_id, booked_seats, total_price, booked_at
		FROM tickets
		WHERE user_id = $1
		ORDER BY booked_at DESC
	`

	rows, err := p.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)

	for rows.Next() {
		var ticket domain.Ticket

		err = rows.Scan(
			&ticket.ID,
			&ticket.ShowID,
			&ticket.UserID,
			&ticket.BookedSeats,
			&ticket.TotalPrice,
			&ticket.BookedAt,
		)
		if err != nil {
			return nil, err
		}

		tickets = append(tickets, ticket)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

func (p *PostgresTicketRepository) Delete(ctx context.Context, id int) error {
	query := `
		DELETE FROM tickets
		WHERE id = $1
	`

	tag, err := p.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresTicketRepository) ExistsByShowId(ctx context.Context, showID int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM tickets WHERE show_id = $1
		)
	`

	var exists bool

	err := p.db.QueryRow(ctx, query, showID).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}
