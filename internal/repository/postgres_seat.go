package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigitentrk/show-booking-system/internal/domain"
)

const seatColumns = "id, show_id, seat_no, seat_type, price, status, locked_at, locked_by_user_id, version"

type PostgresSeatStore struct {
	db *pgxpool.Pool
}

func NewPostgresSeatStore(db *pgxpool.Pool) *PostgresSeatStore {
	return &PostgresSeatStore{
		db: db,
	}
}

func (p *PostgresSeatStore) GetSeatsByShow(ctx context.Context, showID int) ([]domain.ShowSeat, error) {
	query := `
		SELECT ` + seatColumns + `
		FROM show_seats
		WHERE show_id = $1
		ORDER BY seat_no
	`

	rows, err := p.db.Query(ctx, query, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSeats(rows)
}

// WithSeatsForUpdate locks exactly the requested rows with SELECT ... FOR
// UPDATE and then hands their current state to fn inside the same
// transaction. Rows are locked in id order so two overlapping batches cannot
// deadlock each other.
func (p *PostgresSeatStore) WithSeatsForUpdate(
	ctx context.Context,
	seatIDs []int,
	fn func(tx domain.SeatTx, seats []domain.ShowSeat) error) error {

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			SELECT ` + seatColumns + `
			FROM show_seats
			WHERE id = ANY($1)
			ORDER BY id
			FOR UPDATE
		`

		rows, err := tx.Query(ctx, query, seatIDs)
		if err != nil {
			return err
		}

		seats, err := scanSeats(rows)
		if err != nil {
			return err
		}

		return fn(&seatTx{tx: tx}, seats)
	})

	return classifyStoreError(err)
}

func (p *PostgresSeatStore) ReleaseExpiredLocks(ctx context.Context, threshold time.Time) (int64, error) {
	query := `
		UPDATE show_seats
		SET status = $1, locked_at = NULL, locked_by_user_id = NULL, version = version + 1
		WHERE status = $2 AND locked_at < $3
	`

	tag, err := p.db.Exec(ctx, query, domain.SeatAvailable, domain.SeatLocked, threshold)
	if err != nil {
		return 0, classifyStoreError(err)
	}

	return tag.RowsAffected(), nil
}

type seatTx struct {
	tx pgx.Tx
}

// UpdateSeats persists mutated rows with an optimistic version check on top
// of the row locks already held by the transaction.
func (s *seatTx) UpdateSeats(ctx context.Context, seats []domain.ShowSeat) error {
	query := `
		UPDATE show_seats
		SET status = $1, locked_at = $2, locked_by_user_id = $3, version = version + 1
		WHERE id = $4 AND version = $5
	`

	batch := &pgx.Batch{}
	for i := range seats {
		batch.Queue(query, seats[i].Status, seats[i].LockedAt, seats[i].LockedByUserID, seats[i].ID, seats[i].Version)
	}

	results := s.tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := range seats {
		tag, err := results.Exec()
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: seat %s", domain.ErrEditConflict, seats[i].SeatNo)
		}
	}

	return results.Close()
}

func (s *seatTx) DeleteTicket(ctx context.Context, ticketID int) error {
	query := `
		DELETE FROM tickets
		WHERE id = $1
	`

	tag, err := s.tx.Exec(ctx, query, ticketID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func scanSeats(rows pgx.Rows) ([]domain.ShowSeat, error) {
	defer rows.Close()

	seats := make([]domain.ShowSeat, 0)

	for rows.Next() {
		var seat domain.ShowSeat

		err := rows.Scan(
			&seat.ID,
			&seat.ShowID,
			&seat.SeatNo,
			&seat.SeatType,
			&seat.Price,
			&seat.Status,
			&seat.LockedAt,
			&seat.LockedByUserID,
			&seat.Version,
		)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}
