package domain

import (
	"context"
	"strings"
	"time"
)

// SeatNoSeparator joins booked seat numbers into the BookedSeats column.
const SeatNoSeparator = ", "

// Ticket is one confirmed booking. It references its show and user by id and
// its seats by seat number; seat numbers are resolved back to rows on read.
type Ticket struct {
	ID          int
	ShowID      int
	UserID      int
	BookedSeats string
	TotalPrice  int
	BookedAt    time.Time
}

func (t *Ticket) SeatNumbers() []string {
	if t.BookedSeats == "" {
		return nil
	}
	return strings.Split(t.BookedSeats, SeatNoSeparator)
}

func JoinSeatNumbers(seatNumbers []string) string {
	return strings.Join(seatNumbers, SeatNoSeparator)
}

type TicketRepository interface {
	Create(ctx context.Context, ticket *Ticket) error
	GetById(ctx context.Context, id int) (*Ticket, error)
	GetByUserId(ctx context.Context, userID int) ([]Ticket, error)
	Delete(ctx context.Context, id int) error
	ExistsByShowId(ctx context.Context, showID int) (bool, error)
}
