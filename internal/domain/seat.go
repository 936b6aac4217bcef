package domain

import (
	"context"
	"time"
)

type SeatStatus string

const (
	SeatAvailable SeatStatus = "AVAILABLE"
	SeatLocked    SeatStatus = "LOCKED"
	SeatBooked    SeatStatus = "BOOKED"
)

type SeatType string

const (
	SeatClassic SeatType = "CLASSIC"
	SeatPremium SeatType = "PREMIUM"
)

// ShowSeat is one physical seat of one show. SeatType and Price are fixed at
// show creation time and never change. LockedAt and LockedByUserID are set
// while the seat is LOCKED and must be nil in every other status.
type ShowSeat struct {
	ID             int
	ShowID         int
	SeatNo         string
	SeatType       SeatType
	Price          int
	Status         SeatStatus
	LockedAt       *time.Time
	LockedByUserID *int
	Version        int
}

func (s *ShowSeat) IsAvailable() bool {
	return s.Status == SeatAvailable
}

// IsLockedBy reports whether the seat is currently locked and owned by userID.
// LockedByUserID is the authorization token for confirm and voluntary release.
func (s *ShowSeat) IsLockedBy(userID int) bool {
	return s.Status == SeatLocked && s.LockedByUserID != nil && *s.LockedByUserID == userID
}

// Lock transitions the seat to LOCKED on behalf of userID. The caller must
// already hold the row and have verified the seat is AVAILABLE.
func (s *ShowSeat) Lock(userID int, at time.Time) {
	s.Status = SeatLocked
	s.LockedAt = &at
	s.LockedByUserID = &userID
}

// Release reverts the seat to AVAILABLE and clears the owner fields.
func (s *ShowSeat) Release() {
	s.Status = SeatAvailable
	s.LockedAt = nil
	s.LockedByUserID = nil
}

// Book transitions the seat to BOOKED and clears the owner fields.
func (s *ShowSeat) Book() {
	s.Status = SeatBooked
	s.LockedAt = nil
	s.LockedByUserID = nil
}

// SeatTx is the handle passed to WithSeatsForUpdate callbacks. Writes go
// through the same transaction that holds the row locks. DeleteTicket exists
// so a cancellation commits the seat revert and the ticket delete as one
// unit; a ticket must never outlive its seats' BOOKED status.
type SeatTx interface {
	UpdateSeats(ctx context.Context, seats []ShowSeat) error
	DeleteTicket(ctx context.Context, ticketID int) error
}

// SeatStore provides transactional access to show seat rows.
//
// WithSeatsForUpdate acquires exclusive row locks on exactly the rows in
// seatIDs and only then invokes fn with their current state, all inside one
// transaction. Any two calls that touch an overlapping seat set are
// serialized by the store, which is the single correctness invariant the
// booking core relies on.
type SeatStore interface {
	GetSeatsByShow(ctx context.Context, showID int) ([]ShowSeat, error)
	WithSeatsForUpdate(ctx context.Context, seatIDs []int, fn func(tx SeatTx, seats []ShowSeat) error) error

	// ReleaseExpiredLocks reverts every seat that is LOCKED with
	// lockedAt < threshold back to AVAILABLE and returns the number of
	// rows released.
	ReleaseExpiredLocks(ctx context.Context, threshold time.Time) (int64, error)
}
