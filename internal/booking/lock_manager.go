package booking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yigitentrk/show-booking-system/internal/domain"
)

// SeatLockManager performs the guarded seat state transitions. Every
// transition runs inside a SeatStore row hold, so reading a seat's status and
// conditionally writing it is indivisible with respect to any other caller
// touching the same seat.
type SeatLockManager struct {
	store  domain.SeatStore
	logger *slog.Logger
	now    func() time.Time
}

func NewSeatLockManager(store domain.SeatStore, logger *slog.Logger) *SeatLockManager {
	return &SeatLockManager{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// LockSeats acquires a soft hold on exactly the given seats for userID.
// Partial unavailability fails the whole batch; no seat is locked unless all
// of them can be.
func (m *SeatLockManager) LockSeats(ctx context.Context, seatIDs []int, userID int) ([]domain.ShowSeat, error) {
	var locked []domain.ShowSeat

	err := m.store.WithSeatsForUpdate(ctx, seatIDs, func(tx domain.SeatTx, seats []domain.ShowSeat) error {
		if len(seats) != len(seatIDs) {
			return domain.ErrSeatsNotFound
		}

		for i := range seats {
			if !seats[i].IsAvailable() {
				return fmt.Errorf("%w: seat %s is %s", domain.ErrSeatsUnavailable, seats[i].SeatNo, seats[i].Status)
			}
		}

		lockTime := m.now()
		for i := range seats {
			seats[i].Lock(userID, lockTime)
		}

		if err := tx.UpdateSeats(ctx, seats); err != nil {
			return err
		}

		locked = seats
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("locked seats", "count", len(locked), "user_id", userID)

	return locked, nil
}

// ConfirmBooking transitions seats from LOCKED to BOOKED. Only the user who
// holds the locks may confirm them.
func (m *SeatLockManager) ConfirmBooking(ctx context.Context, seatIDs []int, userID int) error {
	err := m.store.WithSeatsForUpdate(ctx, seatIDs, func(tx domain.SeatTx, seats []domain.ShowSeat) error {
		if len(seats) != len(seatIDs) {
			return domain.ErrSeatsNotFound
		}

		for i := range seats {
			if seats[i].Status != domain.SeatLocked {
				return fmt.Errorf("%w: seat %s", domain.ErrSeatNotLocked, seats[i].SeatNo)
			}
			if !seats[i].IsLockedBy(userID) {
				return fmt.Errorf("%w: seat %s", domain.ErrSeatLockedByOther, seats[i].SeatNo)
			}
		}

		for i := range seats {
			seats[i].Book()
		}

		return tx.UpdateSeats(ctx, seats)
	})
	if err != nil {
		return err
	}

	m.logger.Info("confirmed booking", "seats", len(seatIDs), "user_id", userID)

	return nil
}

// ReleaseSeats reverts to AVAILABLE every seat that is currently LOCKED and
// owned by userID. Seats in any other state are left untouched, which makes
// the call idempotent and safe to use as a compensating action.
func (m *SeatLockManager) ReleaseSeats(ctx context.Context, seatIDs []int, userID int) error {
	released := 0

	err := m.store.WithSeatsForUpdate(ctx, seatIDs, func(tx domain.SeatTx, seats []domain.ShowSeat) error {
		toRelease := make([]domain.ShowSeat, 0, len(seats))

		for i := range seats {
			if seats[i].IsLockedBy(userID) {
				seats[i].Release()
				toRelease = append(toRelease, seats[i])
			}
		}

		if len(toRelease) == 0 {
			return nil
		}

		if err := tx.UpdateSeats(ctx, toRelease); err != nil {
			return err
		}

		released = len(toRelease)
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Info("released seats", "count", released, "user_id", userID)

	return nil
}
