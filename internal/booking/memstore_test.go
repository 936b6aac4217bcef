package booking

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigitentrk/show-booking-system/internal/domain"
)

// memSeatStore is an in-memory SeatStore with the same hold and transaction
// semantics as the postgres implementation: a single mutex stands in for the
// row locks, and writes made inside WithSeatsForUpdate only commit when the
// callback returns nil.
type memSeatStore struct {
	mu              sync.Mutex
	seats           map[int]*domain.ShowSeat
	deletedTickets  []int
	deleteTicketErr error
}

func newMemSeatStore(seats ...domain.ShowSeat) *memSeatStore {
	store := &memSeatStore{seats: make(map[int]*domain.ShowSeat, len(seats))}
	for i := range seats {
		seat := seats[i]
		store.seats[seat.ID] = &seat
	}
	return store
}

func (s *memSeatStore) GetSeatsByShow(ctx context.Context, showID int) ([]domain.ShowSeat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []domain.ShowSeat
	for _, seat := range s.seats {
		if seat.ShowID == showID {
			result = append(result, *seat)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SeatNo < result[j].SeatNo })
	return result, nil
}

func (s *memSeatStore) WithSeatsForUpdate(ctx context.Context, seatIDs []int, fn func(tx domain.SeatTx, seats []domain.ShowSeat) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]domain.ShowSeat, 0, len(seatIDs))
	for _, id := range seatIDs {
		if seat, ok := s.seats[id]; ok {
			snapshot = append(snapshot, *seat)
		}
	}
	sort.Slice(snapshot, func(i, j int) bool { return snapshot[i].ID < snapshot[j].ID })

	tx := &memSeatTx{store: s}

	if err := fn(tx, snapshot); err != nil {
		return err
	}

	for i := range tx.pendingSeats {
		updated := tx.pendingSeats[i]
		updated.Version++
		s.seats[updated.ID] = &updated
	}
	s.deletedTickets = append(s.deletedTickets, tx.pendingDeletes...)

	return nil
}

func (s *memSeatStore) ReleaseExpiredLocks(ctx context.Context, threshold time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var released int64
	for _, seat := range s.seats {
		if seat.Status == domain.SeatLocked && seat.LockedAt != nil && seat.LockedAt.Before(threshold) {
			seat.Release()
			seat.Version++
			released++
		}
	}
	return released, nil
}

// memSeatTx stages writes under the store mutex already held by
// WithSeatsForUpdate; the store commits them only if the callback succeeds.
type memSeatTx struct {
	store          *memSeatStore
	pendingSeats   []domain.ShowSeat
	pendingDeletes []int
}

func (t *memSeatTx) UpdateSeats(ctx context.Context, seats []domain.ShowSeat) error {
	for i := range seats {
		current, ok := t.store.seats[seats[i].ID]
		if !ok || current.Version != seats[i].Version {
			return domain.ErrEditConflict
		}
		t.pendingSeats = append(t.pendingSeats, seats[i])
	}
	return nil
}

func (t *memSeatTx) DeleteTicket(ctx context.Context, ticketID int) error {
	if t.store.deleteTicketErr != nil {
		return t.store.deleteTicketErr
	}
	t.pendingDeletes = append(t.pendingDeletes, ticketID)
	return nil
}

func (s *memSeatStore) seat(t *testing.T, id int) domain.ShowSeat {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	seat, ok := s.seats[id]
	require.True(t, ok)
	return *seat
}

func newTestLockManager(store domain.SeatStore) *SeatLockManager {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := NewSeatLockManager(store, logger)
	manager.now = func() time.Time { return testLockTime }
	return manager
}

func TestConcurrentLockingSingleWinner(t *testing.T) {
	store := newMemSeatStore(availableSeat(1, "1A", 200))
	manager := newTestLockManager(store)

	const contenders = 32

	var wg sync.WaitGroup
	results := make([]error, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(userID int) {
			defer wg.Done()
			_, err := manager.LockSeats(context.Background(), []int{1}, userID)
			results[userID-1] = err
		}(i + 1)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, domain.ErrSeatsUnavailable)
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, domain.SeatLocked, store.seat(t, 1).Status)
}

func TestConcurrentOverlappingBatches(t *testing.T) {
	store := newMemSeatStore(
		availableSeat(1, "1A", 200),
		availableSeat(2, "1B", 300),
		availableSeat(3, "1C", 250),
	)
	manager := newTestLockManager(store)

	var wg sync.WaitGroup
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = manager.LockSeats(context.Background(), []int{1, 2}, 10)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = manager.LockSeats(context.Background(), []int{2, 3}, 20)
	}()
	wg.Wait()

	// The shared seat forces one batch to lose; all-or-nothing means the
	// loser locked none of its seats.
	if errs[0] == nil {
		require.ErrorIs(t, errs[1], domain.ErrSeatsUnavailable)
		assert.Equal(t, domain.SeatAvailable, store.seat(t, 3).Status)
	} else {
		require.NoError(t, errs[1])
		require.ErrorIs(t, errs[0], domain.ErrSeatsUnavailable)
		assert.Equal(t, domain.SeatAvailable, store.seat(t, 1).Status)
	}
	assert.Equal(t, domain.SeatLocked, store.seat(t, 2).Status)
}

func TestLockConfirmRoundTrip(t *testing.T) {
	store := newMemSeatStore(
		availableSeat(1, "1A", 200),
		availableSeat(2, "1B", 300),
	)
	manager := newTestLockManager(store)
	ctx := context.Background()

	locked, err := manager.LockSeats(ctx, []int{1, 2}, 7)
	require.NoError(t, err)
	require.Len(t, locked, 2)

	require.NoError(t, manager.ConfirmBooking(ctx, []int{1, 2}, 7))

	for _, id := range []int{1, 2} {
		seat := store.seat(t, id)
		assert.Equal(t, domain.SeatBooked, seat.Status)
		assert.Nil(t, seat.LockedAt)
		assert.Nil(t, seat.LockedByUserID)
	}

	// Booked seats stay booked through a release attempt.
	require.NoError(t, manager.ReleaseSeats(ctx, []int{1, 2}, 7))
	assert.Equal(t, domain.SeatBooked, store.seat(t, 1).Status)
}

func TestConfirmAfterConcurrentSweepFails(t *testing.T) {
	store := newMemSeatStore(availableSeat(1, "1A", 200))
	manager := newTestLockManager(store)
	ctx := context.Background()

	_, err := manager.LockSeats(ctx, []int{1}, 7)
	require.NoError(t, err)

	_, err = store.ReleaseExpiredLocks(ctx, testLockTime.Add(time.Minute))
	require.NoError(t, err)

	err = manager.ConfirmBooking(ctx, []int{1}, 7)
	assert.True(t, errors.Is(err, domain.ErrSeatNotLocked))
	assert.Equal(t, domain.SeatAvailable, store.seat(t, 1).Status)
}

func TestReaperSweepReleasesOnlyExpiredLocks(t *testing.T) {
	store := newMemSeatStore(
		availableSeat(1, "1A", 200),
		availableSeat(2, "1B", 300),
		availableSeat(3, "1C", 250),
	)
	manager := newTestLockManager(store)
	ctx := context.Background()

	_, err := manager.LockSeats(ctx, []int{1, 2}, 7)
	require.NoError(t, err)

	// A fresher lock from another user must survive the sweep.
	manager.now = func() time.Time { return testLockTime.Add(9 * time.Minute) }
	_, err = manager.LockSeats(ctx, []int{3}, 8)
	require.NoError(t, err)

	reaper := NewReaper(store, slog.New(slog.NewTextHandler(io.Discard, nil)), DefaultLockTimeout, DefaultReaperInterval)
	reaper.now = func() time.Time { return testLockTime.Add(11 * time.Minute) }

	reaper.Sweep(ctx)

	assert.Equal(t, domain.SeatAvailable, store.seat(t, 1).Status)
	assert.Equal(t, domain.SeatAvailable, store.seat(t, 2).Status)
	assert.Equal(t, domain.SeatLocked, store.seat(t, 3).Status)
	assert.Nil(t, store.seat(t, 1).LockedAt)
	assert.Nil(t, store.seat(t, 1).LockedByUserID)

	// Second sweep finds nothing left to release.
	released, err := store.ReleaseExpiredLocks(ctx, testLockTime.Add(11*time.Minute).Add(-DefaultLockTimeout))
	require.NoError(t, err)
	assert.Zero(t, released)
}
