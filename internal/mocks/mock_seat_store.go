package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/yigitentrk/show-booking-system/internal/domain"
)

type MockSeatTx struct {
	mock.Mock
}

func (m *MockSeatTx) UpdateSeats(ctx context.Context, seats []domain.ShowSeat) error {
	args := m.Called(ctx, seats)
	return args.Error(0)
}

func (m *MockSeatTx) DeleteTicket(ctx context.Context, ticketID int) error {
	args := m.Called(ctx, ticketID)
	return args.Error(0)
}

// MockSeatStore hands the seats configured on the WithSeatsForUpdate
// expectation to the callback, together with Tx, so tests exercise the real
// transition logic inside the row hold.
type MockSeatStore struct {
	mock.Mock
	Tx *MockSeatTx
}

func NewMockSeatStore() *MockSeatStore {
	return &MockSeatStore{Tx: new(MockSeatTx)}
}

func (m *MockSeatStore) GetSeatsByShow(ctx context.Context, showID int) ([]domain.ShowSeat, error) {
	args := m.Called(ctx, showID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShowSeat), args.Error(1)
}

func (m *MockSeatStore) WithSeatsForUpdate(
	ctx context.Context,
	seatIDs []int,
	fn func(tx domain.SeatTx, seats []domain.ShowSeat) error) error {

	args := m.Called(ctx, seatIDs)
	if args.Error(1) != nil {
		return args.Error(1)
	}

	var seats []domain.ShowSeat
	if args.Get(0) != nil {
		seats = args.Get(0).([]domain.ShowSeat)
	}

	return fn(m.Tx, seats)
}

func (m *MockSeatStore) ReleaseExpiredLocks(ctx context.Context, threshold time.Time) (int64, error) {
	args := m.Called(ctx, threshold)
	return args.Get(0).(int64), args.Error(1)
}
