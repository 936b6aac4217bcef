package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/yigitentrk/show-booking-system/internal/domain"
)

type MockShowRepo struct {
	mock.Mock
	domain.ShowRepository
}

func (m *MockShowRepo) GetById(ctx context.Context, id int) (*domain.Show, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Show), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
	domain.UserRepository
}

func (m *MockUserRepo) GetById(ctx context.Context, id int) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockTicketRepo struct {
	mock.Mock
	domain.TicketRepository
}

func (m *MockTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepo) GetById(ctx context.Context, id int) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepo) GetByUserId(ctx context.Context, userID int) ([]domain.Ticket, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *MockTicketRepo) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTicketRepo) ExistsByShowId(ctx context.Context, showID int) (bool, error) {
	args := m.Called(ctx, showID)
	return args.Bool(0), args.Error(1)
}
