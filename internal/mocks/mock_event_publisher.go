package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/yigitentrk/show-booking-system/internal/domain"
)

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishBookingConfirmed(ctx context.Context, event domain.BookingConfirmedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishBookingFailed(ctx context.Context, event domain.BookingFailedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
