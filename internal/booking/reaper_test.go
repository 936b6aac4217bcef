package booking

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/yigitentrk/show-booking-system/internal/mocks"
)

func TestReaperSweepThreshold(t *testing.T) {
	store := mocks.NewMockSeatStore()
	reaper := NewReaper(store, slog.New(slog.NewTextHandler(io.Discard, nil)), 10*time.Minute, time.Minute)
	reaper.now = func() time.Time { return testLockTime }

	var threshold time.Time
	store.On("ReleaseExpiredLocks", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		threshold = args.Get(1).(time.Time)
	}).Return(int64(3), nil)

	reaper.Sweep(context.Background())

	assert.Equal(t, testLockTime.Add(-10*time.Minute), threshold)
	store.AssertExpectations(t)
}

func TestReaperSweepSurvivesStoreErrors(t *testing.T) {
	store := mocks.NewMockSeatStore()
	reaper := NewReaper(store, slog.New(slog.NewTextHandler(io.Discard, nil)), 10*time.Minute, time.Minute)

	store.On("ReleaseExpiredLocks", mock.Anything, mock.Anything).Return(int64(0), errors.New("connection reset"))

	reaper.Sweep(context.Background())

	store.AssertExpectations(t)
}

func TestReaperRunStopsOnCancel(t *testing.T) {
	store := mocks.NewMockSeatStore()
	reaper := NewReaper(store, slog.New(slog.NewTextHandler(io.Discard, nil)), 10*time.Minute, 5*time.Millisecond)

	swept := make(chan struct{})
	store.On("ReleaseExpiredLocks", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		select {
		case swept <- struct{}{}:
		default:
		}
	}).Return(int64(0), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		reaper.Run(ctx)
		close(done)
	}()

	select {
	case <-swept:
	case <-time.After(time.Second):
		t.Fatal("reaper never swept")
	}

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop after cancellation")
	}
}

func TestNewReaperDefaults(t *testing.T) {
	reaper := NewReaper(mocks.NewMockSeatStore(), slog.New(slog.NewTextHandler(io.Discard, nil)), 0, 0)

	assert.Equal(t, DefaultLockTimeout, reaper.lockTimeout)
	assert.Equal(t, DefaultReaperInterval, reaper.interval)
}
