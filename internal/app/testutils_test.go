package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yigitentrk/show-booking-system/internal/booking"
	"github.com/yigitentrk/show-booking-system/internal/domain"
	"github.com/yigitentrk/show-booking-system/internal/mocks"
	appvalidator "github.com/yigitentrk/show-booking-system/internal/validator"
)

var testShowTime = time.Date(2025, 6, 3, 19, 30, 0, 0, time.UTC)

type testMocks struct {
	showRepo   *mocks.MockShowRepo
	userRepo   *mocks.MockUserRepo
	ticketRepo *mocks.MockTicketRepo
	seatStore  *mocks.MockSeatStore
	publisher  *mocks.MockEventPublisher
}

// newTestApplication wires a real booking service over mocked stores, so
// handler tests exercise the full request path below the transport.
func newTestApplication(t *testing.T) (*application, *testMocks) {
	t.Helper()

	m := &testMocks{
		showRepo:   new(mocks.MockShowRepo),
		userRepo:   new(mocks.MockUserRepo),
		ticketRepo: new(mocks.MockTicketRepo),
		seatStore:  mocks.NewMockSeatStore(),
		publisher:  new(mocks.MockEventPublisher),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	lockManager := booking.NewSeatLockManager(m.seatStore, logger)
	bookings := booking.NewService(m.showRepo, m.userRepo, m.ticketRepo, m.seatStore, lockManager, m.publisher, logger, booking.DefaultLockTimeout)

	app := &application{
		logger:    logger,
		validator: appvalidator.NewValidator(),
		bookings:  bookings,
	}

	return app, m
}

func (app *application) executeRequest(t *testing.T, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	app.routes().ServeHTTP(rr, req)

	return rr
}

func decodeResponse[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v))
	return v
}

func testShow() *domain.Show {
	return &domain.Show{
		ID:          1,
		EventName:   "The Tempest",
		TheaterName: "Grand Hall",
		StartsAt:    testShowTime,
	}
}

func testUser() *domain.User {
	return &domain.User{ID: 7, Name: "Deniz", Email: "deniz@example.com"}
}

func seatRow(id int, seatNo string, seatType domain.SeatType, price int, status domain.SeatStatus) domain.ShowSeat {
	return domain.ShowSeat{
		ID:       id,
		ShowID:   1,
		SeatNo:   seatNo,
		SeatType: seatType,
		Price:    price,
		Status:   status,
		Version:  1,
	}
}
