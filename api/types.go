// Package api defines the request and response payloads of the booking HTTP
// surface.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SeatLockRequest struct {
	UserID int      `json:"userId" validate:"required,min=1"`
	Seats  []string `json:"seats" validate:"required,min=1,unique,dive,seat_no"`
}

type SeatLockResponse struct {
	LockedSeats []string  `json:"lockedSeats"`
	TotalPrice  int       `json:"totalPrice"`
	LockedAt    time.Time `json:"lockedAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Message     string    `json:"message"`
}

type SeatReleaseRequest struct {
	UserID int      `json:"userId" validate:"required,min=1"`
	Seats  []string `json:"seats" validate:"required,min=1,unique,dive,seat_no"`
}

type BookTicketRequest struct {
	UserID int      `json:"userId" validate:"required,min=1"`
	Seats  []string `json:"seats" validate:"required,min=1,unique,dive,seat_no"`
}

type TicketResponse struct {
	TicketID    int       `json:"ticketId"`
	ShowID      int       `json:"showId"`
	UserID      int       `json:"userId"`
	BookedSeats string    `json:"bookedSeats"`
	TotalPrice  int       `json:"totalPrice"`
	BookedAt    time.Time `json:"bookedAt"`
}

type TicketListResponse struct {
	Tickets []TicketResponse `json:"tickets"`
}

type CancelTicketRequest struct {
	UserID int `json:"userId" validate:"required,min=1"`
}

type CancelTicketResponse struct {
	Message       string          `json:"message"`
	RefundPercent decimal.Decimal `json:"refundPercent"`
	RefundAmount  decimal.Decimal `json:"refundAmount"`
}

type ShowSeatInfo struct {
	SeatNo   string `json:"seatNo"`
	SeatType string `json:"seatType"`
	Price    int    `json:"price"`
	Status   string `json:"status"`
}

type ShowSeatsResponse struct {
	ShowID         int            `json:"showId"`
	AvailableSeats int            `json:"availableSeats"`
	Seats          []ShowSeatInfo `json:"seats"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
}
