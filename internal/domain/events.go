package domain

import (
	"context"
	"time"
)

// BookingConfirmedEvent is published after a booking is fully confirmed. It
// is consumed by the external notification service and therefore carries
// everything a confirmation email needs.
type BookingConfirmedEvent struct {
	BookingID        int       `json:"bookingId"`
	BookingReference string    `json:"bookingReference"`
	UserID           int       `json:"userId"`
	UserEmail        string    `json:"userEmail"`
	UserName         string    `json:"userName"`
	UserMobile       string    `json:"userMobile,omitempty"`
	ShowID           int       `json:"showId"`
	EventName        string    `json:"eventName"`
	TheaterName      string    `json:"theaterName"`
	ShowTime         time.Time `json:"showTime"`
	BookedSeats      string    `json:"bookedSeats"`
	TotalSeats       int       `json:"totalSeats"`
	TotalPrice       int       `json:"totalPrice"`
	BookingTime      time.Time `json:"bookingTime"`
}

// BookingFailedEvent is published when a booking attempt fails after the
// request was accepted for processing.
type BookingFailedEvent struct {
	UserID         int       `json:"userId"`
	UserEmail      string    `json:"userEmail"`
	ShowID         int       `json:"showId"`
	EventName      string    `json:"eventName"`
	RequestedSeats string    `json:"requestedSeats"`
	FailureReason  string    `json:"failureReason"`
	FailureTime    time.Time `json:"failureTime"`
}

// EventPublisher is the outbound boundary to the notification service.
// Publication is at-least-once and best-effort from the caller's point of
// view: the orchestrator logs and discards publish errors, it never fails a
// booking because of them.
type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error
	PublishBookingFailed(ctx context.Context, event BookingFailedEvent) error
}
