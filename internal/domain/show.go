package domain

import (
	"context"
	"time"
)

// Show is an external collaborator as far as the booking core is concerned:
// it is only read, never mutated here. StartsAt carries both the show date
// and the start time.
type Show struct {
	ID          int
	EventName   string
	TheaterName string
	StartsAt    time.Time
}

// Date returns the calendar day of the show in its own location.
func (s *Show) Date() time.Time {
	year, month, day := s.StartsAt.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, s.StartsAt.Location())
}

type ShowRepository interface {
	GetById(ctx context.Context, id int) (*Show, error)
}
