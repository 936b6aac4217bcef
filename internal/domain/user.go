package domain

import "context"

// User is resolved from the external user store. Registration, profiles and
// authentication live outside the booking core; only identity and the
// contact fields carried on outbound events are needed here.
type User struct {
	ID     int
	Name   string
	Email  string
	Mobile string
}

type UserRepository interface {
	GetById(ctx context.Context, id int) (*User, error)
}
