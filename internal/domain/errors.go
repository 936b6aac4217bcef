package domain

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrEditConflict   = errors.New("edit conflict")

	ErrShowNotFound = errors.New("show does not exist")
	ErrUserNotFound = errors.New("user does not exist")

	ErrSeatsNotFound    = errors.New("one or more requested seats do not exist for the show")
	ErrSeatsUnavailable = errors.New("one or more seats are not available")

	ErrSeatNotLocked     = errors.New("seat is not locked")
	ErrSeatLockedByOther = errors.New("seat is locked by another user")

	ErrPastShow                 = errors.New("cannot cancel ticket for past shows")
	ErrCancellationWindowClosed = errors.New("cannot cancel ticket less than 2 hours before show")
	ErrNotAuthorized            = errors.New("not authorized to cancel this ticket")

	// ErrTransientStore marks store failures that are safe to retry as long
	// as no seat has changed state yet (serialization failures, deadlocks).
	ErrTransientStore = errors.New("transient store error")
)
