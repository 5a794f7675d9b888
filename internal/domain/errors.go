package domain

import "errors"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrFlightNotFound = errors.New("flight not found")
	ErrTicketNotFound = errors.New("ticket not found")

	ErrEmailTaken         = errors.New("email already in use")
	ErrFlightExists       = errors.New("flight number already exists")
	ErrNoSeats            = errors.New("no available seats")
	ErrTicketCancelled    = errors.New("ticket already cancelled")
	ErrTicketCheckedIn    = errors.New("ticket already checked in")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPassword      = errors.New("current password is incorrect")

	ErrNoSession = errors.New("no active session")
	ErrForbidden = errors.New("insufficient permissions")

	// ErrNoResults distinguishes an empty search from other failures; the
	// search and history endpoints surface it instead of an empty list.
	ErrNoResults = errors.New("no matching records")
)
