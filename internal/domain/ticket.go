package domain

import "time"

type TicketStatus string

const (
	TicketStatusActive    TicketStatus = "active"
	TicketStatusCancelled TicketStatus = "cancelled"
)

type Ticket struct {
	ID           int64
	UserID       int64
	FlightNumber string
	Destination  string
	Date         time.Time
	Status       TicketStatus
	CheckinDone  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
