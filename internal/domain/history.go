package domain

import "time"

type Operation string

const (
	OperationPurchase     Operation = "purchase"
	OperationCancellation Operation = "cancellation"
	OperationCheckIn      Operation = "check-in"
)

type FlightStatus string

const (
	FlightStatusActive    FlightStatus = "active"
	FlightStatusCancelled FlightStatus = "cancelled"
	FlightStatusModified  FlightStatus = "modified"
)

// History tracks the current lifecycle state of one ticket. The record is
// created on purchase and then mutated in place on cancellation and
// check-in, so there is exactly one row per ticket whose Operation field
// names the latest transition. It is not an append-only audit log.
type History struct {
	ID            int64
	UserID        int64
	Operation     Operation
	TicketID      int64
	FlightNumber  string
	DepartureTime time.Time
	Destination   string
	Timestamp     time.Time
	FlightStatus  FlightStatus
	SeatNumber    *int
}

// HistoryFilter carries optional criteria for history listings. Operation
// and FlightNumber match exactly, Destination by substring, the time fields
// are lower bounds. UserID scopes the user-facing read; monitoring leaves
// it zero.
type HistoryFilter struct {
	UserID        int64
	Operation     Operation
	FlightNumber  string
	Destination   string
	DepartureTime time.Time
	Timestamp     time.Time
}
