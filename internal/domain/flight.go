package domain

import "time"

type Flight struct {
	ID             int64
	FlightNumber   string
	DepartureTime  time.Time
	ArrivalTime    time.Time
	Destination    string
	AvailableSeats int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FlightFilter carries optional search criteria. FlightNumber matches
// exactly, Destination by prefix, DepartureTime and AvailableSeats are
// lower bounds.
type FlightFilter struct {
	FlightNumber   string
	Destination    string
	DepartureTime  time.Time
	AvailableSeats int
}

func (f FlightFilter) Empty() bool {
	return f.FlightNumber == "" && f.Destination == "" && f.DepartureTime.IsZero() && f.AvailableSeats == 0
}
