package repository

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkraev/aeroticket/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewRepositories(t *testing.T) {
	pool := &pgxpool.Pool{}
	assert.NotNil(t, NewUserRepository(pool))
	assert.NotNil(t, NewFlightRepository(pool))
	assert.NotNil(t, NewTicketRepository(pool))
	assert.NotNil(t, NewHistoryRepository(pool))
}

func TestFlightWhere(t *testing.T) {
	where, args := flightWhere(domain.FlightFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	departure := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	where, args = flightWhere(domain.FlightFilter{
		FlightNumber:   "F001",
		Destination:    "Rome",
		DepartureTime:  departure,
		AvailableSeats: 2,
	})
	assert.Equal(t, " WHERE flight_number=$1 AND destination LIKE $2 AND departure_time >= $3 AND available_seats >= $4", where)
	assert.Equal(t, []any{"F001", "Rome%", departure, 2}, args)
}

func TestHistoryWhere_UserScope(t *testing.T) {
	where, args := historyWhere(domain.HistoryFilter{UserID: 7, Operation: domain.OperationCheckIn})
	assert.Equal(t, " WHERE user_id=$1 AND operation=$2", where)
	assert.Equal(t, []any{int64(7), domain.OperationCheckIn}, args)
}

func TestUserWhere_Substring(t *testing.T) {
	where, args := userWhere(domain.UserFilter{Email: "rossi", Role: domain.RoleAdmin})
	assert.Equal(t, " WHERE email LIKE $1 AND role=$2", where)
	assert.Equal(t, []any{"%rossi%", domain.RoleAdmin}, args)
}
