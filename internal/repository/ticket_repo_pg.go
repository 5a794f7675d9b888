package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkraev/aeroticket/internal/domain"
)

// TicketRepository runs each lifecycle transition as a single transaction
// with a row lock on the affected ticket and an atomic conditional update
// on the flight's seat counter, so two purchases racing for the last seat
// cannot both succeed.
type TicketRepository interface {
	Purchase(ctx context.Context, userID int64, flightNumber string) (*domain.Ticket, error)
	Cancel(ctx context.Context, ticketID, userID int64) (*domain.Ticket, error)
	CheckIn(ctx context.Context, ticketID, userID int64) (*domain.Ticket, int, error)
}

type PGTicketRepository struct {
	db *pgxpool.Pool
}

func NewTicketRepository(db *pgxpool.Pool) TicketRepository {
	return &PGTicketRepository{db: db}
}

const ticketColumns = `id, user_id, flight_number, destination, date, status, checkin_done, created_at, updated_at`

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var t domain.Ticket
	if err := row.Scan(&t.ID, &t.UserID, &t.FlightNumber, &t.Destination, &t.Date, &t.Status, &t.CheckinDone, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PGTicketRepository) Purchase(ctx context.Context, userID int64, flightNumber string) (*domain.Ticket, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var flight domain.Flight
	err = tx.QueryRow(ctx, `SELECT flight_number, departure_time, destination, available_seats FROM flights WHERE flight_number=$1 FOR UPDATE`, flightNumber).
		Scan(&flight.FlightNumber, &flight.DepartureTime, &flight.Destination, &flight.AvailableSeats)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFlightNotFound
	}
	if err != nil {
		return nil, err
	}
	if flight.AvailableSeats <= 0 {
		return nil, domain.ErrNoSeats
	}

	if _, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats - 1, updated_at = now() WHERE flight_number=$1`, flightNumber); err != nil {
		return nil, err
	}

	ticket := &domain.Ticket{
		UserID:       userID,
		FlightNumber: flight.FlightNumber,
		Destination:  flight.Destination,
		Date:         flight.DepartureTime,
		Status:       domain.TicketStatusActive,
	}
	if err := tx.QueryRow(ctx, `INSERT INTO tickets (user_id, flight_number, destination, date, status, checkin_done)
		VALUES ($1, $2, $3, $4, $5, false)
		RETURNING id, created_at, updated_at`,
		ticket.UserID, ticket.FlightNumber, ticket.Destination, ticket.Date, ticket.Status).
		Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `INSERT INTO history (user_id, operation, ticket_id, flight_number, departure_time, destination, timestamp, flight_status)
		VALUES ($1, $2, $3, $4, $5, $6, now(), $7)`,
		userID, domain.OperationPurchase, ticket.ID, flight.FlightNumber, flight.DepartureTime, flight.Destination, domain.FlightStatusActive); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (r *PGTicketRepository) Cancel(ctx context.Context, ticketID, userID int64) (*domain.Ticket, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ticket, err := lockTicket(ctx, tx, ticketID, userID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == domain.TicketStatusCancelled {
		return nil, domain.ErrTicketCancelled
	}
	if ticket.CheckinDone {
		return nil, domain.ErrTicketCheckedIn
	}

	if err := tx.QueryRow(ctx, `UPDATE tickets SET status=$1, updated_at=now() WHERE id=$2 RETURNING status, updated_at`,
		domain.TicketStatusCancelled, ticket.ID).Scan(&ticket.Status, &ticket.UpdatedAt); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats + 1, updated_at = now() WHERE flight_number=$1`, ticket.FlightNumber); err != nil {
		return nil, err
	}

	// Silent no-op when the purchase record is gone, per the original
	// contract.
	if _, err := tx.Exec(ctx, `UPDATE history SET operation=$1, timestamp=now() WHERE ticket_id=$2 AND user_id=$3 AND operation=$4`,
		domain.OperationCancellation, ticket.ID, userID, domain.OperationPurchase); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (r *PGTicketRepository) CheckIn(ctx context.Context, ticketID, userID int64) (*domain.Ticket, int, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback(ctx)

	ticket, err := lockTicket(ctx, tx, ticketID, userID)
	if err != nil {
		return nil, 0, err
	}
	if ticket.Status == domain.TicketStatusCancelled {
		return nil, 0, domain.ErrTicketCancelled
	}
	if ticket.CheckinDone {
		return nil, 0, domain.ErrTicketCheckedIn
	}

	if err := tx.QueryRow(ctx, `UPDATE tickets SET checkin_done=true, updated_at=now() WHERE id=$1 RETURNING checkin_done, updated_at`,
		ticket.ID).Scan(&ticket.CheckinDone, &ticket.UpdatedAt); err != nil {
		return nil, 0, err
	}

	// Seats are handed out in check-in order: one past the number of
	// check-ins already recorded for this flight. The flight row is locked
	// first so concurrent check-ins on different tickets serialize and
	// cannot both count the same total.
	var flightNumber string
	if err := tx.QueryRow(ctx, `SELECT flight_number FROM flights WHERE flight_number=$1 FOR UPDATE`,
		ticket.FlightNumber).Scan(&flightNumber); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, 0, err
	}
	var checkedIn int
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM history WHERE flight_number=$1 AND operation=$2`,
		ticket.FlightNumber, domain.OperationCheckIn).Scan(&checkedIn); err != nil {
		return nil, 0, err
	}
	seatNumber := checkedIn + 1

	if _, err := tx.Exec(ctx, `UPDATE history SET operation=$1, timestamp=now(), seat_number=$2 WHERE ticket_id=$3 AND user_id=$4 AND operation=$5`,
		domain.OperationCheckIn, seatNumber, ticket.ID, userID, domain.OperationPurchase); err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, err
	}
	return ticket, seatNumber, nil
}

func lockTicket(ctx context.Context, tx pgx.Tx, ticketID, userID int64) (*domain.Ticket, error) {
	row := tx.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id=$1 AND user_id=$2 FOR UPDATE`, ticketID, userID)
	ticket, err := scanTicket(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTicketNotFound
	}
	return ticket, err
}

var _ TicketRepository = (*PGTicketRepository)(nil)
