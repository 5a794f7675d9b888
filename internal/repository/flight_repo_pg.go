package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkraev/aeroticket/internal/domain"
)

type FlightRepository interface {
	Create(ctx context.Context, flight *domain.Flight) error
	GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error)
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, filter domain.FlightFilter, page domain.Page) ([]domain.Flight, int, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, flight_number, departure_time, arrival_time, destination, available_seats, created_at, updated_at`

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.DepartureTime, &f.ArrivalTime, &f.Destination, &f.AvailableSeats, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	err := r.db.QueryRow(ctx, `INSERT INTO flights (flight_number, departure_time, arrival_time, destination, available_seats)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		flight.FlightNumber, flight.DepartureTime, flight.ArrivalTime, flight.Destination, flight.AvailableSeats).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ErrFlightExists
	}
	return err
}

func (r *PGFlightRepository) GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE flight_number=$1`, flightNumber)
	flight, err := scanFlight(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFlightNotFound
	}
	return flight, err
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	row := r.db.QueryRow(ctx, `UPDATE flights SET flight_number=$1, departure_time=$2, arrival_time=$3, destination=$4, available_seats=$5, updated_at=now()
		WHERE id=$6
		RETURNING updated_at`,
		flight.FlightNumber, flight.DepartureTime, flight.ArrivalTime, flight.Destination, flight.AvailableSeats, flight.ID)
	err := row.Scan(&flight.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrFlightNotFound
	}
	if isUniqueViolation(err) {
		return domain.ErrFlightExists
	}
	return err
}

// Delete removes the flight and marks every history row referencing its
// flight number as cancelled. Tickets are left untouched.
func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var flightNumber string
	if err := tx.QueryRow(ctx, `SELECT flight_number FROM flights WHERE id=$1 FOR UPDATE`, id).Scan(&flightNumber); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrFlightNotFound
		}
		return err
	}

	if _, err := tx.Exec(ctx, `UPDATE history SET flight_status=$1 WHERE flight_number=$2`, domain.FlightStatusCancelled, flightNumber); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGFlightRepository) Search(ctx context.Context, filter domain.FlightFilter, page domain.Page) ([]domain.Flight, int, error) {
	where, args := flightWhere(filter)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM flights`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, page.Limit, page.Offset())
	query := fmt.Sprintf(`SELECT %s FROM flights%s ORDER BY departure_time LIMIT $%d OFFSET $%d`, flightColumns, where, len(args)-1, len(args))
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.FlightNumber, &f.DepartureTime, &f.ArrivalTime, &f.Destination, &f.AvailableSeats, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, 0, err
		}
		flights = append(flights, f)
	}
	return flights, total, rows.Err()
}

func flightWhere(filter domain.FlightFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.FlightNumber != "" {
		args = append(args, filter.FlightNumber)
		conds = append(conds, fmt.Sprintf("flight_number=$%d", len(args)))
	}
	if filter.Destination != "" {
		args = append(args, filter.Destination+"%")
		conds = append(conds, fmt.Sprintf("destination LIKE $%d", len(args)))
	}
	if !filter.DepartureTime.IsZero() {
		args = append(args, filter.DepartureTime)
		conds = append(conds, fmt.Sprintf("departure_time >= $%d", len(args)))
	}
	if filter.AvailableSeats > 0 {
		args = append(args, filter.AvailableSeats)
		conds = append(conds, fmt.Sprintf("available_seats >= $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ FlightRepository = (*PGFlightRepository)(nil)
