package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkraev/aeroticket/internal/domain"
)

type HistoryRepository interface {
	List(ctx context.Context, filter domain.HistoryFilter, page domain.Page) ([]domain.History, int, error)
}

type PGHistoryRepository struct {
	db *pgxpool.Pool
}

func NewHistoryRepository(db *pgxpool.Pool) HistoryRepository {
	return &PGHistoryRepository{db: db}
}

const historyColumns = `id, user_id, operation, ticket_id, flight_number, departure_time, destination, timestamp, flight_status, seat_number`

func (r *PGHistoryRepository) List(ctx context.Context, filter domain.HistoryFilter, page domain.Page) ([]domain.History, int, error) {
	where, args := historyWhere(filter)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM history`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, page.Limit, page.Offset())
	query := fmt.Sprintf(`SELECT %s FROM history%s ORDER BY timestamp DESC LIMIT $%d OFFSET $%d`, historyColumns, where, len(args)-1, len(args))
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records := make([]domain.History, 0)
	for rows.Next() {
		var h domain.History
		if err := rows.Scan(&h.ID, &h.UserID, &h.Operation, &h.TicketID, &h.FlightNumber, &h.DepartureTime, &h.Destination, &h.Timestamp, &h.FlightStatus, &h.SeatNumber); err != nil {
			return nil, 0, err
		}
		records = append(records, h)
	}
	return records, total, rows.Err()
}

func historyWhere(filter domain.HistoryFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.UserID != 0 {
		args = append(args, filter.UserID)
		conds = append(conds, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if filter.Operation != "" {
		args = append(args, filter.Operation)
		conds = append(conds, fmt.Sprintf("operation=$%d", len(args)))
	}
	if filter.FlightNumber != "" {
		args = append(args, filter.FlightNumber)
		conds = append(conds, fmt.Sprintf("flight_number=$%d", len(args)))
	}
	if filter.Destination != "" {
		args = append(args, "%"+filter.Destination+"%")
		conds = append(conds, fmt.Sprintf("destination LIKE $%d", len(args)))
	}
	if !filter.DepartureTime.IsZero() {
		args = append(args, filter.DepartureTime)
		conds = append(conds, fmt.Sprintf("departure_time >= $%d", len(args)))
	}
	if !filter.Timestamp.IsZero() {
		args = append(args, filter.Timestamp)
		conds = append(conds, fmt.Sprintf("timestamp >= $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var _ HistoryRepository = (*PGHistoryRepository)(nil)
