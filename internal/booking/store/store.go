package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/filski95/web-app-challets/internal/booking"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectReservationColumns = `
	r.id, r.reservation_number, r.customer_profile_id, r.reservation_owner, r.house_number,
	r.status, r.start_date, r.end_date, r.nights, r.total_price, r.created_at, r.updated_at
`

// scanReservation reads a reservation row in selectReservationColumns order.
func scanReservation(s scanner) (*booking.Reservation, error) {
	var r booking.Reservation

	var number sql.NullString

	var start, end sql.NullTime

	var status int

	if err := s.Scan(
		&r.ID, &number, &r.CustomerProfileID, &r.OwnerID, &r.HouseNumber,
		&status, &start, &end, &r.Nights, &r.TotalPrice, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}

	r.Number = number.String
	r.Status = booking.Status(status)

	if start.Valid {
		d := start.Time.UTC()
		r.StartDate = &d
	}

	if end.Valid {
		d := end.Time.UTC()
		r.EndDate = &d
	}

	return &r, nil
}

func (s *Store) GetReservation(ctx context.Context, id int64) (*booking.Reservation, error) {
	query := `SELECT ` + selectReservationColumns + `
		FROM reservations r
		WHERE r.id = $1`

	r, err := scanReservation(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, booking.ErrNotFound
		}

		return nil, fmt.Errorf("getting reservation: %w", err)
	}

	return r, nil
}

func (s *Store) ListReservations(ctx context.Context, filter booking.ListFilter) ([]*booking.Reservation, error) {
	query := `SELECT ` + selectReservationColumns + `
		FROM reservations r
		WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND r.status = $%d", argIdx)

		args = append(args, int(*filter.Status))
		argIdx++
	}

	if filter.OwnerID != nil {
		query += fmt.Sprintf(" AND r.reservation_owner = $%d", argIdx)

		args = append(args, *filter.OwnerID)
		argIdx++
	}

	if filter.HouseNumber != nil {
		query += fmt.Sprintf(" AND r.house_number = $%d", argIdx)

		args = append(args, *filter.HouseNumber)
		argIdx++
	}

	if filter.EndedBy != nil {
		query += fmt.Sprintf(" AND r.end_date <= $%d", argIdx)

		args = append(args, *filter.EndedBy)
		argIdx++
	}

	query += " ORDER BY r.start_date ASC NULLS LAST, r.id ASC"

	return s.queryReservations(ctx, query, args...)
}

// ListActiveByHouse returns the non-cancelled reservations of a house in
// start-date order, the input the availability index expands.
func (s *Store) ListActiveByHouse(ctx context.Context, houseNumber int) ([]*booking.Reservation, error) {
	query := `SELECT ` + selectReservationColumns + `
		FROM reservations r
		WHERE r.house_number = $1 AND r.start_date IS NOT NULL AND r.status <> $2
		ORDER BY r.start_date ASC`

	return s.queryReservations(ctx, query, houseNumber, int(booking.StatusCancelled))
}

func (s *Store) queryReservations(ctx context.Context, query string, args ...any) ([]*booking.Reservation, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*booking.Reservation

	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning reservation: %w", err)
		}

		reservations = append(reservations, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reservation rows: %w", err)
	}

	return reservations, nil
}

func (s *Store) UpdateReservation(ctx context.Context, r *booking.Reservation) error {
	query := `
		UPDATE reservations
		SET status = $1, start_date = $2, end_date = $3, nights = $4, total_price = $5, updated_at = NOW()
		WHERE id = $6
	`

	_, err := s.db.ExecContext(ctx, query,
		int(r.Status),
		r.StartDate,
		r.EndDate,
		r.Nights,
		r.TotalPrice,
		r.ID,
	)
	if err != nil {
		return fmt.Errorf("updating reservation: %w", err)
	}

	return nil
}

// AssignNumber writes the reservation number only when none is present yet,
// so a repeated creation signal cannot overwrite or re-fire it.
func (s *Store) AssignNumber(ctx context.Context, id int64, number string) (bool, error) {
	query := `
		UPDATE reservations
		SET reservation_number = $1, updated_at = NOW()
		WHERE id = $2 AND reservation_number IS NULL
	`

	res, err := s.db.ExecContext(ctx, query, number, id)
	if err != nil {
		return false, fmt.Errorf("assigning reservation number: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("assigning reservation number: %w", err)
	}

	return n == 1, nil
}

func (s *Store) GetHousePrice(ctx context.Context, houseNumber int) (int, error) {
	var price int

	err := s.db.QueryRowContext(ctx,
		`SELECT price_night FROM houses WHERE house_number = $1`, houseNumber,
	).Scan(&price)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, booking.ErrNotFound
		}

		return 0, fmt.Errorf("getting house price: %w", err)
	}

	return price, nil
}

// houseLockKey namespaces the advisory lock so it cannot collide with other
// locks in the database.
func houseLockKey(houseNumber int) int64 {
	const bookingLockSpace = int64(0x42) << 32

	return bookingLockSpace | int64(houseNumber)
}

type hold struct {
	tx          *sql.Tx
	houseNumber int
}

// BeginHold opens a transaction holding the house's advisory lock. Competing
// creators for the same house serialize here, so the availability snapshot a
// validator reads stays true until its insert commits.
func (s *Store) BeginHold(ctx context.Context, houseNumber int) (booking.Hold, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning hold tx: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", houseLockKey(houseNumber)); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("acquiring house lock: %w", err)
	}

	return &hold{tx: tx, houseNumber: houseNumber}, nil
}

func (h *hold) Commit() error   { return h.tx.Commit() }
func (h *hold) Rollback() error { return h.tx.Rollback() }

func (h *hold) ListActive(ctx context.Context) ([]*booking.Reservation, error) {
	query := `SELECT ` + selectReservationColumns + `
		FROM reservations r
		WHERE r.house_number = $1 AND r.start_date IS NOT NULL AND r.status <> $2
		ORDER BY r.start_date ASC`

	rows, err := h.tx.QueryContext(ctx, query, h.houseNumber, int(booking.StatusCancelled))
	if err != nil {
		return nil, fmt.Errorf("listing active reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*booking.Reservation

	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning reservation: %w", err)
		}

		reservations = append(reservations, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reservation rows: %w", err)
	}

	return reservations, nil
}

func (h *hold) Create(ctx context.Context, r *booking.Reservation) error {
	query := `
		INSERT INTO reservations
			(customer_profile_id, reservation_owner, house_number, status, start_date, end_date, nights, total_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := h.tx.QueryRowContext(ctx, query,
		r.CustomerProfileID,
		r.OwnerID,
		r.HouseNumber,
		int(r.Status),
		r.StartDate,
		r.EndDate,
		r.Nights,
		r.TotalPrice,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating reservation: %w", err)
	}

	return nil
}

// ListSweepable selects the reservations the completion sweep should finish:
// stays over by asOf that are neither cancelled nor completed yet.
func (s *Store) ListSweepable(ctx context.Context, asOf time.Time) ([]*booking.Reservation, error) {
	query := `SELECT ` + selectReservationColumns + `
		FROM reservations r
		WHERE r.end_date <= $1 AND r.status NOT IN ($2, $3)
		ORDER BY r.end_date ASC, r.id ASC`

	return s.queryReservations(ctx, query,
		asOf, int(booking.StatusCancelled), int(booking.StatusCompleted))
}

// CompleteReservation marks a reservation completed; the status predicate is
// part of the update, so a concurrent or repeated sweep cannot complete the
// same reservation twice.
func (s *Store) CompleteReservation(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE reservations
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status NOT IN ($1, $3)
	`

	res, err := s.db.ExecContext(ctx, query, int(booking.StatusCompleted), id, int(booking.StatusCancelled))
	if err != nil {
		return false, fmt.Errorf("completing reservation: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("completing reservation: %w", err)
	}

	return n == 1, nil
}
