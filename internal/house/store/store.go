package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/filski95/web-app-challets/internal/house"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateHouse(ctx context.Context, h *house.House) error {
	query := `
		INSERT INTO houses (house_number, price_night)
		VALUES ($1, $2)
	`

	if _, err := s.db.ExecContext(ctx, query, h.Number, h.PriceNight); err != nil {
		return fmt.Errorf("creating house: %w", err)
	}

	return nil
}

func (s *Store) GetHouse(ctx context.Context, number int) (*house.House, error) {
	var h house.House

	err := s.db.QueryRowContext(ctx,
		`SELECT house_number, price_night FROM houses WHERE house_number = $1`, number,
	).Scan(&h.Number, &h.PriceNight)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, house.ErrNotFound
		}

		return nil, fmt.Errorf("getting house: %w", err)
	}

	return &h, nil
}

func (s *Store) ListHouses(ctx context.Context) ([]*house.House, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT house_number, price_night FROM houses ORDER BY house_number ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing houses: %w", err)
	}
	defer rows.Close()

	var houses []*house.House

	for rows.Next() {
		var h house.House
		if err := rows.Scan(&h.Number, &h.PriceNight); err != nil {
			return nil, fmt.Errorf("scanning house: %w", err)
		}

		houses = append(houses, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating house rows: %w", err)
	}

	return houses, nil
}

func (s *Store) UpdatePrice(ctx context.Context, number, priceNight int) error {
	query := `
		UPDATE houses
		SET price_night = $1
		WHERE house_number = $2
	`

	if _, err := s.db.ExecContext(ctx, query, priceNight, number); err != nil {
		return fmt.Errorf("updating house price: %w", err)
	}

	return nil
}
