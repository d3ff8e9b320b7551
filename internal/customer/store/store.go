package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/filski95/web-app-challets/internal/customer"
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

const selectProfileColumns = `
	p.id, p.owner_id, p.first_name, p.surname, p.email, p.total_visits, p.tier, p.joined
`

func scanProfile(s scanner) (*customer.Profile, error) {
	var p customer.Profile

	var tier string

	if err := s.Scan(
		&p.ID, &p.OwnerID, &p.FirstName, &p.Surname, &p.Email, &p.TotalVisits, &tier, &p.Joined,
	); err != nil {
		return nil, err
	}

	p.Tier = customer.Tier(tier)

	return &p, nil
}

func (s *Store) CreateProfile(ctx context.Context, p *customer.Profile) error {
	query := `
		INSERT INTO customer_profiles (owner_id, first_name, surname, email, total_visits, tier, joined)
		VALUES ($1, $2, $3, $4, 0, $5, NOW())
		RETURNING id, total_visits, joined
	`

	err := s.db.QueryRowContext(ctx, query,
		p.OwnerID, p.FirstName, p.Surname, p.Email, string(p.Tier),
	).Scan(&p.ID, &p.TotalVisits, &p.Joined)
	if err != nil {
		return fmt.Errorf("creating profile: %w", err)
	}

	return nil
}

func (s *Store) GetProfile(ctx context.Context, id int64) (*customer.Profile, error) {
	query := `SELECT ` + selectProfileColumns + `
		FROM customer_profiles p
		WHERE p.id = $1`

	p, err := scanProfile(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, customer.ErrNotFound
		}

		return nil, fmt.Errorf("getting profile: %w", err)
	}

	return p, nil
}

func (s *Store) GetProfileByOwner(ctx context.Context, ownerID uuid.UUID) (*customer.Profile, error) {
	query := `SELECT ` + selectProfileColumns + `
		FROM customer_profiles p
		WHERE p.owner_id = $1`

	p, err := scanProfile(s.db.QueryRowContext(ctx, query, ownerID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, customer.ErrNotFound
		}

		return nil, fmt.Errorf("getting profile by owner: %w", err)
	}

	return p, nil
}

func (s *Store) UpdateProfile(ctx context.Context, p *customer.Profile) error {
	query := `
		UPDATE customer_profiles
		SET first_name = $1, surname = $2, email = $3, total_visits = $4, tier = $5
		WHERE id = $6
	`

	_, err := s.db.ExecContext(ctx, query,
		p.FirstName, p.Surname, p.Email, p.TotalVisits, string(p.Tier), p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}

	return nil
}

func (s *Store) ListProfiles(ctx context.Context) ([]*customer.Profile, error) {
	query := `SELECT ` + selectProfileColumns + `
		FROM customer_profiles p
		ORDER BY p.id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*customer.Profile

	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}

		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profile rows: %w", err)
	}

	return profiles, nil
}
