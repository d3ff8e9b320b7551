package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/filski95/web-app-challets/internal/booking"
	"github.com/filski95/web-app-challets/internal/customer"
)

//go:generate mockgen -source=sweeper.go -destination=sweeper_mock.go -package=sweeper
type Reservations interface {
	ListSweepable(ctx context.Context, asOf time.Time) ([]*booking.Reservation, error)

	// CompleteReservation reports false when the reservation was no longer
	// sweepable, in which case the owner's profile must not be advanced.
	CompleteReservation(ctx context.Context, id int64) (bool, error)
}

type Profiles interface {
	GetProfile(ctx context.Context, id int64) (*customer.Profile, error)
	UpdateProfile(ctx context.Context, p *customer.Profile) error
}

// Sweeper finalizes reservations whose stay has ended: each becomes
// completed and counts one visit towards its owner's loyalty tier.
type Sweeper struct {
	reservations Reservations
	profiles     Profiles
	logger       *slog.Logger
}

func New(reservations Reservations, profiles Profiles, logger *slog.Logger) *Sweeper {
	return &Sweeper{reservations: reservations, profiles: profiles, logger: logger}
}

// Run sweeps every reservation ending on or before asOf. One failing
// reservation is logged and skipped, the rest of the batch still runs.
// Completion is conditional in the store, so re-running with the same asOf
// is a no-op and two overlapping sweeps cannot count the same stay twice.
func (s *Sweeper) Run(ctx context.Context, asOf time.Time, hierarchy customer.Hierarchy) (int, error) {
	due, err := s.reservations.ListSweepable(ctx, asOf)
	if err != nil {
		return 0, fmt.Errorf("listing sweepable reservations: %w", err)
	}

	completed := 0

	for _, r := range due {
		done, err := s.sweepOne(ctx, r, hierarchy)
		if err != nil {
			s.logger.Error("sweep item failed", "reservation", r.ID, "number", r.Number, "error", err)
			continue
		}

		if done {
			completed++
		}
	}

	return completed, nil
}

func (s *Sweeper) sweepOne(ctx context.Context, r *booking.Reservation, hierarchy customer.Hierarchy) (bool, error) {
	done, err := s.reservations.CompleteReservation(ctx, r.ID)
	if err != nil {
		return false, fmt.Errorf("completing reservation: %w", err)
	}

	if !done {
		// Another sweep got here first; nothing to count.
		return false, nil
	}

	profile, err := s.profiles.GetProfile(ctx, r.CustomerProfileID)
	if err != nil {
		return false, fmt.Errorf("loading profile: %w", err)
	}

	before := profile.Tier

	profile.Advance(hierarchy)

	if err := s.profiles.UpdateProfile(ctx, profile); err != nil {
		return false, fmt.Errorf("updating profile: %w", err)
	}

	s.logger.Info("reservation completed",
		"reservation", r.ID,
		"number", r.Number,
		"profile", profile.ID,
		"tier_before", string(before),
		"tier_after", string(profile.Tier),
		"total_visits", profile.TotalVisits,
	)

	return true, nil
}
