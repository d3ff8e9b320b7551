package sweeper_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/filski95/web-app-challets/internal/booking"
	"github.com/filski95/web-app-challets/internal/customer"
	"github.com/filski95/web-app-challets/internal/sweeper"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSweeper_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reservations := sweeper.NewMockReservations(ctrl)
	profiles := sweeper.NewMockProfiles(ctrl)
	s := sweeper.New(reservations, profiles, discardLogger())

	asOf := time.Date(2022, 12, 20, 0, 0, 0, 0, time.UTC)
	due := []*booking.Reservation{
		{ID: 1, Number: "202212101", CustomerProfileID: 7},
		{ID: 2, Number: "202212152", CustomerProfileID: 8},
	}

	reservations.EXPECT().ListSweepable(gomock.Any(), asOf).Return(due, nil)

	reservations.EXPECT().CompleteReservation(gomock.Any(), int64(1)).Return(true, nil)
	profiles.EXPECT().GetProfile(gomock.Any(), int64(7)).Return(&customer.Profile{ID: 7, Tier: customer.TierNew, TotalVisits: 3}, nil)
	profiles.EXPECT().
		UpdateProfile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *customer.Profile) error {
			assert.Equal(t, 4, p.TotalVisits)
			assert.Equal(t, customer.TierRegular, p.Tier)
			return nil
		})

	reservations.EXPECT().CompleteReservation(gomock.Any(), int64(2)).Return(true, nil)
	profiles.EXPECT().GetProfile(gomock.Any(), int64(8)).Return(&customer.Profile{ID: 8, Tier: customer.TierSuper, TotalVisits: 20}, nil)
	profiles.EXPECT().
		UpdateProfile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *customer.Profile) error {
			assert.Equal(t, 21, p.TotalVisits)
			assert.Equal(t, customer.TierSuper, p.Tier)
			return nil
		})

	completed, err := s.Run(context.Background(), asOf, customer.DefaultHierarchy())
	require.NoError(t, err)
	assert.Equal(t, 2, completed)
}

func TestSweeper_Run_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reservations := sweeper.NewMockReservations(ctrl)
	profiles := sweeper.NewMockProfiles(ctrl)
	s := sweeper.New(reservations, profiles, discardLogger())

	asOf := time.Date(2022, 12, 20, 0, 0, 0, 0, time.UTC)
	reservations.EXPECT().ListSweepable(gomock.Any(), asOf).Return(nil, nil)

	completed, err := s.Run(context.Background(), asOf, customer.DefaultHierarchy())
	require.NoError(t, err)
	assert.Zero(t, completed)
}

func TestSweeper_Run_OneFailureDoesNotAbortBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reservations := sweeper.NewMockReservations(ctrl)
	profiles := sweeper.NewMockProfiles(ctrl)
	s := sweeper.New(reservations, profiles, discardLogger())

	asOf := time.Date(2022, 12, 20, 0, 0, 0, 0, time.UTC)
	due := []*booking.Reservation{
		{ID: 1, CustomerProfileID: 7},
		{ID: 2, CustomerProfileID: 8},
	}

	reservations.EXPECT().ListSweepable(gomock.Any(), asOf).Return(due, nil)
	reservations.EXPECT().CompleteReservation(gomock.Any(), int64(1)).Return(false, errors.New("deadlock"))
	reservations.EXPECT().CompleteReservation(gomock.Any(), int64(2)).Return(true, nil)
	profiles.EXPECT().GetProfile(gomock.Any(), int64(8)).Return(&customer.Profile{ID: 8, Tier: customer.TierNew}, nil)
	profiles.EXPECT().UpdateProfile(gomock.Any(), gomock.Any()).Return(nil)

	completed, err := s.Run(context.Background(), asOf, customer.DefaultHierarchy())
	require.NoError(t, err)
	assert.Equal(t, 1, completed)
}

func TestSweeper_Run_AlreadyCompletedIsNotCounted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reservations := sweeper.NewMockReservations(ctrl)
	profiles := sweeper.NewMockProfiles(ctrl)
	s := sweeper.New(reservations, profiles, discardLogger())

	asOf := time.Date(2022, 12, 20, 0, 0, 0, 0, time.UTC)
	due := []*booking.Reservation{{ID: 1, CustomerProfileID: 7}}

	reservations.EXPECT().ListSweepable(gomock.Any(), asOf).Return(due, nil)

	// A concurrent sweep finished this one first: no profile advance here.
	reservations.EXPECT().CompleteReservation(gomock.Any(), int64(1)).Return(false, nil)

	completed, err := s.Run(context.Background(), asOf, customer.DefaultHierarchy())
	require.NoError(t, err)
	assert.Zero(t, completed)
}

func TestSweeper_Run_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reservations := sweeper.NewMockReservations(ctrl)
	profiles := sweeper.NewMockProfiles(ctrl)
	s := sweeper.New(reservations, profiles, discardLogger())

	asOf := time.Date(2022, 12, 20, 0, 0, 0, 0, time.UTC)
	reservations.EXPECT().ListSweepable(gomock.Any(), asOf).Return(nil, errors.New("db down"))

	completed, err := s.Run(context.Background(), asOf, customer.DefaultHierarchy())
	assert.Error(t, err)
	assert.Zero(t, completed)
}

func TestSweeper_Run_ProfileFailureSkipsCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reservations := sweeper.NewMockReservations(ctrl)
	profiles := sweeper.NewMockProfiles(ctrl)
	s := sweeper.New(reservations, profiles, discardLogger())

	asOf := time.Date(2022, 12, 20, 0, 0, 0, 0, time.UTC)
	due := []*booking.Reservation{{ID: 1, CustomerProfileID: 7}}

	reservations.EXPECT().ListSweepable(gomock.Any(), asOf).Return(due, nil)
	reservations.EXPECT().CompleteReservation(gomock.Any(), int64(1)).Return(true, nil)
	profiles.EXPECT().GetProfile(gomock.Any(), int64(7)).Return(nil, customer.ErrNotFound)

	completed, err := s.Run(context.Background(), asOf, customer.DefaultHierarchy())
	require.NoError(t, err)
	assert.Zero(t, completed)
}
