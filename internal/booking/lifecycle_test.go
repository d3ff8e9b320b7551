package booking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filski95/web-app-challets/internal/booking"
)

func TestApplyTransition(t *testing.T) {
	type testCase struct {
		name       string
		current    booking.Status
		requested  booking.Status
		wantStatus booking.Status
		wantReason string
	}

	tests := []testCase{
		{
			name:       "ConfirmNotConfirmed",
			current:    booking.StatusNotConfirmed,
			requested:  booking.StatusConfirmed,
			wantStatus: booking.StatusConfirmed,
		},
		{
			name:       "CancelNotConfirmed",
			current:    booking.StatusNotConfirmed,
			requested:  booking.StatusCancelled,
			wantStatus: booking.StatusCancelled,
		},
		{
			name:       "CancelConfirmed",
			current:    booking.StatusConfirmed,
			requested:  booking.StatusCancelled,
			wantStatus: booking.StatusCancelled,
		},
		{
			name:       "RevertConfirmed",
			current:    booking.StatusConfirmed,
			requested:  booking.StatusNotConfirmed,
			wantReason: "cannot revert a confirmed reservation to not-confirmed; cancel instead",
		},
		{
			name:       "CancelledIsTerminal",
			current:    booking.StatusCancelled,
			requested:  booking.StatusConfirmed,
			wantReason: "cancellation cannot be reverted",
		},
		{
			name:       "CompletedIsTerminal",
			current:    booking.StatusCompleted,
			requested:  booking.StatusCancelled,
			wantReason: "a completed reservation cannot change",
		},
		{
			name:       "CompleteByRequest",
			current:    booking.StatusConfirmed,
			requested:  booking.StatusCompleted,
			wantReason: "completion is applied by the end-of-stay sweep",
		},
		{
			name:       "UnknownStatus",
			current:    booking.StatusNotConfirmed,
			requested:  booking.Status(42),
			wantReason: "unknown status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &booking.Reservation{
				Status:     tt.current,
				StartDate:  datePtr(2022, 10, 10),
				EndDate:    datePtr(2022, 10, 15),
				Nights:     5,
				TotalPrice: 1000,
			}

			err := booking.ApplyTransition(r, tt.requested)

			if tt.wantReason != "" {
				var illegal *booking.IllegalTransitionError
				require.ErrorAs(t, err, &illegal)
				assert.Equal(t, tt.current, illegal.From)
				assert.Equal(t, tt.requested, illegal.To)
				assert.Equal(t, tt.wantReason, illegal.Reason)
				assert.Equal(t, tt.current, r.Status)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, r.Status)
		})
	}
}

func TestApplyTransition_CancelClearsStay(t *testing.T) {
	for _, from := range []booking.Status{booking.StatusNotConfirmed, booking.StatusConfirmed} {
		t.Run(from.String(), func(t *testing.T) {
			r := &booking.Reservation{
				Status:     from,
				StartDate:  datePtr(2022, 10, 10),
				EndDate:    datePtr(2022, 10, 15),
				Nights:     5,
				TotalPrice: 1000,
			}

			require.NoError(t, booking.ApplyTransition(r, booking.StatusCancelled))

			assert.Equal(t, booking.StatusCancelled, r.Status)
			assert.Nil(t, r.StartDate)
			assert.Nil(t, r.EndDate)
			assert.Zero(t, r.Nights)
			assert.Zero(t, r.TotalPrice)
		})
	}
}

func TestApplyTransition_ConfirmKeepsStay(t *testing.T) {
	r := &booking.Reservation{
		Status:     booking.StatusNotConfirmed,
		StartDate:  datePtr(2022, 10, 10),
		EndDate:    datePtr(2022, 10, 15),
		Nights:     5,
		TotalPrice: 1000,
	}

	require.NoError(t, booking.ApplyTransition(r, booking.StatusConfirmed))

	assert.NotNil(t, r.StartDate)
	assert.NotNil(t, r.EndDate)
	assert.Equal(t, 5, r.Nights)
	assert.Equal(t, 1000, r.TotalPrice)
}
