package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/filski95/web-app-challets/internal/booking"
)

func TestDerive(t *testing.T) {
	type testCase struct {
		name         string
		start        *time.Time
		end          *time.Time
		priceNight   int
		cancellation bool
		wantNights   int
		wantTotal    int
		wantErr      error
	}

	tests := []testCase{
		{
			name:       "FiveNights",
			start:      datePtr(2022, 10, 10),
			end:        datePtr(2022, 10, 15),
			priceNight: 200,
			wantNights: 5,
			wantTotal:  1000,
		},
		{
			name:       "OneNight",
			start:      datePtr(2022, 10, 10),
			end:        datePtr(2022, 10, 11),
			priceNight: 350,
			wantNights: 1,
			wantTotal:  350,
		},
		{
			name:         "CancellationZeroesEverything",
			start:        nil,
			end:          nil,
			priceNight:   200,
			cancellation: true,
			wantNights:   0,
			wantTotal:    0,
		},
		{
			name:         "CancellationIgnoresDates",
			start:        datePtr(2022, 10, 10),
			end:          datePtr(2022, 10, 15),
			priceNight:   200,
			cancellation: true,
			wantNights:   0,
			wantTotal:    0,
		},
		{
			name:    "NilDatesWithoutCancellation",
			start:   nil,
			end:     nil,
			wantErr: booking.ErrPriceInvariant,
		},
		{
			name:    "NilEndWithoutCancellation",
			start:   datePtr(2022, 10, 10),
			end:     nil,
			wantErr: booking.ErrPriceInvariant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nights, total, err := booking.Derive(tt.start, tt.end, tt.priceNight, tt.cancellation)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantNights, nights)
			assert.Equal(t, tt.wantTotal, total)
		})
	}
}
