package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("reservation not found")

	// ErrInvalidRange covers start >= end and stays beginning in the past.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrPriceInvariant means nights were requested from nil dates outside
	// of a cancellation. That is a caller bug, not a user error.
	ErrPriceInvariant = errors.New("cannot derive nights: dates are not set and cancellation was not requested")
)

// DatesNotAvailableError is returned when a candidate range overlaps an
// existing active reservation. Days lists the candidate days that clashed.
type DatesNotAvailableError struct {
	Days []time.Time
}

func (e *DatesNotAvailableError) Error() string {
	days := make([]string, len(e.Days))
	for i, d := range e.Days {
		days[i] = d.Format(time.DateOnly)
	}

	return fmt.Sprintf("there is already a reservation with at least one day that overlaps with your selection: %s",
		strings.Join(days, ", "))
}

// IllegalTransitionError is returned when a requested status change violates
// the reservation lifecycle.
type IllegalTransitionError struct {
	From   Status
	To     Status
	Reason string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("cannot change reservation from %s to %s: %s", e.From, e.To, e.Reason)
}
