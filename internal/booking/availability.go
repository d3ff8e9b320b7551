package booking

import "time"

// day truncates t to midnight UTC so reservations loaded from different
// sources compare equal on the calendar day.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// stayDays expands [start, end) into its calendar days. The departure day is
// excluded: the house frees up on checkout morning.
func stayDays(start, end time.Time) []time.Time {
	start, end = day(start), day(end)

	var days []time.Time
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}

	return days
}

// OccupiedDays returns the days taken by active reservations, in reservation
// start-date order, restricted to days on or after asOf. Reservations must
// already be ordered by start date and must carry non-nil dates.
func OccupiedDays(reservations []*Reservation, asOf time.Time) []time.Time {
	cutoff := day(asOf)

	var taken []time.Time

	for _, r := range reservations {
		if !r.Active() || r.StartDate == nil || r.EndDate == nil {
			continue
		}

		for _, d := range stayDays(*r.StartDate, *r.EndDate) {
			if d.Before(cutoff) {
				continue
			}

			taken = append(taken, d)
		}
	}

	return taken
}

// ValidateRange decides whether a candidate stay [start, end) may be booked
// against the given occupied days.
//
// The departure day of an existing stay may coincide with the candidate's
// start (same-day turnover). A one-night candidate conflicts only if its
// single night is itself taken.
func ValidateRange(start, end, asOf time.Time, occupied []time.Time) error {
	start, end = day(start), day(end)

	if !start.Before(end) {
		return &rangeError{msg: "end date must be later than start date"}
	}

	if start.Before(day(asOf)) {
		return &rangeError{msg: "stay cannot begin in the past"}
	}

	if len(occupied) == 0 {
		return nil
	}

	if end.Sub(start) == 24*time.Hour {
		if containsDay(occupied, start) {
			return &DatesNotAvailableError{Days: stayDays(start, end)}
		}

		return nil
	}

	// Entirely before the first taken day or strictly after the last one.
	if end.Before(occupied[0]) || start.After(occupied[len(occupied)-1]) {
		return nil
	}

	// Within the occupied span the candidate fits only when its first two
	// days and its departure day are all free. A stay starting on a taken
	// departure day still passes, that day is never in the occupied set.
	if containsDay(occupied, start) || containsDay(occupied, start.AddDate(0, 0, 1)) || containsDay(occupied, end) {
		return &DatesNotAvailableError{Days: stayDays(start, end)}
	}

	return nil
}

func containsDay(days []time.Time, want time.Time) bool {
	for _, d := range days {
		if d.Equal(want) {
			return true
		}
	}

	return false
}

// rangeError wraps ErrInvalidRange with the specific rule that failed.
type rangeError struct {
	msg string
}

func (e *rangeError) Error() string { return ErrInvalidRange.Error() + ": " + e.msg }
func (e *rangeError) Unwrap() error { return ErrInvalidRange }
