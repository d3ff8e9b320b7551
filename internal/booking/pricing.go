package booking

import "time"

// Derive computes the nights and total price of a stay at the given nightly
// rate. Cancellations zero both fields directly instead of subtracting the
// cleared dates from each other.
func Derive(start, end *time.Time, priceNight int, cancellation bool) (nights, total int, err error) {
	if cancellation {
		return 0, 0, nil
	}

	if start == nil || end == nil {
		return 0, 0, ErrPriceInvariant
	}

	nights = int(day(*end).Sub(day(*start)).Hours() / 24)

	return nights, nights * priceNight, nil
}
