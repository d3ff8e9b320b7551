package booking

// Transition rules, by current status:
//
//	NOT_CONFIRMED -> CONFIRMED, CANCELLED
//	CONFIRMED     -> CANCELLED
//	CANCELLED     -> (terminal)
//	COMPLETED     -> (terminal, reached only through the completion sweep)
//
// Cancelling clears the stay dates and zeroes nights and total price.

// ApplyTransition mutates r according to the requested status, or returns an
// *IllegalTransitionError describing the violated rule.
func ApplyTransition(r *Reservation, requested Status) error {
	if !requested.Valid() {
		return &IllegalTransitionError{From: r.Status, To: requested, Reason: "unknown status"}
	}

	switch {
	case r.Status == StatusCancelled:
		return &IllegalTransitionError{From: r.Status, To: requested, Reason: "cancellation cannot be reverted"}

	case r.Status == StatusCompleted:
		return &IllegalTransitionError{From: r.Status, To: requested, Reason: "a completed reservation cannot change"}

	case requested == StatusCompleted:
		return &IllegalTransitionError{From: r.Status, To: requested, Reason: "completion is applied by the end-of-stay sweep"}

	case r.Status == StatusConfirmed && requested == StatusNotConfirmed:
		return &IllegalTransitionError{
			From: r.Status, To: requested,
			Reason: "cannot revert a confirmed reservation to not-confirmed; cancel instead",
		}
	}

	r.Status = requested

	if requested == StatusCancelled {
		r.StartDate = nil
		r.EndDate = nil
		r.Nights = 0
		r.TotalPrice = 0
	}

	return nil
}
