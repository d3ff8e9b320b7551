package booking

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a reservation. The numeric codes are part
// of the persisted and exposed contract and must not be renumbered.
type Status int

const (
	StatusNotConfirmed Status = 0
	StatusConfirmed    Status = 1
	StatusCancelled    Status = 9
	StatusCompleted    Status = 99
)

func (s Status) String() string {
	switch s {
	case StatusNotConfirmed:
		return "not confirmed"
	case StatusConfirmed:
		return "confirmed"
	case StatusCancelled:
		return "cancelled"
	case StatusCompleted:
		return "completed"
	}

	return "unknown"
}

// Valid reports whether s is one of the known status codes.
func (s Status) Valid() bool {
	switch s {
	case StatusNotConfirmed, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}

	return false
}

// Terminal reports whether no further user transition is possible from s.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Reservation represents a stay in one of the challet houses.
// Dates are calendar days (midnight UTC); EndDate is the departure day and is
// not part of the stay. Both dates are nil once a reservation is cancelled.
type Reservation struct {
	ID                int64
	Number            string // assigned after creation, empty until then
	CustomerProfileID int64
	OwnerID           uuid.UUID
	HouseNumber       int
	Status            Status
	StartDate         *time.Time
	EndDate           *time.Time
	Nights            int
	TotalPrice        int
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

// Active reports whether the reservation still occupies its date range.
func (r *Reservation) Active() bool {
	return r.Status != StatusCancelled
}
