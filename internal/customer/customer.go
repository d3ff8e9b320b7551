package customer

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("customer profile not found")

// Tier is the loyalty standing of a customer. Stored as the single-letter
// codes the rest of the platform matches on.
type Tier string

const (
	TierNew     Tier = "N"
	TierRegular Tier = "R"
	TierSuper   Tier = "S"
)

// Hierarchy holds the visit-count thresholds driving tier promotion.
type Hierarchy struct {
	New     int // below this many visits a customer stays new
	Regular int // up to this many visits a customer is regular
	Super   int // beyond Regular the customer is super
}

func DefaultHierarchy() Hierarchy {
	return Hierarchy{New: 4, Regular: 10, Super: 11}
}

// Profile tracks a customer across their reservations. OwnerID references the
// account in the external identity service.
type Profile struct {
	ID          int64
	OwnerID     uuid.UUID
	FirstName   string
	Surname     string
	Email       string
	TotalVisits int
	Tier        Tier
	Joined      time.Time
}

// Advance records one completed stay and promotes the tier when a threshold
// is crossed. A super customer never moves.
func (p *Profile) Advance(h Hierarchy) {
	p.TotalVisits++

	if p.Tier == TierSuper {
		return
	}

	switch {
	case p.TotalVisits < h.New:
		// stays new
	case p.TotalVisits <= h.Regular:
		p.Tier = TierRegular
	default:
		p.Tier = TierSuper
	}
}
