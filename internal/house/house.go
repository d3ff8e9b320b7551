package house

import "errors"

// MaxNumber caps the inventory: the site operates three challet houses.
const MaxNumber = 3

var (
	ErrNotFound = errors.New("house not found")

	// ErrNumber rejects house numbers outside 1..MaxNumber.
	ErrNumber = errors.New("house number out of range")
)

// House is a single challet. The number doubles as its identifier; only the
// nightly price may change after creation.
type House struct {
	Number     int
	PriceNight int
}
