package importer

import (
	"io"

	"github.com/filski95/web-app-challets/internal/booking"
)

// Source identifies where a batch of offline reservations came from.
type Source string

const (
	// SourcePhone is the office log of reservations taken by phone.
	SourcePhone Source = "phone"
)

type Importer interface {
	Parse(r io.Reader) ([]booking.ReserveParams, error)
}
