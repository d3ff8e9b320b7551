package importer

import (
	"fmt"
	"io"

	"github.com/filski95/web-app-challets/internal/booking"
	"github.com/filski95/web-app-challets/internal/importer/phonelog"
)

type Service struct {
	phoneImporter Importer
}

func NewService() *Service {
	return &Service{
		phoneImporter: phonelog.New(),
	}
}

func (s *Service) Import(source Source, r io.Reader) ([]booking.ReserveParams, error) {
	var imp Importer

	switch source {
	case SourcePhone:
		imp = s.phoneImporter
	default:
		return nil, fmt.Errorf("unknown import source: %s", source)
	}

	return imp.Parse(r)
}
