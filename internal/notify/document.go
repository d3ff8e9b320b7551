package notify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/filski95/web-app-challets/internal/booking"
)

// FileDocuments writes a plain-text confirmation artifact per reservation
// status change. It satisfies the booking.DocumentGenerator contract; a PDF
// renderer can replace it without touching the booking layer.
type FileDocuments struct {
	dir string
}

func NewFileDocuments(dir string) *FileDocuments {
	return &FileDocuments{dir: dir}
}

func (d *FileDocuments) WriteConfirmation(_ context.Context, r *booking.Reservation) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("creating confirmations directory: %w", err)
	}

	name := r.Number
	if name == "" {
		name = fmt.Sprintf("reservation-%d", r.ID)
	}

	stay := "cancelled"
	if r.StartDate != nil && r.EndDate != nil {
		stay = fmt.Sprintf("%s to %s", r.StartDate.Format(time.DateOnly), r.EndDate.Format(time.DateOnly))
	}

	content := fmt.Sprintf(
		"Reservation %s\nHouse: %d\nStatus: %s\nStay: %s\nNights: %d\nTotal: %d\n",
		name, r.HouseNumber, r.Status, stay, r.Nights, r.TotalPrice,
	)

	path := filepath.Join(d.dir, name+".txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing confirmation: %w", err)
	}

	return nil
}
