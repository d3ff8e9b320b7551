// Package importcsv exposes the upload endpoint for phone-booking logs.
// Every row goes through the regular reservation path, so imported stays are
// validated, numbered and notified like any other.
package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/filski95/web-app-challets/internal/booking"
	"github.com/filski95/web-app-challets/internal/importer"
)

type Handler struct {
	importSvc  *importer.Service
	bookingSvc *booking.Service
}

func NewHandler(importSvc *importer.Service, bookingSvc *booking.Service) *Handler {
	return &Handler{importSvc: importSvc, bookingSvc: bookingSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importedReservation struct {
	Number      string `json:"reservation_number"`
	HouseNumber int    `json:"house_number"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type rejectedRow struct {
	HouseNumber int    `json:"house_number"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Reason      string `json:"reason"`
}

type importResponse struct {
	Imported []importedReservation `json:"imported"`
	Rejected []rejectedRow         `json:"rejected"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	source := importer.Source(r.FormValue("source"))
	if source == "" {
		source = importer.SourcePhone
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := h.importSvc.Import(source, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	asOf := time.Now().UTC()

	resp := importResponse{
		Imported: []importedReservation{},
		Rejected: []rejectedRow{},
	}

	// A bad row is reported, not fatal: the rest of the log still imports.
	for _, params := range rows {
		res, err := h.bookingSvc.Reserve(r.Context(), params, asOf)
		if err != nil {
			resp.Rejected = append(resp.Rejected, rejectedRow{
				HouseNumber: params.HouseNumber,
				StartDate:   params.StartDate.Format(time.DateOnly),
				EndDate:     params.EndDate.Format(time.DateOnly),
				Reason:      err.Error(),
			})

			continue
		}

		resp.Imported = append(resp.Imported, importedReservation{
			Number:      res.Number,
			HouseNumber: res.HouseNumber,
			StartDate:   res.StartDate.Format(time.DateOnly),
			EndDate:     res.EndDate.Format(time.DateOnly),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
