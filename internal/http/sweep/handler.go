package sweep

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/filski95/web-app-challets/internal/customer"
	"github.com/filski95/web-app-challets/internal/sweeper"
)

type Handler struct {
	sweeper   *sweeper.Sweeper
	hierarchy customer.Hierarchy
}

func NewHandler(s *sweeper.Sweeper, hierarchy customer.Hierarchy) *Handler {
	return &Handler{sweeper: s, hierarchy: hierarchy}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.run)
}

type runRequest struct {
	// AsOf overrides the sweep date for manual runs, format 2006-01-02.
	AsOf string `json:"as_of,omitempty"`
}

type runResponse struct {
	Completed int    `json:"completed"`
	AsOf      string `json:"as_of"`
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request) {
	asOf := time.Now().UTC()

	if r.Body != nil && r.ContentLength > 0 {
		var req runRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if req.AsOf != "" {
			parsed, err := time.Parse(time.DateOnly, req.AsOf)
			if err != nil {
				http.Error(w, "invalid as_of", http.StatusBadRequest)
				return
			}

			asOf = parsed
		}
	}

	completed, err := h.sweeper.Run(r.Context(), asOf, h.hierarchy)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(runResponse{
		Completed: completed,
		AsOf:      asOf.Format(time.DateOnly),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
