package booking

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/filski95/web-app-challets/internal/booking"
	"github.com/filski95/web-app-challets/internal/customer"
	"github.com/filski95/web-app-challets/internal/http/middleware"
)

type Handler struct {
	svc      *booking.Service
	profiles *customer.Service
}

func NewHandler(svc *booking.Service, profiles *customer.Service) *Handler {
	return &Handler{svc: svc, profiles: profiles}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/status", h.updateStatus)
}

// AvailabilityRoutes hangs the availability lookup off the houses subtree.
func (h *Handler) AvailabilityRoutes(r chi.Router) {
	r.Get("/{number}/availability", h.availability)
}

func (h *Handler) availability(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		http.Error(w, "invalid house number", http.StatusBadRequest)
		return
	}

	days, err := h.svc.CheckAvailability(r.Context(), number, time.Now().UTC())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	taken := make([]string, len(days))
	for i, d := range days {
		taken[i] = d.Format(time.DateOnly)
	}

	writeJSON(w, http.StatusOK, map[string]any{"house": number, "taken_days": taken})
}

type createReservationRequest struct {
	HouseNumber int    `json:"house_number"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`

	// Admins may book on behalf of a customer profile.
	CustomerProfileID *int64 `json:"customer_profile_id,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		http.Error(w, "invalid start_date", http.StatusBadRequest)
		return
	}

	end, err := time.Parse(time.DateOnly, req.EndDate)
	if err != nil {
		http.Error(w, "invalid end_date", http.StatusBadRequest)
		return
	}

	params := booking.ReserveParams{
		OwnerID:     id.OwnerID,
		HouseNumber: req.HouseNumber,
		StartDate:   start,
		EndDate:     end,
	}

	switch {
	case req.CustomerProfileID != nil && id.Admin:
		params.CustomerProfileID = *req.CustomerProfileID
	default:
		profile, err := h.profiles.GetByOwner(r.Context(), id.OwnerID)
		if err != nil {
			http.Error(w, "customer profile not found", http.StatusNotFound)
			return
		}

		params.CustomerProfileID = profile.ID
	}

	res, err := h.svc.Reserve(r.Context(), params, time.Now().UTC())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(res, id.Admin))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	filter := booking.ListFilter{}

	if !id.Admin {
		owner := id.OwnerID
		filter.OwnerID = &owner
	}

	if s := r.URL.Query().Get("status"); s != "" {
		code, err := strconv.Atoi(s)
		if err != nil || !booking.Status(code).Valid() {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}

		filter.Status = new(booking.Status(code))
	}

	if s := r.URL.Query().Get("house"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			filter.HouseNumber = new(n)
		}
	}

	// past=true narrows to stays already over.
	if r.URL.Query().Get("past") == "true" {
		filter.EndedBy = new(time.Now().UTC())
	}

	reservations, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(reservations, id.Admin))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	resID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	res, err := h.svc.Get(r.Context(), resID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if !id.Admin && res.OwnerID != id.OwnerID {
		http.Error(w, "reservation not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(res, id.Admin))
}

type updateStatusRequest struct {
	Status int `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	resID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !id.Admin {
		res, err := h.svc.Get(r.Context(), resID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		if res.OwnerID != id.OwnerID {
			http.Error(w, "reservation not found", http.StatusNotFound)
			return
		}
	}

	res, err := h.svc.Transition(r.Context(), resID, booking.Status(req.Status))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(res, id.Admin))
}

// writeDomainError maps booking errors onto the status codes external
// consumers already match on.
func writeDomainError(w http.ResponseWriter, err error) {
	var notAvailable *booking.DatesNotAvailableError
	if errors.As(err, &notAvailable) {
		days := make([]string, len(notAvailable.Days))
		for i, d := range notAvailable.Days {
			days[i] = d.Format(time.DateOnly)
		}

		writeJSON(w, http.StatusNotAcceptable, map[string]any{
			"error": notAvailable.Error(),
			"days":  days,
		})

		return
	}

	var illegal *booking.IllegalTransitionError
	if errors.As(err, &illegal) {
		writeJSON(w, http.StatusConflict, map[string]any{"error": illegal.Error()})
		return
	}

	switch {
	case errors.Is(err, booking.ErrInvalidRange):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": err.Error()})
	case errors.Is(err, booking.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
