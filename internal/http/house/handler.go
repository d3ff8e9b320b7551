package house

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/filski95/web-app-challets/internal/house"
	"github.com/filski95/web-app-challets/internal/http/middleware"
)

type Handler struct {
	svc *house.Service
}

func NewHandler(svc *house.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{number}", h.get)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Post("/", h.create)
		r.Patch("/{number}/price", h.updatePrice)
	})
}

type houseResponse struct {
	Number     int `json:"house_number"`
	PriceNight int `json:"price_night"`
}

type createHouseRequest struct {
	Number     int `json:"house_number"`
	PriceNight int `json:"price_night"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createHouseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.svc.Create(r.Context(), req.Number, req.PriceNight)
	if err != nil {
		if errors.Is(err, house.ErrNumber) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusCreated, houseResponse{Number: created.Number, PriceNight: created.PriceNight})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	houses, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]houseResponse, len(houses))
	for i, hs := range houses {
		resp[i] = houseResponse{Number: hs.Number, PriceNight: hs.PriceNight}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		http.Error(w, "invalid house number", http.StatusBadRequest)
		return
	}

	hs, err := h.svc.Get(r.Context(), number)
	if err != nil {
		if errors.Is(err, house.ErrNotFound) {
			http.Error(w, "house not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, houseResponse{Number: hs.Number, PriceNight: hs.PriceNight})
}

type updatePriceRequest struct {
	PriceNight int `json:"price_night"`
}

func (h *Handler) updatePrice(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		http.Error(w, "invalid house number", http.StatusBadRequest)
		return
	}

	var req updatePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.UpdatePrice(r.Context(), number, req.PriceNight); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
