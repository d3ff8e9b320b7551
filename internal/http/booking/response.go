package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/filski95/web-app-challets/internal/booking"
)

type reservationResponse struct {
	ID          int64      `json:"id"`
	Number      string     `json:"reservation_number,omitempty"`
	HouseNumber int        `json:"house_number"`
	Status      int        `json:"status"`
	StartDate   *string    `json:"start_date"`
	EndDate     *string    `json:"end_date"`
	Nights      int        `json:"nights"`
	TotalPrice  int        `json:"total_price"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`

	// Admin-only fields; owners see their reservation without the internal
	// references.
	CustomerProfileID *int64     `json:"customer_profile_id,omitempty"`
	OwnerID           *uuid.UUID `json:"reservation_owner_id,omitempty"`
}

func toResponse(r *booking.Reservation, admin bool) reservationResponse {
	resp := reservationResponse{
		ID:          r.ID,
		Number:      r.Number,
		HouseNumber: r.HouseNumber,
		Status:      int(r.Status),
		StartDate:   dateString(r.StartDate),
		EndDate:     dateString(r.EndDate),
		Nights:      r.Nights,
		TotalPrice:  r.TotalPrice,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}

	if admin {
		profileID, ownerID := r.CustomerProfileID, r.OwnerID
		resp.CustomerProfileID = &profileID
		resp.OwnerID = &ownerID
	}

	return resp
}

func toResponseList(rs []*booking.Reservation, admin bool) []reservationResponse {
	resp := make([]reservationResponse, len(rs))
	for i, r := range rs {
		resp[i] = toResponse(r, admin)
	}

	return resp
}

func dateString(t *time.Time) *string {
	if t == nil {
		return nil
	}

	s := t.Format(time.DateOnly)

	return &s
}
