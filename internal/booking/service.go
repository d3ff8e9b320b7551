package booking

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/filski95/web-app-challets/internal/customer"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=booking
type Repository interface {
	GetReservation(ctx context.Context, id int64) (*Reservation, error)
	ListReservations(ctx context.Context, filter ListFilter) ([]*Reservation, error)
	ListActiveByHouse(ctx context.Context, houseNumber int) ([]*Reservation, error)
	UpdateReservation(ctx context.Context, r *Reservation) error

	// AssignNumber persists the reservation number exactly once; it reports
	// false when a number is already present.
	AssignNumber(ctx context.Context, id int64, number string) (bool, error)

	GetHousePrice(ctx context.Context, houseNumber int) (int, error)

	// BeginHold opens a transaction holding the house's booking lock, so no
	// concurrent creator can pass validation against a stale snapshot.
	BeginHold(ctx context.Context, houseNumber int) (Hold, error)
}

// Hold is a per-house critical section spanning validate and insert.
type Hold interface {
	ListActive(ctx context.Context) ([]*Reservation, error)
	Create(ctx context.Context, r *Reservation) error
	Commit() error
	Rollback() error
}

// Profiles resolves the customer data carried on notification events.
type Profiles interface {
	GetProfile(ctx context.Context, id int64) (*customer.Profile, error)
}

// CreatedEvent is handed to the notification sender after a reservation has
// been persisted and numbered.
type CreatedEvent struct {
	Number     string
	FirstName  string
	Surname    string
	Email      string
	StartDate  time.Time
	EndDate    time.Time
	TotalPrice int
}

type Notifier interface {
	ReservationCreated(ctx context.Context, ev CreatedEvent) error
}

// DocumentGenerator produces the confirmation artifact after a status change.
type DocumentGenerator interface {
	WriteConfirmation(ctx context.Context, r *Reservation) error
}

type Service struct {
	repo     Repository
	profiles Profiles
	notifier Notifier
	docs     DocumentGenerator
}

func NewService(repo Repository, profiles Profiles, notifier Notifier, docs DocumentGenerator) *Service {
	return &Service{repo: repo, profiles: profiles, notifier: notifier, docs: docs}
}

type ListFilter struct {
	Status      *Status
	OwnerID     *uuid.UUID
	HouseNumber *int
	// EndedBy keeps the list to stays departing on or before the date.
	EndedBy *time.Time
}

// CheckAvailability returns the occupied days of a house from asOf onwards,
// in reservation start-date order. The index is rebuilt from the committed
// reservation set on every call.
func (s *Service) CheckAvailability(ctx context.Context, houseNumber int, asOf time.Time) ([]time.Time, error) {
	reservations, err := s.repo.ListActiveByHouse(ctx, houseNumber)
	if err != nil {
		return nil, fmt.Errorf("listing active reservations: %w", err)
	}

	return OccupiedDays(reservations, asOf), nil
}

type ReserveParams struct {
	CustomerProfileID int64
	OwnerID           uuid.UUID
	HouseNumber       int
	StartDate         time.Time
	EndDate           time.Time
}

// Reserve validates the candidate range under the house's booking lock,
// persists the reservation, assigns its number and fires the creation
// notification. The stay starts out not confirmed.
func (s *Service) Reserve(ctx context.Context, params ReserveParams, asOf time.Time) (*Reservation, error) {
	priceNight, err := s.repo.GetHousePrice(ctx, params.HouseNumber)
	if err != nil {
		return nil, fmt.Errorf("looking up house price: %w", err)
	}

	hold, err := s.repo.BeginHold(ctx, params.HouseNumber)
	if err != nil {
		return nil, fmt.Errorf("acquiring house hold: %w", err)
	}
	defer hold.Rollback()

	active, err := hold.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing active reservations: %w", err)
	}

	if err := ValidateRange(params.StartDate, params.EndDate, asOf, OccupiedDays(active, asOf)); err != nil {
		return nil, err
	}

	start, end := day(params.StartDate), day(params.EndDate)

	nights, total, err := Derive(&start, &end, priceNight, false)
	if err != nil {
		return nil, err
	}

	r := &Reservation{
		CustomerProfileID: params.CustomerProfileID,
		OwnerID:           params.OwnerID,
		HouseNumber:       params.HouseNumber,
		Status:            StatusNotConfirmed,
		StartDate:         &start,
		EndDate:           &end,
		Nights:            nights,
		TotalPrice:        total,
	}

	if err := hold.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("creating reservation: %w", err)
	}

	if err := hold.Commit(); err != nil {
		return nil, fmt.Errorf("committing reservation: %w", err)
	}

	if err := s.assignNumberAndNotify(ctx, r, asOf); err != nil {
		return nil, err
	}

	return r, nil
}

// assignNumberAndNotify runs the second phase of creation: the number update
// and the outbound notification. Assignment is a no-op when a number exists
// already, which also suppresses a duplicate notification.
func (s *Service) assignNumberAndNotify(ctx context.Context, r *Reservation, asOf time.Time) error {
	number := asOf.Format("20060102") + strconv.FormatInt(r.ID, 10)

	assigned, err := s.repo.AssignNumber(ctx, r.ID, number)
	if err != nil {
		return fmt.Errorf("assigning reservation number: %w", err)
	}

	if !assigned {
		return nil
	}

	r.Number = number

	profile, err := s.profiles.GetProfile(ctx, r.CustomerProfileID)
	if err != nil {
		return fmt.Errorf("loading customer profile: %w", err)
	}

	ev := CreatedEvent{
		Number:     r.Number,
		FirstName:  profile.FirstName,
		Surname:    profile.Surname,
		Email:      profile.Email,
		StartDate:  *r.StartDate,
		EndDate:    *r.EndDate,
		TotalPrice: r.TotalPrice,
	}
	if err := s.notifier.ReservationCreated(ctx, ev); err != nil {
		// The reservation stands regardless of notification delivery.
		slog.Error("reservation notification failed", "reservation", r.Number, "error", err)
	}

	return nil
}

// Transition applies a requested status change and persists the result.
// Cancellations clear the stay dates and zero nights and total price.
func (s *Service) Transition(ctx context.Context, id int64, requested Status) (*Reservation, error) {
	r, err := s.repo.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ApplyTransition(r, requested); err != nil {
		return nil, err
	}

	if requested == StatusCancelled {
		nights, total, err := Derive(r.StartDate, r.EndDate, 0, true)
		if err != nil {
			return nil, err
		}

		r.Nights, r.TotalPrice = nights, total
	}

	if err := s.repo.UpdateReservation(ctx, r); err != nil {
		return nil, fmt.Errorf("updating reservation: %w", err)
	}

	if err := s.docs.WriteConfirmation(ctx, r); err != nil {
		slog.Error("confirmation document failed", "reservation", r.Number, "error", err)
	}

	return r, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Reservation, error) {
	return s.repo.GetReservation(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Reservation, error) {
	return s.repo.ListReservations(ctx, filter)
}
