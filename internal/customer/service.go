package customer

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateProfile(ctx context.Context, p *Profile) error
	GetProfile(ctx context.Context, id int64) (*Profile, error)
	GetProfileByOwner(ctx context.Context, ownerID uuid.UUID) (*Profile, error)
	UpdateProfile(ctx context.Context, p *Profile) error
	ListProfiles(ctx context.Context) ([]*Profile, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	OwnerID   uuid.UUID
	FirstName string
	Surname   string
	Email     string
}

// Create registers the profile that accompanies a newly provisioned account.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Profile, error) {
	p := &Profile{
		OwnerID:   params.OwnerID,
		FirstName: params.FirstName,
		Surname:   params.Surname,
		Email:     params.Email,
		Tier:      TierNew,
	}
	if err := s.repo.CreateProfile(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Profile, error) {
	return s.repo.GetProfile(ctx, id)
}

func (s *Service) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*Profile, error) {
	return s.repo.GetProfileByOwner(ctx, ownerID)
}

func (s *Service) List(ctx context.Context) ([]*Profile, error) {
	return s.repo.ListProfiles(ctx)
}
