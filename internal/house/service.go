package house

import (
	"context"
	"fmt"
)

type Repository interface {
	CreateHouse(ctx context.Context, h *House) error
	GetHouse(ctx context.Context, number int) (*House, error)
	ListHouses(ctx context.Context) ([]*House, error)
	UpdatePrice(ctx context.Context, number, priceNight int) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, number, priceNight int) (*House, error) {
	if number < 1 || number > MaxNumber {
		return nil, fmt.Errorf("%w: %d (allowed 1..%d)", ErrNumber, number, MaxNumber)
	}

	h := &House{Number: number, PriceNight: priceNight}
	if err := s.repo.CreateHouse(ctx, h); err != nil {
		return nil, err
	}

	return h, nil
}

func (s *Service) Get(ctx context.Context, number int) (*House, error) {
	return s.repo.GetHouse(ctx, number)
}

func (s *Service) List(ctx context.Context) ([]*House, error) {
	return s.repo.ListHouses(ctx)
}

func (s *Service) UpdatePrice(ctx context.Context, number, priceNight int) error {
	return s.repo.UpdatePrice(ctx, number, priceNight)
}
