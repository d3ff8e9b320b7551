package house_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filski95/web-app-challets/internal/house"
)

type fakeRepo struct {
	created []*house.House
}

func (f *fakeRepo) CreateHouse(_ context.Context, h *house.House) error {
	f.created = append(f.created, h)
	return nil
}

func (f *fakeRepo) GetHouse(_ context.Context, number int) (*house.House, error) {
	for _, h := range f.created {
		if h.Number == number {
			return h, nil
		}
	}

	return nil, house.ErrNotFound
}

func (f *fakeRepo) ListHouses(context.Context) ([]*house.House, error) {
	return f.created, nil
}

func (f *fakeRepo) UpdatePrice(_ context.Context, number, priceNight int) error {
	h, err := f.GetHouse(context.Background(), number)
	if err != nil {
		return err
	}

	h.PriceNight = priceNight

	return nil
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name    string
		number  int
		wantErr error
	}

	tests := []testCase{
		{name: "FirstHouse", number: 1},
		{name: "LastHouse", number: house.MaxNumber},
		{name: "Zero", number: 0, wantErr: house.ErrNumber},
		{name: "Negative", number: -1, wantErr: house.ErrNumber},
		{name: "AboveCap", number: house.MaxNumber + 1, wantErr: house.ErrNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			svc := house.NewService(repo)

			got, err := svc.Create(context.Background(), tt.number, 200)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				assert.Empty(t, repo.created)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.number, got.Number)
			assert.Equal(t, 200, got.PriceNight)
		})
	}
}

func TestService_UpdatePrice(t *testing.T) {
	repo := &fakeRepo{}
	svc := house.NewService(repo)

	_, err := svc.Create(context.Background(), 1, 200)
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePrice(context.Background(), 1, 300))

	h, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 300, h.PriceNight)

	assert.ErrorIs(t, svc.UpdatePrice(context.Background(), 2, 300), house.ErrNotFound)
}
