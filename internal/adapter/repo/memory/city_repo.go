package memory

import (
	"context"
	"sort"

	"citygrid/internal/app/ports"
	"citygrid/internal/domain/city"
)

type CityRepo struct {
	store *Store
}

func NewCityRepo(store *Store) CityRepo {
	return CityRepo{store: store}
}

func (r CityRepo) GetByOwnerAndName(_ context.Context, owner, cityName string) (city.State, error) {
	for _, s := range r.store.cities {
		if s.Owner == owner && s.CityName == cityName {
			return s, nil
		}
	}
	return city.State{}, ports.ErrNotFound
}

func (r CityRepo) GetFirstByOwner(ctx context.Context, owner string) (city.State, error) {
	list, err := r.ListByOwner(ctx, owner)
	if err != nil || len(list) == 0 {
		return city.State{}, ports.ErrNotFound
	}
	return list[0], nil
}

// ListByOwner returns the owner's cities oldest first, matching the
// creation-order listing of the SQL repository.
func (r CityRepo) ListByOwner(_ context.Context, owner string) ([]city.State, error) {
	var out []city.State
	for _, s := range r.store.cities {
		if s.Owner == owner {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Slug < out[j].Slug
	})
	return out, nil
}

func (r CityRepo) CountByOwner(ctx context.Context, owner string) (int, error) {
	list, err := r.ListByOwner(ctx, owner)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

func (r CityRepo) Create(_ context.Context, state city.State) error {
	if _, ok := r.store.cities[state.Slug]; ok {
		return ports.ErrConflict
	}
	r.store.cities[state.Slug] = state
	return nil
}

func (r CityRepo) SaveWithVersion(_ context.Context, state city.State, expectedVersion int64) error {
	current, ok := r.store.cities[state.Slug]
	if !ok {
		return ports.ErrNotFound
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.cities[state.Slug] = state
	return nil
}

func (r CityRepo) Delete(_ context.Context, owner, slug string) error {
	current, ok := r.store.cities[slug]
	if !ok || current.Owner != owner {
		return ports.ErrNotFound
	}
	delete(r.store.cities, slug)
	return nil
}
