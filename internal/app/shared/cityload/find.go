package cityload

import (
	"context"
	"errors"

	"citygrid/internal/app/ports"
	"citygrid/internal/domain/city"
)

// Find resolves a city by owner and optional name. Requests for the default
// city name fall back to the owner's first city, which keeps old clients
// working after a rename.
func Find(ctx context.Context, repo ports.CityRepository, owner, cityName string) (city.State, error) {
	if cityName == "" {
		return repo.GetFirstByOwner(ctx, owner)
	}

	s, err := repo.GetByOwnerAndName(ctx, owner, cityName)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return city.State{}, err
	}
	if cityName == city.DefaultCityName {
		return repo.GetFirstByOwner(ctx, owner)
	}
	return city.State{}, ports.ErrNotFound
}
