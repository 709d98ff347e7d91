package ports

import (
	"context"

	"citygrid/internal/domain/city"
)

// CityRepository owns persistence of city snapshots. The engine only ever
// sees snapshots; transactional discipline lives behind this interface.
type CityRepository interface {
	GetByOwnerAndName(ctx context.Context, owner, cityName string) (city.State, error)
	GetFirstByOwner(ctx context.Context, owner string) (city.State, error)
	ListByOwner(ctx context.Context, owner string) ([]city.State, error)
	CountByOwner(ctx context.Context, owner string) (int, error)
	Create(ctx context.Context, state city.State) error
	SaveWithVersion(ctx context.Context, state city.State, expectedVersion int64) error
	Delete(ctx context.Context, owner, slug string) error
}
