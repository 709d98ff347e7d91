package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"citygrid/internal/app/ports"
	"citygrid/internal/domain/city"
)

func TestCityRepo_VersionedSave(t *testing.T) {
	store := NewStore()
	repo := NewCityRepo(store)
	ctx := context.Background()

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s := city.NewState("alice", "My City", "slug-1", now)
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("create error: %v", err)
	}
	if err := repo.Create(ctx, s); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("duplicate slug must conflict, got %v", err)
	}

	s.Money = 9000
	s.Version = 2
	if err := repo.SaveWithVersion(ctx, s, 1); err != nil {
		t.Fatalf("save error: %v", err)
	}
	if err := repo.SaveWithVersion(ctx, s, 1); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("stale version must conflict, got %v", err)
	}

	got, err := repo.GetByOwnerAndName(ctx, "alice", "My City")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if got.Money != 9000 || got.Version != 2 {
		t.Fatalf("got money=%d version=%d", got.Money, got.Version)
	}
}

func TestCityRepo_ListOrderAndFirst(t *testing.T) {
	store := NewStore()
	repo := NewCityRepo(store)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	store.SeedCity(city.NewState("alice", "Second", "slug-b", base.Add(time.Hour)))
	store.SeedCity(city.NewState("alice", "First", "slug-a", base))
	store.SeedCity(city.NewState("bob", "Other", "slug-c", base))

	list, err := repo.ListByOwner(ctx, "alice")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(list) != 2 || list[0].CityName != "First" || list[1].CityName != "Second" {
		t.Fatalf("list = %+v", list)
	}

	first, err := repo.GetFirstByOwner(ctx, "alice")
	if err != nil {
		t.Fatalf("first error: %v", err)
	}
	if first.CityName != "First" {
		t.Fatalf("first = %q", first.CityName)
	}

	n, err := repo.CountByOwner(ctx, "alice")
	if err != nil || n != 2 {
		t.Fatalf("count = %d, err = %v", n, err)
	}
}

func TestCityRepo_Delete(t *testing.T) {
	store := NewStore()
	repo := NewCityRepo(store)
	ctx := context.Background()

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	store.SeedCity(city.NewState("alice", "My City", "slug-1", now))

	if err := repo.Delete(ctx, "bob", "slug-1"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("foreign delete must be not found, got %v", err)
	}
	if err := repo.Delete(ctx, "alice", "slug-1"); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if _, err := repo.GetFirstByOwner(ctx, "alice"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
