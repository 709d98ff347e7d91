package treasury

import (
	"context"
	"errors"
	"testing"
	"time"

	"citygrid/internal/app/ports"
	"citygrid/internal/domain/city"
)

type stubTxManager struct{}

func (stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	state city.State
}

func (r *fakeRepo) GetByOwnerAndName(_ context.Context, owner, cityName string) (city.State, error) {
	if r.state.Owner == owner && r.state.CityName == cityName {
		return r.state, nil
	}
	return city.State{}, ports.ErrNotFound
}

func (r *fakeRepo) GetFirstByOwner(_ context.Context, owner string) (city.State, error) {
	if r.state.Owner == owner {
		return r.state, nil
	}
	return city.State{}, ports.ErrNotFound
}

func (r *fakeRepo) ListByOwner(_ context.Context, owner string) ([]city.State, error) {
	return []city.State{r.state}, nil
}

func (r *fakeRepo) CountByOwner(_ context.Context, owner string) (int, error) { return 1, nil }

func (r *fakeRepo) Create(_ context.Context, state city.State) error { return nil }

func (r *fakeRepo) SaveWithVersion(_ context.Context, state city.State, expectedVersion int64) error {
	if r.state.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.state = state
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, owner, slug string) error { return nil }

func fixedNow() time.Time { return time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC) }

func TestCollect_BanksEarningsAndUnclaimedTax(t *testing.T) {
	s := city.NewState("alice", "My City", "slug-1", fixedNow().Add(-3*time.Hour))
	s.HourlyTaxRate = 500
	s.UnclaimedTax = 250
	repo := &fakeRepo{state: s}
	uc := UseCase{TxManager: stubTxManager{}, Cities: repo, Now: fixedNow}

	out, err := uc.Collect(context.Background(), Request{Identity: "alice", Owner: "alice"})
	if err != nil {
		t.Fatalf("collect error: %v", err)
	}
	// 3h at 500/h on neutral happiness is 1500, plus the 250 carried over.
	if out.Collected != 1750 {
		t.Fatalf("collected = %d, want 1750", out.Collected)
	}
	if out.Money != city.SeedMoney+1750 {
		t.Fatalf("money = %d, want %d", out.Money, city.SeedMoney+1750)
	}
	if repo.state.UnclaimedTax != 0 {
		t.Fatalf("unclaimed tax must clear, got %d", repo.state.UnclaimedTax)
	}
	if !repo.state.LastCollectedAt.Equal(fixedNow()) {
		t.Fatalf("accrual window must restart, got %v", repo.state.LastCollectedAt)
	}
	if repo.state.Version != 2 {
		t.Fatalf("version = %d, want 2", repo.state.Version)
	}
}

func TestCollect_EmptyTreasuryIsNoop(t *testing.T) {
	s := city.NewState("alice", "My City", "slug-1", fixedNow())
	repo := &fakeRepo{state: s}
	uc := UseCase{TxManager: stubTxManager{}, Cities: repo, Now: fixedNow}

	out, err := uc.Collect(context.Background(), Request{Identity: "alice", Owner: "alice"})
	if err != nil {
		t.Fatalf("collect error: %v", err)
	}
	if out.Collected != 0 {
		t.Fatalf("collected = %d, want 0", out.Collected)
	}
	if out.Money != city.SeedMoney {
		t.Fatalf("money = %d, want unchanged %d", out.Money, city.SeedMoney)
	}
}

func TestClaimReward_PaysStreakTable(t *testing.T) {
	s := city.NewState("alice", "My City", "slug-1", fixedNow().Add(-time.Hour))
	s.ConsecutiveLoginDays = 7
	repo := &fakeRepo{state: s}
	uc := UseCase{TxManager: stubTxManager{}, Cities: repo, Now: fixedNow}

	out, err := uc.ClaimReward(context.Background(), Request{Identity: "alice", Owner: "alice"})
	if err != nil {
		t.Fatalf("claim error: %v", err)
	}
	if out.Reward != 10000 {
		t.Fatalf("reward = %d, want 10000", out.Reward)
	}
	if out.Money != city.SeedMoney+10000 {
		t.Fatalf("money = %d, want %d", out.Money, city.SeedMoney+10000)
	}
	if repo.state.Version != 2 {
		t.Fatalf("version = %d, want 2", repo.state.Version)
	}
}

func TestTreasury_OwnerGate(t *testing.T) {
	s := city.NewState("alice", "My City", "slug-1", fixedNow())
	repo := &fakeRepo{state: s}
	uc := UseCase{TxManager: stubTxManager{}, Cities: repo, Now: fixedNow}

	if _, err := uc.Collect(context.Background(), Request{Identity: "mallory", Owner: "alice"}); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if _, err := uc.ClaimReward(context.Background(), Request{Identity: "", Owner: "alice"}); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner for anonymous claim, got %v", err)
	}
	if _, err := uc.Collect(context.Background(), Request{Identity: "x", Owner: ""}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if repo.state.Version != 1 {
		t.Fatalf("gated requests must not persist, version=%d", repo.state.Version)
	}
}
