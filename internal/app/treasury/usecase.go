package treasury

import (
	"context"
	"errors"
	"strings"
	"time"

	"citygrid/internal/app/ports"
	"citygrid/internal/app/shared/citydto"
	"citygrid/internal/app/shared/cityload"
	"citygrid/internal/domain/city"
)

var (
	ErrInvalidRequest = errors.New("invalid treasury request")
	ErrNotOwner       = errors.New("only the owner may access the treasury")
)

// UseCase owns the two money-granting operations: banking accrued tax and
// paying the login-streak reward. Both recompute amounts server-side from
// the stored snapshot; the client never names a figure.
type UseCase struct {
	TxManager ports.TxManager
	Cities    ports.CityRepository
	Stats     city.StatsService
	Now       func() time.Time
}

// Collect banks offline earnings plus any unclaimed tax and restarts the
// accrual window. Collecting an empty treasury is a no-op, not an error.
func (u UseCase) Collect(ctx context.Context, req Request) (CollectResponse, error) {
	req, err := u.checkOwner(req)
	if err != nil {
		return CollectResponse{}, err
	}
	now := u.now()

	var out CollectResponse
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		state, err := cityload.Find(txCtx, u.Cities, req.Owner, req.CityName)
		if err != nil {
			return err
		}

		amount := u.Stats.OfflineEarnings(state, now) + state.UnclaimedTax
		state.CollectTax(amount, now)

		expected := state.Version
		state.Version++
		if err := u.Cities.SaveWithVersion(txCtx, state, expected); err != nil {
			return err
		}

		stats := u.Stats.Calculate(city.ParseStoredGrid(state.GridData), state.Happiness)
		out = CollectResponse{
			Report:    citydto.FromState(state, true, stats, 0, city.LoginReward(state.ConsecutiveLoginDays)),
			Collected: amount,
		}
		return nil
	})
	if err != nil {
		return CollectResponse{}, err
	}
	return out, nil
}

// ClaimReward pays the streak reward for the current consecutive-day count.
func (u UseCase) ClaimReward(ctx context.Context, req Request) (RewardResponse, error) {
	req, err := u.checkOwner(req)
	if err != nil {
		return RewardResponse{}, err
	}
	now := u.now()

	var out RewardResponse
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		state, err := cityload.Find(txCtx, u.Cities, req.Owner, req.CityName)
		if err != nil {
			return err
		}

		reward := city.LoginReward(state.ConsecutiveLoginDays)
		state.Money += reward
		state.UpdatedAt = now

		expected := state.Version
		state.Version++
		if err := u.Cities.SaveWithVersion(txCtx, state, expected); err != nil {
			return err
		}

		stats := u.Stats.Calculate(city.ParseStoredGrid(state.GridData), state.Happiness)
		out = RewardResponse{
			Report: citydto.FromState(state, true, stats, u.Stats.OfflineEarnings(state, now), reward),
			Reward: reward,
		}
		return nil
	})
	if err != nil {
		return RewardResponse{}, err
	}
	return out, nil
}

func (u UseCase) checkOwner(req Request) (Request, error) {
	req.Identity = strings.TrimSpace(req.Identity)
	req.Owner = strings.TrimSpace(req.Owner)
	req.CityName = strings.TrimSpace(req.CityName)
	if req.Owner == "" {
		return req, ErrInvalidRequest
	}
	if req.Identity != req.Owner {
		return req, ErrNotOwner
	}
	return req, nil
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}
