package cityview

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"citygrid/internal/app/ports"
	"citygrid/internal/app/shared/citydto"
	"citygrid/internal/app/shared/cityload"
	"citygrid/internal/domain/city"
)

var ErrInvalidRequest = errors.New("invalid city view request")

// UseCase serves the city snapshot. Viewing your own city is the login
// touchpoint: the first view of a calendar day advances the streak and
// refills action points, and a missing city is created on the spot so a
// fresh account always has something to look at. Foreign cities are
// read-only and never mutate state.
type UseCase struct {
	TxManager ports.TxManager
	Cities    ports.CityRepository
	Stats     city.StatsService
	Now       func() time.Time
	NewSlug   func() string
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.Identity = strings.TrimSpace(req.Identity)
	req.Owner = strings.TrimSpace(req.Owner)
	req.CityName = strings.TrimSpace(req.CityName)
	if req.Owner == "" {
		return Response{}, ErrInvalidRequest
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn()
	isOwner := req.Identity != "" && req.Identity == req.Owner

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		state, err := cityload.Find(txCtx, u.Cities, req.Owner, req.CityName)
		if errors.Is(err, ports.ErrNotFound) && isOwner {
			state, err = u.createDefault(txCtx, req.Owner, req.CityName, now)
		}
		if err != nil {
			return err
		}

		dirty := false
		if isOwner && !city.SameCalendarDay(state.LastLoginAt, now) {
			state.UpdateLoginStreak(now)
			state.ResetDailyActionPoints(now)
			out.DailyReset = true
			dirty = true
		}

		grid := city.ParseStoredGrid(state.GridData)
		stats := u.Stats.Calculate(grid, state.Happiness)

		var offlineEarnings, loginReward int64
		if isOwner {
			offlineEarnings = u.Stats.OfflineEarnings(state, now)
			loginReward = city.LoginReward(state.ConsecutiveLoginDays)
		}

		if dirty {
			state.ApplyStats(stats, now)
			expected := state.Version
			state.Version++
			if err := u.Cities.SaveWithVersion(txCtx, state, expected); err != nil {
				return err
			}
		}

		out.Report = citydto.FromState(state, isOwner, stats, offlineEarnings, loginReward)
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

func (u UseCase) createDefault(ctx context.Context, owner, cityName string, now time.Time) (city.State, error) {
	slugFn := u.NewSlug
	if slugFn == nil {
		slugFn = uuid.NewString
	}
	state := city.NewState(owner, cityName, slugFn(), now)
	state.ConsecutiveLoginDays = 1
	if err := u.Cities.Create(ctx, state); err != nil {
		return city.State{}, err
	}
	return state, nil
}
