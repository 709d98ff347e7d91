package mapupdate

import (
	"context"
	"errors"
	"strings"
	"time"

	"citygrid/internal/app/ports"
	"citygrid/internal/app/shared/citydto"
	"citygrid/internal/app/shared/cityload"
	"citygrid/internal/domain/city"
	"citygrid/internal/tuning"
)

var (
	ErrInvalidRequest     = errors.New("invalid map update request")
	ErrNotOwner           = errors.New("only the owner may modify the map")
	ErrRateLimited        = errors.New("too many map updates")
	ErrLockedCellModified = errors.New("locked cells cannot be modified")
	ErrUnaffordableBuild  = errors.New("insufficient funds for new buildings")
	ErrTooManyChanges     = errors.New("too many cells changed in one update")
	ErrImplausibleMoney   = errors.New("reported money exceeds plausible earnings")
	ErrAnomalousActivity  = errors.New("anomalous activity detected")
)

// UseCase runs the full anti-cheat pipeline over a client map submission.
// The pipeline is ordered cheapest-first: identity and shape checks before
// any storage read, guard checks inside the transaction against the stored
// snapshot. The client-reported balance is validated but the stored balance
// is always recomputed server-side.
type UseCase struct {
	TxManager ports.TxManager
	Cities    ports.CityRepository
	Limiter   ports.RateLimiter
	Metrics   ports.GuardMetrics
	Reporter  ports.AnomalyReporter
	Stats     city.StatsService
	Guard     tuning.Guard
	Now       func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.Identity = strings.TrimSpace(req.Identity)
	req.Owner = strings.TrimSpace(req.Owner)
	req.CityName = strings.TrimSpace(req.CityName)
	if req.Identity == "" || req.Owner == "" || req.Grid == nil {
		return Response{}, u.reject(ErrInvalidRequest)
	}
	if req.Identity != req.Owner {
		return Response{}, u.reject(ErrNotOwner)
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn()

	if u.Limiter != nil && !u.Limiter.Allow(req.Identity, now) {
		return Response{}, u.reject(ErrRateLimited)
	}

	proposed, err := city.GridFromRows(req.Grid)
	if err != nil {
		return Response{}, u.reject(err)
	}

	var out Response
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		state, err := cityload.Find(txCtx, u.Cities, req.Owner, req.CityName)
		if err != nil {
			return err
		}
		stored := city.ParseStoredGrid(state.GridData)

		if _, _, ok := city.LockedCellsPreserved(stored, proposed); !ok {
			return ErrLockedCellModified
		}
		if cost := city.NewBuildCost(stored, proposed); cost > state.Money {
			return ErrUnaffordableBuild
		}
		if changed := city.ChangedCells(stored, proposed); changed > u.Guard.MaxChangedCells {
			return ErrTooManyChanges
		}
		if req.Money > state.Money {
			limit := city.MaxMoneyIncrease(u.Stats.HourlyTaxRate(stored), u.Guard.MoneyFlatAllowance)
			if req.Money-state.Money > limit {
				return ErrImplausibleMoney
			}
		}

		if reason, flagged := city.DetectAnomaly(state, state.HourlyTaxRate, now, u.Guard.AnomalyThresholds()); flagged {
			if u.Metrics != nil {
				u.Metrics.RecordAnomaly(reason)
			}
			if u.Reporter != nil {
				u.Reporter.Anomaly(state.Owner, state.Slug, reason)
			}
			if u.Guard.BlockOnAnomaly {
				return ErrAnomalousActivity
			}
			out.AnomalyReason = reason
		}

		money := city.ServerMoney(state.Money, stored, proposed)
		state.UpdateMap(proposed.Encode(), money, u.Stats.HourlyTaxRate(proposed), req.BuildingsData, req.CameraState, req.GameState, now)

		stats := u.Stats.Calculate(proposed, state.Happiness)
		state.ApplyStats(stats, now)

		expected := state.Version
		state.Version++
		if err := u.Cities.SaveWithVersion(txCtx, state, expected); err != nil {
			return err
		}

		out.Report = citydto.FromState(state, true, stats, 0, 0)
		return nil
	})
	if err != nil {
		return Response{}, u.reject(err)
	}

	if u.Metrics != nil {
		u.Metrics.RecordAccepted()
	}
	return out, nil
}

func (u UseCase) reject(err error) error {
	if u.Metrics == nil {
		return err
	}
	if reason, ok := rejectReason(err); ok {
		u.Metrics.RecordRejected(reason)
	}
	return err
}

// rejectReason tags guard rejections for the metrics surface. Storage errors
// and not-found lookups are failures, not guard outcomes, and stay untagged.
func rejectReason(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request", true
	case errors.Is(err, ErrNotOwner):
		return "not_owner", true
	case errors.Is(err, ErrRateLimited):
		return "rate_limited", true
	case errors.Is(err, city.ErrBadGridSize):
		return "bad_grid", true
	case errors.Is(err, ErrLockedCellModified):
		return "locked_cell", true
	case errors.Is(err, ErrUnaffordableBuild):
		return "unaffordable_build", true
	case errors.Is(err, ErrTooManyChanges):
		return "bulk_change", true
	case errors.Is(err, ErrImplausibleMoney):
		return "money_delta", true
	case errors.Is(err, ErrAnomalousActivity):
		return "anomaly", true
	default:
		return "", false
	}
}
