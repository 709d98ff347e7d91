package cities

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"citygrid/internal/app/ports"
	"citygrid/internal/domain/city"
)

var (
	ErrInvalidRequest = errors.New("invalid city management request")
	ErrNotOwner       = errors.New("only the owner may manage cities")
	ErrNameTaken      = errors.New("a city with that name already exists")
	ErrCityLimit      = errors.New("city limit reached")
)

// UseCase manages the owner's city roster. A city is addressed by slug once
// created; names are only unique per owner.
type UseCase struct {
	TxManager ports.TxManager
	Cities    ports.CityRepository
	Now       func() time.Time
	NewSlug   func() string
}

func (u UseCase) List(ctx context.Context, req ListRequest) (ListResponse, error) {
	owner := strings.TrimSpace(req.Owner)
	if owner == "" {
		return ListResponse{}, ErrInvalidRequest
	}

	states, err := u.Cities.ListByOwner(ctx, owner)
	if err != nil {
		return ListResponse{}, err
	}

	out := ListResponse{Cities: make([]Summary, 0, len(states))}
	for _, s := range states {
		out.Cities = append(out.Cities, summarize(s))
	}
	return out, nil
}

func (u UseCase) Create(ctx context.Context, req CreateRequest) (CreateResponse, error) {
	req.Identity = strings.TrimSpace(req.Identity)
	req.Owner = strings.TrimSpace(req.Owner)
	req.CityName = strings.TrimSpace(req.CityName)
	if req.Owner == "" || req.CityName == "" {
		return CreateResponse{}, ErrInvalidRequest
	}
	if req.Identity != req.Owner {
		return CreateResponse{}, ErrNotOwner
	}

	var gridData string
	if req.TemplateGrid != nil {
		g, err := city.GridFromRows(req.TemplateGrid)
		if err != nil {
			return CreateResponse{}, err
		}
		gridData = g.Encode()
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	slugFn := u.NewSlug
	if slugFn == nil {
		slugFn = uuid.NewString
	}

	var out CreateResponse
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		count, err := u.Cities.CountByOwner(txCtx, req.Owner)
		if err != nil {
			return err
		}
		if count >= city.MaxCitiesPerOwner {
			return ErrCityLimit
		}
		if _, err := u.Cities.GetByOwnerAndName(txCtx, req.Owner, req.CityName); err == nil {
			return ErrNameTaken
		} else if !errors.Is(err, ports.ErrNotFound) {
			return err
		}

		now := nowFn()
		var state city.State
		if gridData != "" {
			state = city.NewStateWithGrid(req.Owner, req.CityName, slugFn(), gridData, req.TemplateName, now)
		} else {
			state = city.NewState(req.Owner, req.CityName, slugFn(), now)
		}
		state.ConsecutiveLoginDays = 1

		if err := u.Cities.Create(txCtx, state); err != nil {
			return err
		}
		out = CreateResponse{Summary: summarize(state)}
		return nil
	})
	if err != nil {
		return CreateResponse{}, err
	}
	return out, nil
}

func (u UseCase) Delete(ctx context.Context, req DeleteRequest) error {
	req.Identity = strings.TrimSpace(req.Identity)
	req.Owner = strings.TrimSpace(req.Owner)
	req.Slug = strings.TrimSpace(req.Slug)
	if req.Owner == "" || req.Slug == "" {
		return ErrInvalidRequest
	}
	if req.Identity != req.Owner {
		return ErrNotOwner
	}
	return u.Cities.Delete(ctx, req.Owner, req.Slug)
}

func summarize(s city.State) Summary {
	return Summary{
		CityName:     s.CityName,
		Slug:         s.Slug,
		TemplateName: s.TemplateName,
		Population:   s.Population,
		Money:        s.Money,
		UpdatedAt:    s.UpdatedAt,
	}
}
