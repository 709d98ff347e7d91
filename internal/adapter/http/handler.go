package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"citygrid/internal/app/cities"
	"citygrid/internal/app/cityview"
	"citygrid/internal/app/mapupdate"
	"citygrid/internal/app/ports"
	"citygrid/internal/app/treasury"
	"citygrid/internal/domain/city"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const userIDHeader = "X-User-ID"
const checksumHeader = "X-City-Checksum"

type Handler struct {
	ViewUC     cityview.UseCase
	UpdateUC   mapupdate.UseCase
	TreasuryUC treasury.UseCase
	CitiesUC   cities.UseCase
	KPI        kpiSnapshotProvider

	// Checksummer, when non-nil, stamps owner responses with a keyed
	// digest of the returned grid so clients can detect cache tampering.
	Checksummer *city.Checksummer
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	api := s.Group("/api")
	api.GET("/city/:owner", h.view)
	api.POST("/city/:owner/map", h.updateMap)
	api.POST("/city/:owner/collect", h.collect)
	api.POST("/city/:owner/reward", h.claimReward)

	api.GET("/cities", h.listCities)
	api.POST("/cities", h.createCity)
	api.DELETE("/cities/:slug", h.deleteCity)

	s.GET("/ops/kpi", h.kpi)
}

type updateMapRequest struct {
	Grid          [][]int         `json:"grid"`
	Money         int64           `json:"money"`
	CityName      string          `json:"city_name,omitempty"`
	BuildingsData json.RawMessage `json:"buildings_data,omitempty"`
	CameraState   json.RawMessage `json:"camera_state,omitempty"`
	GameState     json.RawMessage `json:"game_state,omitempty"`
}

type createCityRequest struct {
	CityName     string  `json:"city_name"`
	TemplateName string  `json:"template_name,omitempty"`
	TemplateGrid [][]int `json:"template_grid,omitempty"`
}

func (h Handler) view(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ViewUC.Execute(c, cityview.Request{
		Identity: identityOf(ctx),
		Owner:    string(ctx.Param("owner")),
		CityName: string(ctx.Query("city")),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	h.stampChecksum(ctx, resp.Report.Owner, resp.Report.Grid, resp.Report.Money, resp.Report.IsOwner)
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) updateMap(c context.Context, ctx *app.RequestContext) {
	var body updateMapRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.UpdateUC.Execute(c, mapupdate.Request{
		Identity:      identityOf(ctx),
		Owner:         string(ctx.Param("owner")),
		CityName:      body.CityName,
		Grid:          body.Grid,
		Money:         body.Money,
		BuildingsData: string(body.BuildingsData),
		CameraState:   string(body.CameraState),
		GameState:     string(body.GameState),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	h.stampChecksum(ctx, resp.Report.Owner, resp.Report.Grid, resp.Report.Money, true)
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) collect(c context.Context, ctx *app.RequestContext) {
	resp, err := h.TreasuryUC.Collect(c, treasury.Request{
		Identity: identityOf(ctx),
		Owner:    string(ctx.Param("owner")),
		CityName: string(ctx.Query("city")),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) claimReward(c context.Context, ctx *app.RequestContext) {
	resp, err := h.TreasuryUC.ClaimReward(c, treasury.Request{
		Identity: identityOf(ctx),
		Owner:    string(ctx.Param("owner")),
		CityName: string(ctx.Query("city")),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) listCities(c context.Context, ctx *app.RequestContext) {
	identity := identityOf(ctx)
	owner := string(ctx.Query("owner"))
	if owner == "" {
		owner = identity
	}
	resp, err := h.CitiesUC.List(c, cities.ListRequest{Identity: identity, Owner: owner})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) createCity(c context.Context, ctx *app.RequestContext) {
	var body createCityRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	identity := identityOf(ctx)
	resp, err := h.CitiesUC.Create(c, cities.CreateRequest{
		Identity:     identity,
		Owner:        identity,
		CityName:     body.CityName,
		TemplateName: body.TemplateName,
		TemplateGrid: body.TemplateGrid,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) deleteCity(c context.Context, ctx *app.RequestContext) {
	identity := identityOf(ctx)
	err := h.CitiesUC.Delete(c, cities.DeleteRequest{
		Identity: identity,
		Owner:    identity,
		Slug:     string(ctx.Param("slug")),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.SetStatusCode(consts.StatusNoContent)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func (h Handler) stampChecksum(ctx *app.RequestContext, identity string, grid [][]int, money int64, isOwner bool) {
	if h.Checksummer == nil || !isOwner {
		return
	}
	ctx.Response.Header.Set(checksumHeader, h.Checksummer.Checksum(identity, city.Grid(grid), money))
}

func identityOf(ctx *app.RequestContext) string {
	return strings.TrimSpace(string(ctx.GetHeader(userIDHeader)))
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, mapupdate.ErrRateLimited):
		writeErrorBody(ctx, consts.StatusTooManyRequests, "rate_limited", err.Error())
	case errors.Is(err, mapupdate.ErrNotOwner),
		errors.Is(err, treasury.ErrNotOwner),
		errors.Is(err, cities.ErrNotOwner):
		writeErrorBody(ctx, consts.StatusForbidden, "not_owner", err.Error())
	case errors.Is(err, mapupdate.ErrLockedCellModified):
		writeErrorBody(ctx, consts.StatusUnprocessableEntity, "locked_cell_modified", err.Error())
	case errors.Is(err, mapupdate.ErrUnaffordableBuild):
		writeErrorBody(ctx, consts.StatusUnprocessableEntity, "unaffordable_build", err.Error())
	case errors.Is(err, mapupdate.ErrTooManyChanges):
		writeErrorBody(ctx, consts.StatusUnprocessableEntity, "too_many_changes", err.Error())
	case errors.Is(err, mapupdate.ErrImplausibleMoney):
		writeErrorBody(ctx, consts.StatusUnprocessableEntity, "implausible_money", err.Error())
	case errors.Is(err, mapupdate.ErrAnomalousActivity):
		writeErrorBody(ctx, consts.StatusUnprocessableEntity, "anomalous_activity", err.Error())
	case errors.Is(err, cities.ErrCityLimit):
		writeErrorBody(ctx, consts.StatusUnprocessableEntity, "city_limit", err.Error())
	case errors.Is(err, cities.ErrNameTaken):
		writeErrorBody(ctx, consts.StatusConflict, "name_taken", err.Error())
	case errors.Is(err, city.ErrBadGridSize):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_grid", err.Error())
	case errors.Is(err, mapupdate.ErrInvalidRequest),
		errors.Is(err, cityview.ErrInvalidRequest),
		errors.Is(err, treasury.ErrInvalidRequest),
		errors.Is(err, cities.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
