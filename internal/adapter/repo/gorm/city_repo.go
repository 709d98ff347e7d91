package gormrepo

import (
	"context"
	"errors"

	"citygrid/internal/adapter/repo/gorm/model"
	"citygrid/internal/app/ports"
	"citygrid/internal/domain/city"

	"gorm.io/gorm"
)

type CityRepo struct {
	db *gorm.DB
}

func NewCityRepo(db *gorm.DB) CityRepo {
	return CityRepo{db: db}
}

func (r CityRepo) GetByOwnerAndName(ctx context.Context, owner, cityName string) (city.State, error) {
	var m model.CityMap
	err := getDBFromCtx(ctx, r.db).
		Where("owner = ? AND city_name = ?", owner, cityName).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return city.State{}, ports.ErrNotFound
		}
		return city.State{}, err
	}
	return toState(m), nil
}

func (r CityRepo) GetFirstByOwner(ctx context.Context, owner string) (city.State, error) {
	var m model.CityMap
	err := getDBFromCtx(ctx, r.db).
		Where("owner = ?", owner).
		Order("created_at ASC, id ASC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return city.State{}, ports.ErrNotFound
		}
		return city.State{}, err
	}
	return toState(m), nil
}

func (r CityRepo) ListByOwner(ctx context.Context, owner string) ([]city.State, error) {
	var ms []model.CityMap
	err := getDBFromCtx(ctx, r.db).
		Where("owner = ?", owner).
		Order("created_at ASC, id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]city.State, 0, len(ms))
	for _, m := range ms {
		out = append(out, toState(m))
	}
	return out, nil
}

func (r CityRepo) CountByOwner(ctx context.Context, owner string) (int, error) {
	var count int64
	err := getDBFromCtx(ctx, r.db).
		Model(&model.CityMap{}).
		Where("owner = ?", owner).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r CityRepo) Create(ctx context.Context, state city.State) error {
	m := toModel(state)
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r CityRepo) SaveWithVersion(ctx context.Context, state city.State, expectedVersion int64) error {
	m := toModel(state)
	res := getDBFromCtx(ctx, r.db).
		Model(&model.CityMap{}).
		Where("slug = ? AND version = ?", state.Slug, expectedVersion).
		Updates(map[string]any{
			"city_name":              m.CityName,
			"grid_data":              m.GridData,
			"buildings_data":         m.BuildingsData,
			"camera_state":           m.CameraState,
			"game_state":             m.GameState,
			"money":                  m.Money,
			"population":             m.Population,
			"happiness":              m.Happiness,
			"power_capacity":         m.PowerCapacity,
			"power_usage":            m.PowerUsage,
			"crime_rate":             m.CrimeRate,
			"fire_risk":              m.FireRisk,
			"traffic_level":          m.TrafficLevel,
			"hourly_tax_rate":        m.HourlyTaxRate,
			"action_points":          m.ActionPoints,
			"consecutive_login_days": m.ConsecutiveLoginDays,
			"last_collected_at":      m.LastCollectedAt,
			"last_login_at":          m.LastLoginAt,
			"unclaimed_tax":          m.UnclaimedTax,
			"updated_at":             m.UpdatedAt,
			"version":                m.Version,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r CityRepo) Delete(ctx context.Context, owner, slug string) error {
	res := getDBFromCtx(ctx, r.db).
		Where("owner = ? AND slug = ?", owner, slug).
		Delete(&model.CityMap{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func toModel(s city.State) model.CityMap {
	return model.CityMap{
		Owner:                s.Owner,
		CityName:             s.CityName,
		Slug:                 s.Slug,
		TemplateName:         s.TemplateName,
		GridData:             s.GridData,
		BuildingsData:        s.BuildingsData,
		CameraState:          s.CameraState,
		GameState:            s.GameState,
		Money:                s.Money,
		Population:           s.Population,
		Happiness:            s.Happiness,
		PowerCapacity:        s.PowerCapacity,
		PowerUsage:           s.PowerUsage,
		CrimeRate:            s.CrimeRate,
		FireRisk:             s.FireRisk,
		TrafficLevel:         s.TrafficLevel,
		HourlyTaxRate:        s.HourlyTaxRate,
		ActionPoints:         s.ActionPoints,
		ConsecutiveLoginDays: s.ConsecutiveLoginDays,
		LastCollectedAt:      s.LastCollectedAt,
		LastLoginAt:          s.LastLoginAt,
		UnclaimedTax:         s.UnclaimedTax,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
		Version:              s.Version,
	}
}

func toState(m model.CityMap) city.State {
	return city.State{
		Owner:                m.Owner,
		CityName:             m.CityName,
		Slug:                 m.Slug,
		TemplateName:         m.TemplateName,
		GridData:             m.GridData,
		BuildingsData:        m.BuildingsData,
		CameraState:          m.CameraState,
		GameState:            m.GameState,
		Money:                m.Money,
		Population:           m.Population,
		Happiness:            m.Happiness,
		PowerCapacity:        m.PowerCapacity,
		PowerUsage:           m.PowerUsage,
		CrimeRate:            m.CrimeRate,
		FireRisk:             m.FireRisk,
		TrafficLevel:         m.TrafficLevel,
		HourlyTaxRate:        m.HourlyTaxRate,
		ActionPoints:         m.ActionPoints,
		ConsecutiveLoginDays: m.ConsecutiveLoginDays,
		LastCollectedAt:      m.LastCollectedAt,
		LastLoginAt:          m.LastLoginAt,
		UnclaimedTax:         m.UnclaimedTax,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
		Version:              m.Version,
	}
}
