package model

import "time"

// CityMap is the persistence row for one city snapshot. Grid and client
// blobs are stored as opaque text; the engine validates them on the way in.
type CityMap struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"`

	Owner        string `gorm:"column:owner;size:128;index:idx_city_maps_owner_name,unique,priority:1"`
	CityName     string `gorm:"column:city_name;size:128;index:idx_city_maps_owner_name,unique,priority:2"`
	Slug         string `gorm:"column:slug;size:64;uniqueIndex:idx_city_maps_slug"`
	TemplateName string `gorm:"column:template_name;size:64"`

	GridData      string `gorm:"column:grid_data;type:text"`
	BuildingsData string `gorm:"column:buildings_data;type:text"`
	CameraState   string `gorm:"column:camera_state;type:text"`
	GameState     string `gorm:"column:game_state;type:text"`

	Money int64 `gorm:"column:money"`

	Population    int `gorm:"column:population"`
	Happiness     int `gorm:"column:happiness"`
	PowerCapacity int `gorm:"column:power_capacity"`
	PowerUsage    int `gorm:"column:power_usage"`
	CrimeRate     int `gorm:"column:crime_rate"`
	FireRisk      int `gorm:"column:fire_risk"`
	TrafficLevel  int `gorm:"column:traffic_level"`
	HourlyTaxRate int `gorm:"column:hourly_tax_rate"`

	ActionPoints         int       `gorm:"column:action_points"`
	ConsecutiveLoginDays int       `gorm:"column:consecutive_login_days"`
	LastCollectedAt      time.Time `gorm:"column:last_collected_at"`
	LastLoginAt          time.Time `gorm:"column:last_login_at"`
	UnclaimedTax         int64     `gorm:"column:unclaimed_tax"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
	Version   int64     `gorm:"column:version"`
}

func (CityMap) TableName() string { return "city_maps" }
