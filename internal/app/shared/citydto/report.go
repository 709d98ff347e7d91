package citydto

import (
	"encoding/json"
	"time"

	"citygrid/internal/domain/city"
)

// Report is the response shape shared by every city-facing operation: the
// snapshot fields a client may see plus the per-request derived stats.
type Report struct {
	Owner    string `json:"owner"`
	CityName string `json:"city_name"`
	Slug     string `json:"slug"`
	IsOwner  bool   `json:"is_owner"`

	Money int64   `json:"money"`
	Grid  [][]int `json:"grid"`

	BuildingsData json.RawMessage `json:"buildings_data,omitempty"`
	CameraState   json.RawMessage `json:"camera_state,omitempty"`
	GameState     json.RawMessage `json:"game_state,omitempty"`

	Stats      city.Stats `json:"stats"`
	TaxPerHour int        `json:"tax_per_hour"`

	ActionPoints         int   `json:"action_points"`
	ConsecutiveLoginDays int   `json:"consecutive_login_days"`
	UnclaimedTax         int64 `json:"unclaimed_tax"`

	OfflineEarnings int64 `json:"offline_earnings"`
	LoginReward     int64 `json:"login_reward"`

	UpdatedAt time.Time `json:"updated_at"`
}

func FromState(s city.State, isOwner bool, stats city.Stats, offlineEarnings, loginReward int64) Report {
	r := Report{
		Owner:           s.Owner,
		CityName:        s.CityName,
		Slug:            s.Slug,
		IsOwner:         isOwner,
		Money:           s.Money,
		Grid:            city.ParseStoredGrid(s.GridData),
		Stats:           stats,
		TaxPerHour:      stats.TaxPerHour,
		UpdatedAt:       s.UpdatedAt,
		OfflineEarnings: offlineEarnings,
		LoginReward:     loginReward,
	}
	if isOwner {
		r.ActionPoints = s.ActionPoints
		r.ConsecutiveLoginDays = s.ConsecutiveLoginDays
		r.UnclaimedTax = s.UnclaimedTax
	}
	if s.BuildingsData != "" {
		r.BuildingsData = json.RawMessage(s.BuildingsData)
	}
	if s.CameraState != "" {
		r.CameraState = json.RawMessage(s.CameraState)
	}
	if s.GameState != "" {
		r.GameState = json.RawMessage(s.GameState)
	}
	return r
}
