package city

import "time"

// State is the persisted snapshot of one city. The engine receives it by
// value from the storage layer and either returns derived reports or mutates
// its own copy through the documented mutators; it never retains a reference
// across calls.
type State struct {
	Owner        string `json:"owner"`
	CityName     string `json:"city_name"`
	Slug         string `json:"slug"`
	TemplateName string `json:"template_name,omitempty"`

	GridData      string `json:"grid_data"`
	BuildingsData string `json:"buildings_data,omitempty"`
	CameraState   string `json:"camera_state,omitempty"`
	GameState     string `json:"game_state,omitempty"`

	Money int64 `json:"money"`

	Population    int `json:"population"`
	Happiness     int `json:"happiness"`
	PowerCapacity int `json:"power_capacity"`
	PowerUsage    int `json:"power_usage"`
	CrimeRate     int `json:"crime_rate"`
	FireRisk      int `json:"fire_risk"`
	TrafficLevel  int `json:"traffic_level"`

	HourlyTaxRate int `json:"hourly_tax_rate"`

	ActionPoints         int       `json:"action_points"`
	ConsecutiveLoginDays int       `json:"consecutive_login_days"`
	LastCollectedAt      time.Time `json:"last_collected_at"`
	LastLoginAt          time.Time `json:"last_login_at"`
	UnclaimedTax         int64     `json:"unclaimed_tax"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int64     `json:"version"`
}

// NewState seeds a fresh city on the default map.
func NewState(owner, cityName, slug string, now time.Time) State {
	if cityName == "" {
		cityName = DefaultCityName
	}
	return State{
		Owner:           owner,
		CityName:        cityName,
		Slug:            slug,
		GridData:        DefaultGrid().Encode(),
		Money:           SeedMoney,
		Happiness:       DefaultHappiness,
		ActionPoints:    DailyActionPoints,
		LastCollectedAt: now,
		LastLoginAt:     now,
		CreatedAt:       now,
		UpdatedAt:       now,
		Version:         1,
	}
}

// NewStateWithGrid seeds a city from a map template.
func NewStateWithGrid(owner, cityName, slug, gridData, templateName string, now time.Time) State {
	s := NewState(owner, cityName, slug, now)
	s.GridData = gridData
	s.TemplateName = templateName
	return s
}

// UpdateMap applies an accepted map mutation. Blobs the engine does not
// interpret are stored as-is; empty blob arguments leave the stored value
// untouched.
func (s *State) UpdateMap(gridData string, money int64, hourlyTaxRate int, buildings, camera, game string, now time.Time) {
	s.GridData = gridData
	s.Money = money
	s.HourlyTaxRate = hourlyTaxRate
	if buildings != "" {
		s.BuildingsData = buildings
	}
	if camera != "" {
		s.CameraState = camera
	}
	if game != "" {
		s.GameState = game
	}
	s.UpdatedAt = now
}

// ApplyStats writes a derived report back into the cached stat columns,
// re-clamping every percentage on the way in.
func (s *State) ApplyStats(stats Stats, now time.Time) {
	s.Population = stats.Population
	s.Happiness = clampPercent(stats.Happiness)
	s.PowerCapacity = stats.PowerCapacity
	s.PowerUsage = stats.PowerUsage
	s.CrimeRate = clampPercent(stats.CrimeRate)
	s.FireRisk = clampPercent(stats.FireRisk)
	s.TrafficLevel = clampPercent(stats.TrafficLevel)
	s.UpdatedAt = now
}

// CollectTax banks accrued earnings and restarts the accrual window.
func (s *State) CollectTax(amount int64, now time.Time) {
	s.Money += amount
	s.UnclaimedTax = 0
	s.LastCollectedAt = now
	s.UpdatedAt = now
}

func (s *State) AddUnclaimedTax(amount int64) {
	s.UnclaimedTax += amount
}

func (s *State) UseActionPoints(amount int, now time.Time) bool {
	if s.ActionPoints < amount {
		return false
	}
	s.ActionPoints -= amount
	s.UpdatedAt = now
	return true
}

func (s *State) ResetDailyActionPoints(now time.Time) {
	s.ActionPoints = DailyActionPoints
	s.UpdatedAt = now
}

// UpdateLoginStreak advances the consecutive-day counter: same calendar day
// leaves it alone, the next day increments, any gap resets to 1.
func (s *State) UpdateLoginStreak(now time.Time) {
	if s.LastLoginAt.IsZero() {
		s.ConsecutiveLoginDays = 1
	} else {
		s.ConsecutiveLoginDays = NextConsecutiveDays(s.ConsecutiveLoginDays, s.LastLoginAt, now)
	}
	s.LastLoginAt = now
	s.UpdatedAt = now
}

func (s State) HasPowerShortage() bool {
	return s.PowerUsage > s.PowerCapacity
}

func (s State) PowerBalance() int {
	return s.PowerCapacity - s.PowerUsage
}
