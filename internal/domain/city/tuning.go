package city

import "time"

const (
	// GridSize is the fixed edge length of every city grid. Grids of any
	// other shape are rejected before simulation runs.
	GridSize = 48

	MaxOfflineHours   = 24
	DailyActionPoints = 10
	SeedMoney         = 5000
	DefaultHappiness  = 50

	DefaultCityName = "My City"
	MaxCitiesPerOwner = 5

	RateLimitRequests = 30
	RateLimitWindow   = 60 * time.Second

	MaxChangedCellsPerUpdate = 100

	// MoneyFlatAllowance pads the per-save money-delta bound so ordinary
	// reward payouts never trip the check.
	MoneyFlatAllowance = 50000

	// Happiness penalties applied by the stats scan.
	crimeHappinessWeight   = 30
	fireHappinessWeight    = 20
	trafficHappinessWeight = 25
	parkHappinessBonus     = 3
	parkHappinessCap       = 30
	blackoutPenalty        = 20

	congestionNeighborhood = 3

	// Anomaly heuristics. Tunable at runtime through the guard tuning file;
	// these are the shipped defaults.
	AnomalyPopulationThreshold = 1000
	AnomalyPopulationWindow    = time.Hour
	AnomalyMoneyFloor          = 10_000_000
	AnomalyMoneyFactor         = 2
	AnomalyBaselineMoney       = 10000
)
