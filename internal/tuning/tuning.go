package tuning

import (
	"fmt"
	"os"
	"time"

	"citygrid/internal/domain/city"

	"gopkg.in/yaml.v3"
)

// Guard carries the anti-cheat thresholds. Every knob ships with a default
// from the domain constants; a tuning file only needs the keys it overrides.
type Guard struct {
	RateLimitRequests      int   `yaml:"rate_limit_requests"`
	RateLimitWindowSeconds int   `yaml:"rate_limit_window_seconds"`
	MaxChangedCells        int   `yaml:"max_changed_cells"`
	MoneyFlatAllowance     int64 `yaml:"money_flat_allowance"`

	// BlockOnAnomaly upgrades advisory anomaly flags to hard rejections.
	// Off by default: flags are reported for operator review only.
	BlockOnAnomaly bool `yaml:"block_on_anomaly"`

	Anomaly Anomaly `yaml:"anomaly"`
}

type Anomaly struct {
	PopulationThreshold     int   `yaml:"population_threshold"`
	PopulationWindowMinutes int   `yaml:"population_window_minutes"`
	MoneyFloor              int64 `yaml:"money_floor"`
	MoneyFactor             int64 `yaml:"money_factor"`
}

func Default() Guard {
	return Guard{
		RateLimitRequests:      city.RateLimitRequests,
		RateLimitWindowSeconds: int(city.RateLimitWindow.Seconds()),
		MaxChangedCells:        city.MaxChangedCellsPerUpdate,
		MoneyFlatAllowance:     city.MoneyFlatAllowance,
		Anomaly: Anomaly{
			PopulationThreshold:     city.AnomalyPopulationThreshold,
			PopulationWindowMinutes: int(city.AnomalyPopulationWindow.Minutes()),
			MoneyFloor:              city.AnomalyMoneyFloor,
			MoneyFactor:             city.AnomalyMoneyFactor,
		},
	}
}

// Load reads a guard tuning file over the defaults.
func Load(path string) (Guard, error) {
	g := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return g, err
	}
	if err := yaml.Unmarshal(raw, &g); err != nil {
		return g, fmt.Errorf("guard tuning: %w", err)
	}
	return g, nil
}

func (g Guard) RateLimitWindow() time.Duration {
	return time.Duration(g.RateLimitWindowSeconds) * time.Second
}

func (g Guard) AnomalyThresholds() city.AnomalyThresholds {
	return city.AnomalyThresholds{
		PopulationThreshold: g.Anomaly.PopulationThreshold,
		PopulationWindow:    time.Duration(g.Anomaly.PopulationWindowMinutes) * time.Minute,
		MoneyFloor:          g.Anomaly.MoneyFloor,
		MoneyFactor:         g.Anomaly.MoneyFactor,
	}
}
