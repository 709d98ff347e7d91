package city

import "time"

// AnomalyThresholds tunes the advisory heuristics. Zero values fall back to
// the shipped defaults so a partial tuning file stays safe.
type AnomalyThresholds struct {
	PopulationThreshold int
	PopulationWindow    time.Duration
	MoneyFloor          int64
	MoneyFactor         int64
}

func DefaultAnomalyThresholds() AnomalyThresholds {
	return AnomalyThresholds{
		PopulationThreshold: AnomalyPopulationThreshold,
		PopulationWindow:    AnomalyPopulationWindow,
		MoneyFloor:          AnomalyMoneyFloor,
		MoneyFactor:         AnomalyMoneyFactor,
	}
}

func (t AnomalyThresholds) withDefaults() AnomalyThresholds {
	d := DefaultAnomalyThresholds()
	if t.PopulationThreshold <= 0 {
		t.PopulationThreshold = d.PopulationThreshold
	}
	if t.PopulationWindow <= 0 {
		t.PopulationWindow = d.PopulationWindow
	}
	if t.MoneyFloor <= 0 {
		t.MoneyFloor = d.MoneyFloor
	}
	if t.MoneyFactor <= 0 {
		t.MoneyFactor = d.MoneyFactor
	}
	return t
}

// Anomaly flag reasons, stable identifiers for operator dashboards.
const (
	AnomalyRapidPopulation  = "rapid_population"
	AnomalyImplausibleMoney = "implausible_money"
)

// DetectAnomaly runs the advisory heuristics over a stored snapshot. A hit
// means the city looks implausible, not that this request is invalid; the
// caller decides whether flags block or only get reported.
func DetectAnomaly(s State, taxPerHour int, now time.Time, t AnomalyThresholds) (string, bool) {
	t = t.withDefaults()

	if !s.CreatedAt.IsZero() {
		age := now.Sub(s.CreatedAt)
		if age < t.PopulationWindow && s.Population > t.PopulationThreshold {
			return AnomalyRapidPopulation, true
		}

		if s.Money > t.MoneyFloor {
			elapsedHours := int64(age.Hours())
			projected := AnomalyBaselineMoney + int64(taxPerHour)*elapsedHours
			if s.Money > projected*t.MoneyFactor {
				return AnomalyImplausibleMoney, true
			}
		}
	}

	return "", false
}
