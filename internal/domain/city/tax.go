package city

import "time"

// OfflineEarnings reports the tax income accrued since the last collection,
// hard-capped at 24 hours of accrual no matter how long the city sat idle.
// Pure: it never touches the snapshot, collection is a separate mutator.
func (svc StatsService) OfflineEarnings(s State, now time.Time) int64 {
	if s.LastCollectedAt.IsZero() {
		return 0
	}

	hours := int64(now.Sub(s.LastCollectedAt).Hours())
	if hours > MaxOfflineHours {
		hours = MaxOfflineHours
	}
	if hours <= 0 {
		return 0
	}

	rate := s.HourlyTaxRate
	if rate == 0 {
		// Records written before the rate cache existed.
		rate = svc.HourlyTaxRate(ParseStoredGrid(s.GridData))
	}

	earned := int64(rate) * hours
	if s.HasPowerShortage() {
		earned /= 2
	}

	// Happiness swings earnings by +-20%, congestion drags up to -30%.
	earned = int64(float64(earned) * (0.8 + float64(s.Happiness)*0.004))
	earned = int64(float64(earned) * (1.0 - float64(s.TrafficLevel)*0.003))

	if earned < 0 {
		return 0
	}
	return earned
}
