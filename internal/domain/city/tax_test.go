package city

import (
	"testing"
	"time"
)

func TestOfflineEarnings_HappyCityScenario(t *testing.T) {
	now := time.Now()
	s := State{
		HourlyTaxRate:   1000,
		Happiness:       100,
		TrafficLevel:    0,
		LastCollectedAt: now.Add(-10 * time.Hour),
	}

	// 1000 * 10h * 1.2 happiness bonus, no traffic or power penalty.
	if got := (StatsService{}).OfflineEarnings(s, now); got != 12000 {
		t.Fatalf("earnings = %d, want 12000", got)
	}
}

func TestOfflineEarnings_NeverCollected(t *testing.T) {
	s := State{HourlyTaxRate: 1000, Happiness: 50}
	if got := (StatsService{}).OfflineEarnings(s, time.Now()); got != 0 {
		t.Fatalf("earnings = %d, want 0 without a collection timestamp", got)
	}
}

func TestOfflineEarnings_SubHourYieldsNothing(t *testing.T) {
	now := time.Now()
	s := State{HourlyTaxRate: 1000, Happiness: 50, LastCollectedAt: now.Add(-30 * time.Minute)}
	if got := (StatsService{}).OfflineEarnings(s, now); got != 0 {
		t.Fatalf("earnings = %d, want 0 under one hour", got)
	}
}

func TestOfflineEarnings_CappedAt24Hours(t *testing.T) {
	now := time.Now()
	svc := StatsService{}
	base := State{HourlyTaxRate: 500, Happiness: 70, TrafficLevel: 10}

	at24 := base
	at24.LastCollectedAt = now.Add(-24 * time.Hour)
	at25 := base
	at25.LastCollectedAt = now.Add(-25 * time.Hour)
	at200 := base
	at200.LastCollectedAt = now.Add(-200 * time.Hour)

	e24 := svc.OfflineEarnings(at24, now)
	if e24 <= 0 {
		t.Fatalf("expected positive earnings at the cap")
	}
	if e25 := svc.OfflineEarnings(at25, now); e25 != e24 {
		t.Fatalf("earnings(25h) = %d, want earnings(24h) = %d", e25, e24)
	}
	if e200 := svc.OfflineEarnings(at200, now); e200 != e24 {
		t.Fatalf("earnings(200h) = %d, want earnings(24h) = %d", e200, e24)
	}
}

func TestOfflineEarnings_MonotonicUpToCap(t *testing.T) {
	now := time.Now()
	svc := StatsService{}
	prev := int64(-1)
	for h := 1; h <= MaxOfflineHours; h++ {
		s := State{
			HourlyTaxRate:   800,
			Happiness:       60,
			TrafficLevel:    20,
			LastCollectedAt: now.Add(-time.Duration(h) * time.Hour),
		}
		got := svc.OfflineEarnings(s, now)
		if got < prev {
			t.Fatalf("earnings dropped from %d to %d at %dh", prev, got, h)
		}
		prev = got
	}
}

func TestOfflineEarnings_PowerShortageHalves(t *testing.T) {
	now := time.Now()
	svc := StatsService{}

	healthy := State{
		HourlyTaxRate:   1000,
		Happiness:       50,
		LastCollectedAt: now.Add(-10 * time.Hour),
		PowerCapacity:   10,
		PowerUsage:      5,
	}
	starved := healthy
	starved.PowerUsage = 20

	if h, s := svc.OfflineEarnings(healthy, now), svc.OfflineEarnings(starved, now); s != h/2 {
		t.Fatalf("shortage earnings = %d, want half of %d", s, h)
	}
}

func TestOfflineEarnings_TrafficPenalty(t *testing.T) {
	now := time.Now()
	s := State{
		HourlyTaxRate:   1000,
		Happiness:       50, // multiplier exactly 1.0
		TrafficLevel:    100,
		LastCollectedAt: now.Add(-10 * time.Hour),
	}

	// 10000 * 1.0 * 0.7
	if got := (StatsService{}).OfflineEarnings(s, now); got != 7000 {
		t.Fatalf("earnings = %d, want 7000 at max congestion", got)
	}
}

func TestOfflineEarnings_RecomputesRateFromGridWhenCacheEmpty(t *testing.T) {
	g := EmptyGrid()
	g[0][0] = int(CellResidentialLow) // 100/h

	now := time.Now()
	s := State{
		GridData:        g.Encode(),
		Happiness:       50,
		LastCollectedAt: now.Add(-2 * time.Hour),
	}

	if got := (StatsService{}).OfflineEarnings(s, now); got != 200 {
		t.Fatalf("earnings = %d, want 200 from recomputed rate", got)
	}
}
