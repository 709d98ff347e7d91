package city

import (
	"testing"
	"time"
)

func TestDetectAnomaly_RapidPopulation(t *testing.T) {
	now := time.Now()
	s := State{
		CreatedAt:  now.Add(-20 * time.Minute),
		Population: 5000,
	}

	reason, flagged := DetectAnomaly(s, 0, now, AnomalyThresholds{})
	if !flagged || reason != AnomalyRapidPopulation {
		t.Fatalf("expected rapid population flag, got %q/%v", reason, flagged)
	}
}

func TestDetectAnomaly_PopulationFineAfterWindow(t *testing.T) {
	now := time.Now()
	s := State{
		CreatedAt:  now.Add(-2 * time.Hour),
		Population: 5000,
	}

	if reason, flagged := DetectAnomaly(s, 0, now, AnomalyThresholds{}); flagged {
		t.Fatalf("mature city population should not flag, got %q", reason)
	}
}

func TestDetectAnomaly_ImplausibleMoney(t *testing.T) {
	now := time.Now()
	s := State{
		CreatedAt: now.Add(-10 * time.Hour),
		Money:     50_000_000,
	}

	// Projection: 10000 + 1000*10h = 20000; doubled bound is far below 50M.
	reason, flagged := DetectAnomaly(s, 1000, now, AnomalyThresholds{})
	if !flagged || reason != AnomalyImplausibleMoney {
		t.Fatalf("expected implausible money flag, got %q/%v", reason, flagged)
	}
}

func TestDetectAnomaly_RichButPlausible(t *testing.T) {
	now := time.Now()
	s := State{
		CreatedAt: now.Add(-1000 * time.Hour),
		Money:     15_000_000,
	}

	// 10000 + 20000*1000h = 20M projected; doubled bound is 40M.
	if reason, flagged := DetectAnomaly(s, 20000, now, AnomalyThresholds{}); flagged {
		t.Fatalf("plausible fortune should not flag, got %q", reason)
	}
}

func TestDetectAnomaly_BelowMoneyFloorNeverFlags(t *testing.T) {
	now := time.Now()
	s := State{
		CreatedAt: now.Add(-2 * time.Hour),
		Money:     9_000_000, // under the 10M floor, zero tax income
	}

	if reason, flagged := DetectAnomaly(s, 0, now, AnomalyThresholds{}); flagged {
		t.Fatalf("balances under the floor are exempt, got %q", reason)
	}
}

func TestDetectAnomaly_CustomThresholds(t *testing.T) {
	now := time.Now()
	s := State{
		CreatedAt:  now.Add(-30 * time.Minute),
		Population: 150,
	}

	custom := AnomalyThresholds{PopulationThreshold: 100, PopulationWindow: time.Hour}
	if _, flagged := DetectAnomaly(s, 0, now, custom); !flagged {
		t.Fatalf("custom threshold should flag a population of 150")
	}
	if _, flagged := DetectAnomaly(s, 0, now, AnomalyThresholds{}); flagged {
		t.Fatalf("default threshold should not flag a population of 150")
	}
}
