package tuning

import (
	"os"
	"path/filepath"
	"testing"

	"citygrid/internal/domain/city"
)

func TestDefault_MatchesDomainConstants(t *testing.T) {
	g := Default()
	if g.RateLimitRequests != city.RateLimitRequests {
		t.Fatalf("rate limit requests = %d, want %d", g.RateLimitRequests, city.RateLimitRequests)
	}
	if g.RateLimitWindow() != city.RateLimitWindow {
		t.Fatalf("rate limit window = %v, want %v", g.RateLimitWindow(), city.RateLimitWindow)
	}
	if g.MaxChangedCells != city.MaxChangedCellsPerUpdate {
		t.Fatalf("max changed cells = %d, want %d", g.MaxChangedCells, city.MaxChangedCellsPerUpdate)
	}
	if g.BlockOnAnomaly {
		t.Fatalf("anomalies must be advisory by default")
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guard.yaml")
	content := "max_changed_cells: 42\nblock_on_anomaly: true\nanomaly:\n  population_threshold: 700\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write tuning file: %v", err)
	}

	g, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if g.MaxChangedCells != 42 || !g.BlockOnAnomaly {
		t.Fatalf("overrides not applied: %+v", g)
	}
	if g.Anomaly.PopulationThreshold != 700 {
		t.Fatalf("nested override not applied: %+v", g.Anomaly)
	}
	if g.RateLimitRequests != city.RateLimitRequests {
		t.Fatalf("unset keys must keep defaults, got %d", g.RateLimitRequests)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	g, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatalf("expected an error for a missing file")
	}
	if g.RateLimitRequests != city.RateLimitRequests {
		t.Fatalf("error path must still return usable defaults")
	}
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guard.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o600); err != nil {
		t.Fatalf("write tuning file: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected a parse error")
	}
}
