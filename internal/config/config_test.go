package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "simulation.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Runner.TickRate != 60 {
		t.Errorf("TickRate = %d, want 60", cfg.Runner.TickRate)
	}
	if cfg.Runner.MetricsAddr != ":9090" {
		t.Errorf("MetricsAddr = %q, want :9090", cfg.Runner.MetricsAddr)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("Load succeeded for missing file, want error")
	}
}

func TestLoadParsesRunnerAndWorldSections(t *testing.T) {
	path := writeConfig(t, `
[runner]
tick_rate = 30
seed = 1234
metrics_addr = ""
night_lock = true

[world]
population = 24
min_height_agl = 50
max_height_agl = 300
day_length = 120
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Runner.TickRate != 30 {
		t.Errorf("TickRate = %d, want 30", cfg.Runner.TickRate)
	}
	if cfg.Runner.Seed != 1234 {
		t.Errorf("Seed = %d, want 1234", cfg.Runner.Seed)
	}
	if !cfg.Runner.NightLock {
		t.Error("NightLock = false, want true")
	}

	w := cfg.WorldConfig()
	if w.Population != 24 {
		t.Errorf("Population = %d, want 24", w.Population)
	}
	if w.MinHeightAGL != 50 || w.MaxHeightAGL != 300 {
		t.Errorf("envelope = [%v, %v], want [50, 300]", w.MinHeightAGL, w.MaxHeightAGL)
	}
	if w.DayLength != 120 {
		t.Errorf("DayLength = %v, want 120", w.DayLength)
	}
}

func TestWorldConfigKeepsDefaultsForUnsetFields(t *testing.T) {
	path := writeConfig(t, `
[world]
population = 6
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	w := cfg.WorldConfig()
	if w.Population != 6 {
		t.Errorf("Population = %d, want 6", w.Population)
	}
	if w.CruiseSpeed != 28 {
		t.Errorf("CruiseSpeed = %v, want default 28", w.CruiseSpeed)
	}
	if w.DespawnBoxSize != 1600 {
		t.Errorf("DespawnBoxSize = %v, want default 1600", w.DespawnBoxSize)
	}
}

func TestLoadRejectsInvertedEnvelope(t *testing.T) {
	path := writeConfig(t, `
[world]
min_height_agl = 300
max_height_agl = 100
`)

	if _, err := Load(path); err == nil {
		t.Fatal("Load succeeded with inverted envelope, want error")
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, `[runner`)

	if _, err := Load(path); err == nil {
		t.Fatal("Load succeeded with malformed TOML, want error")
	}
}
