package core

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/aerialfoundry/skyfleet-simulator/fleet"
	"github.com/aerialfoundry/skyfleet-simulator/internal/logging"
	"github.com/aerialfoundry/skyfleet-simulator/model"
)

type failingLoader struct {
	calls int
}

func (l *failingLoader) LoadVisualAsset(ctx context.Context, name string) (model.VisualHandle, error) {
	l.calls++
	return nil, errors.New("asset store unavailable")
}

type countingMetrics struct {
	NoopMetrics
	respawns     int
	loadFailures int
}

func (m *countingMetrics) IncRespawns()          { m.respawns++ }
func (m *countingMetrics) IncAssetLoadFailures() { m.loadFailures++ }

func newSpawnManager(cfg WorldConfig, archetypes []model.Archetype, loader AssetLoader, metrics MetricsRecorder) *SpawnLifecycleManager {
	nav := NewNavigationController(cfg)
	return NewSpawnLifecycleManager(cfg, nav, loader, archetypes, logging.Noop(), metrics)
}

func TestSeedPopulationCreatesConfiguredCount(t *testing.T) {
	cfg := DefaultWorldConfig()
	cfg.Population = 7
	sm := newSpawnManager(cfg, nil, nil, nil)
	f := fleet.New()
	rng := NewRandomSource(41)

	sm.SeedPopulation(context.Background(), f, Vec3{}, rng)

	if got := f.Len(); got != 7 {
		t.Fatalf("population = %d, want 7", got)
	}
	for _, e := range f.All() {
		if e.Handle != model.PlaceholderHandle {
			t.Fatalf("slot %d handle = %v, want placeholder with nil loader", e.Slot, e.Handle)
		}
		if e.ID == "" {
			t.Fatalf("slot %d has empty ID", e.Slot)
		}
	}
}

func TestRespawnPlacesWithinAnnulusAndSafeBand(t *testing.T) {
	cfg := DefaultWorldConfig()
	sm := newSpawnManager(cfg, nil, nil, nil)
	rng := NewRandomSource(42)
	viewer := Vec3{X: 300, Z: -400}

	for i := 0; i < 100; i++ {
		e := &model.FlightEntity{Profile: model.PerformanceProfile{BaseSpeedFactor: 1, ClimbPerf: 1, MaxClimbRate: 3, MaxDescentRate: 3}}
		sm.Respawn(e, viewer, rng)

		dist := HorizontalDistance(e.Position, viewer)
		if dist < cfg.SpawnDistanceMin || dist >= cfg.SpawnDistanceMax {
			t.Fatalf("spawn %d distance = %v, want [%v, %v)", i, dist, cfg.SpawnDistanceMin, cfg.SpawnDistanceMax)
		}
		agl := cfg.AGL(e.Position.Y)
		if agl < cfg.SafeZoneMin() || agl >= cfg.SafeZoneMax() {
			t.Fatalf("spawn %d altitude = %v AGL, want safe band", i, agl)
		}
		if e.VerticalSpeed < 0 || e.VerticalSpeed >= 0.5 {
			t.Fatalf("spawn %d vertical speed = %v, want [0, 0.5)", i, e.VerticalSpeed)
		}
	}
}

func TestRespawnResetsMomentumAndIdentity(t *testing.T) {
	cfg := DefaultWorldConfig()
	sm := newSpawnManager(cfg, nil, nil, nil)
	rng := NewRandomSource(43)

	e := &model.FlightEntity{
		ID:            "old-id",
		YawVelocity:   2,
		RollVelocity:  -1,
		PitchVelocity: 0.5,
		Roll:          0.8,
		Pitch:         -0.3,
		Profile:       model.PerformanceProfile{BaseSpeedFactor: 1, ClimbPerf: 1, MaxClimbRate: 3, MaxDescentRate: 3},
	}
	sm.Respawn(e, Vec3{}, rng)

	if e.ID == "old-id" || e.ID == "" {
		t.Fatalf("ID = %q, want a fresh identity", e.ID)
	}
	if e.YawVelocity != 0 || e.RollVelocity != 0 || e.PitchVelocity != 0 {
		t.Fatal("angular momentum survived respawn")
	}
	if e.Roll != 0 || e.Pitch != 0 {
		t.Fatalf("orientation (roll %v, pitch %v) survived respawn", e.Roll, e.Pitch)
	}
	if e.BlendFactor != 1 {
		t.Fatalf("BlendFactor = %v after respawn, want completed blend", e.BlendFactor)
	}
}

func TestRecycleOnlyAffectsEntitiesOutsideBox(t *testing.T) {
	cfg := DefaultWorldConfig()
	metrics := &countingMetrics{}
	sm := newSpawnManager(cfg, nil, nil, metrics)
	f := fleet.New()
	rng := NewRandomSource(44)

	inside := &model.FlightEntity{ID: "inside", Position: Vec3{X: 100, Y: 150, Z: 100}}
	outside := &model.FlightEntity{ID: "outside", Position: Vec3{X: cfg.DespawnBoxSize, Y: 150}}
	f.Add(inside)
	f.Add(outside)

	sm.Recycle(f, Vec3{}, rng)

	if inside.ID != "inside" {
		t.Fatal("entity inside the box was recycled")
	}
	if outside.ID == "outside" {
		t.Fatal("entity outside the box was not recycled")
	}
	if math.Abs(outside.Position.X) > cfg.DespawnBoxSize/2 || math.Abs(outside.Position.Z) > cfg.DespawnBoxSize/2 {
		t.Fatalf("recycled entity still outside the box at %+v", outside.Position)
	}
	if metrics.respawns != 1 {
		t.Fatalf("respawn count = %d, want 1", metrics.respawns)
	}
}

func TestSeedPopulationFallsBackToPlaceholderOnLoadFailure(t *testing.T) {
	cfg := DefaultWorldConfig()
	cfg.Population = 3
	loader := &failingLoader{}
	metrics := &countingMetrics{}
	arch := []model.Archetype{{
		Name: "glider", Asset: "models/glider.glb",
		SpeedFactorMin: 1, SpeedFactorMax: 1,
		ClimbPerfMin: 1, ClimbPerfMax: 1,
		MaxClimbRate: 2, MaxDescentRate: 2, Weight: 1,
	}}
	sm := newSpawnManager(cfg, arch, loader, metrics)
	f := fleet.New()
	rng := NewRandomSource(45)

	sm.SeedPopulation(context.Background(), f, Vec3{}, rng)

	if loader.calls != 3 {
		t.Fatalf("loader calls = %d, want 3", loader.calls)
	}
	if metrics.loadFailures != 3 {
		t.Fatalf("recorded load failures = %d, want 3", metrics.loadFailures)
	}
	for _, e := range f.All() {
		if e.Handle != model.PlaceholderHandle {
			t.Fatalf("slot %d handle = %v, want placeholder", e.Slot, e.Handle)
		}
		if e.Archetype != "glider" {
			t.Fatalf("slot %d archetype = %q, want glider", e.Slot, e.Archetype)
		}
	}
}

func TestPickArchetypeRespectsWeights(t *testing.T) {
	cfg := DefaultWorldConfig()
	arch := []model.Archetype{
		{Name: "common", Weight: 9, SpeedFactorMin: 1, SpeedFactorMax: 1, ClimbPerfMin: 1, ClimbPerfMax: 1, MaxClimbRate: 3, MaxDescentRate: 3},
		{Name: "rare", Weight: 1, SpeedFactorMin: 1, SpeedFactorMax: 1, ClimbPerfMin: 1, ClimbPerfMax: 1, MaxClimbRate: 3, MaxDescentRate: 3},
	}
	sm := newSpawnManager(cfg, arch, nil, nil)
	rng := NewRandomSource(46)

	counts := map[string]int{}
	for i := 0; i < 2000; i++ {
		counts[sm.pickArchetype(rng).Name]++
	}
	if counts["common"] <= counts["rare"] {
		t.Fatalf("weighted draw ignored weights: %v", counts)
	}
	if counts["rare"] == 0 {
		t.Fatal("rare archetype never drawn in 2000 attempts")
	}
}

func TestPickArchetypeWithoutScenarioUsesNeutralDefault(t *testing.T) {
	cfg := DefaultWorldConfig()
	sm := newSpawnManager(cfg, nil, nil, nil)
	rng := NewRandomSource(47)

	a := sm.pickArchetype(rng)
	if a.Name != "default" {
		t.Fatalf("fallback archetype = %q, want default", a.Name)
	}
	if a.MaxClimbRate <= 0 || a.MaxDescentRate <= 0 {
		t.Fatalf("fallback archetype has degenerate limits: %+v", a)
	}
}
