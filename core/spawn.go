package core

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/aerialfoundry/skyfleet-simulator/fleet"
	"github.com/aerialfoundry/skyfleet-simulator/internal/logging"
	"github.com/aerialfoundry/skyfleet-simulator/model"
)

// SpawnLifecycleManager seeds the fixed-size population and recycles
// entities that stray outside the despawn box around the viewer. A
// recycled entity keeps its slot and visual handle; everything else is
// reset as if freshly spawned.
type SpawnLifecycleManager struct {
	cfg        WorldConfig
	nav        *NavigationController
	loader     AssetLoader
	archetypes []model.Archetype
	log        logging.Logger
	metrics    MetricsRecorder
}

func NewSpawnLifecycleManager(
	cfg WorldConfig,
	nav *NavigationController,
	loader AssetLoader,
	archetypes []model.Archetype,
	log logging.Logger,
	metrics MetricsRecorder,
) *SpawnLifecycleManager {
	if log == nil {
		log = logging.Noop()
	}
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &SpawnLifecycleManager{
		cfg:        cfg,
		nav:        nav,
		loader:     loader,
		archetypes: archetypes,
		log:        log,
		metrics:    metrics,
	}
}

// SeedPopulation creates the configured number of entities around the
// viewer and adds them to the fleet.
func (sm *SpawnLifecycleManager) SeedPopulation(ctx context.Context, f *fleet.Fleet, viewer Vec3, rng *RandomSource) {
	for i := 0; i < sm.cfg.Population; i++ {
		e := &model.FlightEntity{}
		sm.initEntity(ctx, e, viewer, rng, true)
		f.Add(e)
	}
	sm.metrics.SetPopulation(f.Len())
}

// Recycle respawns, in place, every entity whose horizontal distance
// from the viewer on either axis exceeds half the despawn box.
func (sm *SpawnLifecycleManager) Recycle(f *fleet.Fleet, viewer Vec3, rng *RandomSource) {
	half := sm.cfg.DespawnBoxSize / 2
	for _, e := range f.All() {
		if math.Abs(e.Position.X-viewer.X) <= half && math.Abs(e.Position.Z-viewer.Z) <= half {
			continue
		}
		sm.Respawn(e, viewer, rng)
		f.NotifyRespawned(e)
		sm.metrics.IncRespawns()
	}
}

// Respawn resets an entity's state in its existing slot: new placement
// relative to the current viewer position, fresh waypoint, neutral
// momentum, and a small non-negative climb so it never spawns into an
// immediate dive near the floor.
func (sm *SpawnLifecycleManager) Respawn(e *model.FlightEntity, viewer Vec3, rng *RandomSource) {
	sm.place(e, viewer, rng)
	e.ID = uuid.NewString()
	e.ResetMomentum()
	e.VerticalSpeed = rng.Range(0, 0.5)
	e.Heading = rng.Angle()
	e.Pitch = 0
	e.Roll = 0
	e.BlendFactor = 0
	e.LightTimer = rng.Range(0, 2)
	sm.nav.InitWaypoints(e, rng)
}

// initEntity performs first-time setup: archetype selection, profile
// sampling, asset loading, then the same placement as a respawn.
func (sm *SpawnLifecycleManager) initEntity(ctx context.Context, e *model.FlightEntity, viewer Vec3, rng *RandomSource, loadAsset bool) {
	arch := sm.pickArchetype(rng)
	e.Archetype = arch.Name
	e.Profile = model.PerformanceProfile{
		BaseSpeedFactor: rng.Range(arch.SpeedFactorMin, arch.SpeedFactorMax),
		ClimbPerf:       rng.Range(arch.ClimbPerfMin, arch.ClimbPerfMax),
		MaxClimbRate:    arch.MaxClimbRate,
		MaxDescentRate:  arch.MaxDescentRate,
	}

	if loadAsset {
		e.Handle = sm.loadHandle(ctx, arch)
	}
	sm.Respawn(e, viewer, rng)
}

// loadHandle asks the collaborator for the archetype's asset. Failure
// is recoverable: the placeholder keeps the entity simulating with
// full physics fidelity and the renderer shows a stand-in.
func (sm *SpawnLifecycleManager) loadHandle(ctx context.Context, arch model.Archetype) model.VisualHandle {
	if sm.loader == nil {
		return model.PlaceholderHandle
	}
	h, err := sm.loader.LoadVisualAsset(ctx, arch.Asset)
	if err != nil || h == nil {
		sm.log.Warn(ctx, "asset load failed; using placeholder",
			logging.String("asset", arch.Asset),
			logging.Any("error", err),
		)
		sm.metrics.IncAssetLoadFailures()
		return model.PlaceholderHandle
	}
	return h
}

// place positions the entity at a random bearing and distance from the
// viewer, at a random safe-band altitude.
func (sm *SpawnLifecycleManager) place(e *model.FlightEntity, viewer Vec3, rng *RandomSource) {
	bearing := rng.Angle()
	dist := rng.Range(sm.cfg.SpawnDistanceMin, sm.cfg.SpawnDistanceMax)
	agl := rng.Range(sm.cfg.SafeZoneMin(), sm.cfg.SafeZoneMax())
	e.Position = Vec3{
		X: viewer.X + math.Sin(bearing)*dist,
		Y: sm.cfg.WorldY(agl),
		Z: viewer.Z + math.Cos(bearing)*dist,
	}
}

// pickArchetype does a weighted draw; with no archetypes configured it
// falls back to a neutral default so simulation can proceed.
func (sm *SpawnLifecycleManager) pickArchetype(rng *RandomSource) model.Archetype {
	if len(sm.archetypes) == 0 {
		return model.Archetype{
			Name:           "default",
			SpeedFactorMin: 0.8, SpeedFactorMax: 1.2,
			ClimbPerfMin: 0.8, ClimbPerfMax: 1.2,
			MaxClimbRate:   3,
			MaxDescentRate: 3,
			Weight:         1,
		}
	}
	total := 0.0
	for _, a := range sm.archetypes {
		total += a.Weight
	}
	if total <= 0 {
		return sm.archetypes[rng.Intn(len(sm.archetypes))]
	}
	draw := rng.Range(0, total)
	for _, a := range sm.archetypes {
		draw -= a.Weight
		if draw <= 0 {
			return a
		}
	}
	return sm.archetypes[len(sm.archetypes)-1]
}
