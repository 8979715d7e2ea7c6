package core

import (
	"math"
	"time"

	"github.com/aerialfoundry/skyfleet-simulator/fleet"
	"github.com/aerialfoundry/skyfleet-simulator/internal/logging"
	"github.com/aerialfoundry/skyfleet-simulator/model"
)

// SimulationContext bundles everything one simulation instance owns:
// configuration, the seedable random source, environment models, the
// entity fleet, and the collaborator hooks. No package-level state
// exists anywhere in core, so multiple contexts can run independently
// and tests can drive one deterministically.
type SimulationContext struct {
	Cfg  WorldConfig
	Rand *RandomSource

	Wind    *WindField
	Clock   *CelestialClock
	Fleet   *fleet.Fleet
	Terrain *TerrainStreamer

	Nav    *NavigationController
	Alt    *AltitudeEnvelopeController
	Orient *OrientationController
	Spawn  *SpawnLifecycleManager

	Viewer  ViewerSource
	Frustum FrustumTester
	Metrics MetricsRecorder

	Archetypes map[string]model.Archetype
}

// Engine advances a simulation context one tick at a time, in the
// fixed order: recycle → navigation → altitude → orientation → wind
// drift → terrain streaming → celestial clock.
type Engine struct {
	ctx           *SimulationContext
	tickListeners []func(int)
	tickIndex     int
}

// NewEngine wires an engine around a context, filling in noop
// collaborators for anything left nil.
func NewEngine(ctx *SimulationContext) *Engine {
	if ctx.Metrics == nil {
		ctx.Metrics = NoopMetrics{}
	}
	if ctx.Viewer == nil {
		ctx.Viewer = FixedViewer{}
	}
	return &Engine{ctx: ctx}
}

// Context exposes the simulation context, mainly for tests and the
// runner's render-side reads.
func (en *Engine) Context() *SimulationContext {
	return en.ctx
}

// RegisterTickListener adds a callback invoked at the end of every
// tick with the tick index.
func (en *Engine) RegisterTickListener(fn func(int)) {
	en.tickListeners = append(en.tickListeners, fn)
}

// Tick runs one simulation step. dt is wall-clock seconds since the
// previous tick; every per-tick increment in the core scales by it, so
// behaviour is frame-rate independent. Entity failures never interrupt
// other entities or the loop.
func (en *Engine) Tick(dt float64) {
	start := time.Now()
	ctx := en.ctx
	viewer := Vec3(ctx.Viewer.ViewerWorldPosition())

	ctx.Spawn.Recycle(ctx.Fleet, viewer, ctx.Rand)

	wind := ctx.Wind.State()
	drift := ctx.Wind.Drift(dt)

	for _, e := range ctx.Fleet.All() {
		ctx.Nav.Advance(e, dt, ctx.Rand)
		ctx.Alt.Advance(e, dt, ctx.Rand)
		ctx.Orient.Advance(e, dt, wind, ctx.Rand)
		e.Position = Add(e.Position, drift)

		if ctx.Frustum != nil {
			e.Visible = ctx.Frustum.InFrustum(e.Handle)
		} else {
			e.Visible = true
		}
	}

	ctx.Wind.Advance(dt, ctx.Rand)
	ctx.Terrain.Update(viewer)
	ctx.Clock.Advance(dt)

	ctx.Metrics.ObserveTick(time.Since(start))
	ctx.Metrics.SetPopulation(ctx.Fleet.Len())
	ctx.Metrics.SetLoadedChunks(ctx.Terrain.LoadedCount())
	ctx.Metrics.AddChunkChurn(ctx.Terrain.Created, ctx.Terrain.Destroyed)
	ctx.Terrain.Created, ctx.Terrain.Destroyed = 0, 0
	ctx.Metrics.SetWindStrength(ctx.Wind.State().Strength)
	ctx.Metrics.SetTimeOfDay(ctx.Clock.TimeOfDay())

	for _, fn := range en.tickListeners {
		fn(en.tickIndex)
	}
	en.tickIndex++
}

// EntityTransform produces the pose handed to the renderer: position,
// yaw-pitch-roll with the turbulence wobble layered on top, and a
// uniform scale that grows with height above ground.
func (en *Engine) EntityTransform(e *model.FlightEntity) model.Transform {
	cfg := en.ctx.Cfg
	wind := en.ctx.Wind.State()
	wRoll, wPitch, wHeading := Wobble(e, wind)

	heightRatio := Clamp(
		(cfg.AGL(e.Position.Y)-cfg.MinHeightAGL)/(cfg.MaxHeightAGL-cfg.MinHeightAGL),
		0, 1,
	)

	return model.Transform{
		Position: e.Position,
		Heading:  WrapToPi(e.Heading + wHeading),
		Pitch:    Clamp(e.Pitch+wPitch, -math.Pi/2, math.Pi/2),
		Roll:     e.Roll + wRoll,
		Scale:    1 + heightRatio*1.5,
		Visible:  e.Visible,
	}
}

// EntityLights produces the per-tick navigation light intensities.
func (en *Engine) EntityLights(e *model.FlightEntity) model.LightState {
	return Lights(e, en.ctx.Clock.State())
}

// NewSimulationContext assembles a fully wired context from config,
// seed, archetypes and collaborators. chunkSink and frustum may be nil.
func NewSimulationContext(
	cfg WorldConfig,
	seed int64,
	archetypes []model.Archetype,
	loader AssetLoader,
	viewer ViewerSource,
	chunkSink ChunkSink,
	frustum FrustumTester,
	log logging.Logger,
	metrics MetricsRecorder,
) *SimulationContext {
	rng := NewRandomSource(seed)
	nav := NewNavigationController(cfg)

	byName := make(map[string]model.Archetype, len(archetypes))
	for _, a := range archetypes {
		byName[a.Name] = a
	}

	ctx := &SimulationContext{
		Cfg:        cfg,
		Rand:       rng,
		Wind:       NewWindField(cfg, rng),
		Clock:      NewCelestialClock(cfg.DayLength, 0.30),
		Fleet:      fleet.New(),
		Terrain:    NewTerrainStreamer(cfg, chunkSink),
		Nav:        nav,
		Alt:        NewAltitudeEnvelopeController(cfg, nav),
		Orient:     NewOrientationController(cfg, nav),
		Viewer:     viewer,
		Frustum:    frustum,
		Metrics:    metrics,
		Archetypes: byName,
	}
	ctx.Spawn = NewSpawnLifecycleManager(cfg, nav, loader, archetypes, log, metrics)
	return ctx
}
