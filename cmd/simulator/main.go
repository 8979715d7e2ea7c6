package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/aerialfoundry/skyfleet-simulator/core"
	"github.com/aerialfoundry/skyfleet-simulator/internal/config"
	"github.com/aerialfoundry/skyfleet-simulator/internal/logging"
	"github.com/aerialfoundry/skyfleet-simulator/internal/observability"
	"github.com/aerialfoundry/skyfleet-simulator/model"
	"github.com/aerialfoundry/skyfleet-simulator/timectrl"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file; defaults apply when empty")
	scenarioPath := flag.String("scenario", "", "path to an archetype JSON scenario; overrides the config file")
	seed := flag.Int64("seed", 0, "random seed; overrides the config file, 0 derives one from time")
	duration := flag.Duration("duration", 0, "total simulation duration; overrides the config file, 0 runs until interrupted")
	accelerated := flag.Bool("accelerated", false, "run as fast as possible with a fixed step instead of real time")
	nightLock := flag.Bool("night-lock", false, "pin the celestial clock to midnight")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx, log := logging.WithRunLogger(context.Background(), log)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error(ctx, "failed to load config", logging.String("error", err.Error()))
		os.Exit(1)
	}
	if *scenarioPath != "" {
		cfg.Runner.ScenarioPath = *scenarioPath
	}
	if *seed != 0 {
		cfg.Runner.Seed = *seed
	}
	if *duration != 0 {
		cfg.Runner.DurationSecs = int(duration.Seconds())
	}
	if *accelerated {
		cfg.Runner.Accelerated = true
	}
	if *nightLock {
		cfg.Runner.NightLock = true
	}
	if cfg.Runner.Seed == 0 {
		cfg.Runner.Seed = time.Now().UnixNano()
	}

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	collector, err := observability.NewSimCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		os.Exit(1)
	}
	metricsSrv := serveMetrics(cfg.Runner.MetricsAddr, collector, log)

	archetypes := loadArchetypes(ctx, log, cfg.Runner.ScenarioPath)

	world := cfg.WorldConfig()
	simCtx := core.NewSimulationContext(
		world,
		cfg.Runner.Seed,
		archetypes,
		nil, // no asset pipeline in the headless runner; placeholders throughout
		core.FixedViewer{},
		chunkLogger{log: log},
		nil,
		log,
		collector,
	)
	if cfg.Runner.NightLock {
		simCtx.Clock.SetNightLock(true)
	}

	engine := core.NewEngine(simCtx)
	simCtx.Spawn.SeedPopulation(ctx, simCtx.Fleet, core.Vec3{}, simCtx.Rand)

	log.Info(ctx, "simulation seeded",
		logging.Int("population", simCtx.Fleet.Len()),
		logging.Int("archetypes", len(archetypes)),
		logging.Any("seed", cfg.Runner.Seed),
	)

	tickRate := cfg.Runner.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	tick := time.Second / time.Duration(tickRate)
	mode := timectrl.RealTime
	if cfg.Runner.Accelerated {
		mode = timectrl.Accelerated
	}
	tc := timectrl.NewTimeController(time.Now().UTC(), tick, mode)
	tracer := otel.Tracer("skyfleet-simulator")
	tc.AddListener(func(now time.Time, dt float64) {
		_, span := tracer.Start(ctx, "sim.tick",
			trace.WithAttributes(attribute.Float64("dt_seconds", dt)))
		engine.Tick(dt)
		span.End()
	})

	// Periodic status line, once a simulated second.
	engine.RegisterTickListener(func(tickIndex int) {
		if tickIndex%tickRate != 0 {
			return
		}
		wind := simCtx.Wind.State()
		log.Info(ctx, "tick",
			logging.Int("tick", tickIndex),
			logging.Int("population", simCtx.Fleet.Len()),
			logging.Int("chunks", simCtx.Terrain.LoadedCount()),
			logging.Any("wind_strength", wind.Strength),
			logging.Any("time_of_day", simCtx.Clock.TimeOfDay()),
		)
	})

	runFor := time.Duration(cfg.Runner.DurationSecs) * time.Second
	log.Info(ctx, "starting simulation",
		logging.Any("tick", tick),
		logging.Any("duration", runFor),
		logging.Any("accelerated", cfg.Runner.Accelerated),
	)

	done := tc.Start(runFor)
	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	select {
	case <-done:
	case <-stopCtx.Done():
		log.Info(ctx, "interrupted")
	}

	log.Info(ctx, "simulation complete",
		logging.Any("sim_time", tc.Now()),
		logging.Int("population", simCtx.Fleet.Len()),
	)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
}

// chunkLogger is the headless stand-in for a renderer's terrain layer.
type chunkLogger struct {
	log logging.Logger
}

func (c chunkLogger) CreateChunk(key model.ChunkKey) model.VisualHandle {
	c.log.Debug(context.Background(), "chunk created", logging.Int("x", key.X), logging.Int("z", key.Z))
	return model.PlaceholderHandle
}

func (c chunkLogger) DestroyChunk(chunk model.TerrainChunk) {
	c.log.Debug(context.Background(), "chunk destroyed", logging.Int("x", chunk.Key.X), logging.Int("z", chunk.Key.Z))
}

func serveMetrics(addr string, collector *observability.SimCollector, log logging.Logger) *http.Server {
	if addr == "" || collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}

// loadArchetypes reads the archetype scenario. A missing or broken file
// is not fatal: the spawn layer falls back to its neutral default.
func loadArchetypes(ctx context.Context, log logging.Logger, path string) []model.Archetype {
	if path == "" {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		log.Warn(ctx, "skipping archetype scenario", logging.String("path", path), logging.String("error", err.Error()))
		return nil
	}
	defer f.Close()

	scenario, err := core.LoadScenario(f)
	if err != nil {
		log.Warn(ctx, "failed to parse archetype scenario", logging.String("path", path), logging.String("error", err.Error()))
		return nil
	}

	log.Info(ctx, "loaded archetype scenario",
		logging.String("path", path),
		logging.Int("count", len(scenario.Archetypes)),
	)
	return scenario.Archetypes
}
