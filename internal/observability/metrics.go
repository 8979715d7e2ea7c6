package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SimCollector bundles Prometheus metrics for the simulation loop and
// implements core.MetricsRecorder. Everything is recorded from the tick
// goroutine; Prometheus collectors are safe for the scrape side.
type SimCollector struct {
	gatherer prometheus.Gatherer

	TickDuration prometheus.Histogram

	Population   prometheus.Gauge
	LoadedChunks prometheus.Gauge
	WindStrength prometheus.Gauge
	TimeOfDay    prometheus.Gauge

	Respawns          prometheus.Counter
	ChunksCreated     prometheus.Counter
	ChunksDestroyed   prometheus.Counter
	AssetLoadFailures prometheus.Counter
}

// NewSimCollector registers simulation Prometheus metrics against the
// provided registerer, defaulting to the global Prometheus registry
// when nil.
func NewSimCollector(reg prometheus.Registerer) (*SimCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	tickDuration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sim_tick_duration_seconds",
		Help:    "Wall-clock cost of one simulation tick in seconds.",
		Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
	}), "sim_tick_duration_seconds")
	if err != nil {
		return nil, err
	}

	population, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sim_population",
		Help: "Current number of simulated flight entities.",
	}), "sim_population")
	if err != nil {
		return nil, err
	}
	loadedChunks, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sim_loaded_chunks",
		Help: "Current number of resident terrain chunks.",
	}), "sim_loaded_chunks")
	if err != nil {
		return nil, err
	}
	windStrength, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sim_wind_strength",
		Help: "Current wind strength.",
	}), "sim_wind_strength")
	if err != nil {
		return nil, err
	}
	timeOfDay, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sim_time_of_day",
		Help: "Normalized time of day in [0, 1); 0.5 is solar noon.",
	}), "sim_time_of_day")
	if err != nil {
		return nil, err
	}

	respawns, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sim_respawns_total",
		Help: "Total number of entity respawns after leaving the despawn box.",
	}), "sim_respawns_total")
	if err != nil {
		return nil, err
	}
	chunksCreated, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sim_chunks_created_total",
		Help: "Total number of terrain chunks created.",
	}), "sim_chunks_created_total")
	if err != nil {
		return nil, err
	}
	chunksDestroyed, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sim_chunks_destroyed_total",
		Help: "Total number of terrain chunks destroyed.",
	}), "sim_chunks_destroyed_total")
	if err != nil {
		return nil, err
	}
	assetLoadFailures, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sim_asset_load_failures_total",
		Help: "Total number of visual asset loads that fell back to the placeholder.",
	}), "sim_asset_load_failures_total")
	if err != nil {
		return nil, err
	}

	return &SimCollector{
		gatherer:          gatherer,
		TickDuration:      tickDuration,
		Population:        population,
		LoadedChunks:      loadedChunks,
		WindStrength:      windStrength,
		TimeOfDay:         timeOfDay,
		Respawns:          respawns,
		ChunksCreated:     chunksCreated,
		ChunksDestroyed:   chunksDestroyed,
		AssetLoadFailures: assetLoadFailures,
	}, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (c *SimCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ObserveTick satisfies core.MetricsRecorder.
func (c *SimCollector) ObserveTick(d time.Duration) {
	if c == nil || c.TickDuration == nil {
		return
	}
	c.TickDuration.Observe(d.Seconds())
}

func (c *SimCollector) SetPopulation(n int) {
	if c == nil || c.Population == nil {
		return
	}
	c.Population.Set(float64(n))
}

func (c *SimCollector) IncRespawns() {
	if c == nil || c.Respawns == nil {
		return
	}
	c.Respawns.Inc()
}

func (c *SimCollector) AddChunkChurn(created, destroyed int) {
	if c == nil {
		return
	}
	if c.ChunksCreated != nil && created > 0 {
		c.ChunksCreated.Add(float64(created))
	}
	if c.ChunksDestroyed != nil && destroyed > 0 {
		c.ChunksDestroyed.Add(float64(destroyed))
	}
}

func (c *SimCollector) SetLoadedChunks(n int) {
	if c == nil || c.LoadedChunks == nil {
		return
	}
	c.LoadedChunks.Set(float64(n))
}

func (c *SimCollector) SetWindStrength(s float64) {
	if c == nil || c.WindStrength == nil {
		return
	}
	c.WindStrength.Set(s)
}

func (c *SimCollector) SetTimeOfDay(t float64) {
	if c == nil || c.TimeOfDay == nil {
		return
	}
	c.TimeOfDay.Set(t)
}

func (c *SimCollector) IncAssetLoadFailures() {
	if c == nil || c.AssetLoadFailures == nil {
		return
	}
	c.AssetLoadFailures.Inc()
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
