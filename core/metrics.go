package core

import "time"

// MetricsRecorder receives simulation measurements. The indirection
// keeps core free of any metrics dependency; the observability package
// provides the Prometheus-backed implementation.
type MetricsRecorder interface {
	ObserveTick(d time.Duration)
	SetPopulation(n int)
	IncRespawns()
	AddChunkChurn(created, destroyed int)
	SetLoadedChunks(n int)
	SetWindStrength(s float64)
	SetTimeOfDay(t float64)
	IncAssetLoadFailures()
}

// NoopMetrics discards all measurements.
type NoopMetrics struct{}

func (NoopMetrics) ObserveTick(time.Duration) {}
func (NoopMetrics) SetPopulation(int)         {}
func (NoopMetrics) IncRespawns()              {}
func (NoopMetrics) AddChunkChurn(int, int)    {}
func (NoopMetrics) SetLoadedChunks(int)       {}
func (NoopMetrics) SetWindStrength(float64)   {}
func (NoopMetrics) SetTimeOfDay(float64)      {}
func (NoopMetrics) IncAssetLoadFailures()     {}
