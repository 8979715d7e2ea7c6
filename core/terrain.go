package core

import (
	"math"

	"golang.org/x/time/rate"

	"github.com/aerialfoundry/skyfleet-simulator/model"
)

// ChunkSink is the terrain collaborator. CreateChunk instantiates the
// shared geometry at a chunk position and returns the visual handle;
// DestroyChunk retires the instance. The geometry itself is shared
// across chunks and survives unloads.
type ChunkSink interface {
	CreateChunk(key model.ChunkKey) model.VisualHandle
	DestroyChunk(chunk model.TerrainChunk)
}

// TerrainStreamer keeps a square of terrain tiles loaded around a
// moving reference point. Work happens only when the reference crosses
// a chunk boundary; repeated updates within one chunk are no-ops.
type TerrainStreamer struct {
	cfg  WorldConfig
	sink ChunkSink

	chunks  map[model.ChunkKey]model.TerrainChunk
	center  model.ChunkKey
	primed  bool
	limiter *rate.Limiter

	// Counters consumed by the metrics recorder.
	Created   int
	Destroyed int
}

// NewTerrainStreamer builds an empty streamer. A zero ChunkLoadLimit
// disables rate limiting; otherwise chunk creation is spread across
// ticks so a fast-moving viewpoint cannot stall a frame.
func NewTerrainStreamer(cfg WorldConfig, sink ChunkSink) *TerrainStreamer {
	limit := rate.Inf
	if cfg.ChunkLoadLimit > 0 {
		limit = rate.Limit(cfg.ChunkLoadLimit)
	}
	burst := cfg.ChunkLoadBurst
	if burst <= 0 {
		burst = 1
	}
	return &TerrainStreamer{
		cfg:     cfg,
		sink:    sink,
		chunks:  make(map[model.ChunkKey]model.TerrainChunk),
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Update reconciles the loaded set against the viewpoint. The early
// exit on an unchanged centre chunk is the key performance property:
// streaming work happens only on boundary crossings.
func (ts *TerrainStreamer) Update(viewpoint Vec3) {
	center := model.ChunkKey{
		X: int(math.Floor(viewpoint.X / ts.cfg.ChunkSize)),
		Z: int(math.Floor(viewpoint.Z / ts.cfg.ChunkSize)),
	}
	if ts.primed && center == ts.center && len(ts.chunks) > 0 {
		return
	}
	ts.center = center
	ts.primed = true

	r := ts.cfg.ChunkRadius
	desired := make(map[model.ChunkKey]struct{}, (2*r+1)*(2*r+1))
	for dx := -r; dx <= r; dx++ {
		for dz := -r; dz <= r; dz++ {
			desired[model.ChunkKey{X: center.X + dx, Z: center.Z + dz}] = struct{}{}
		}
	}

	// Create missing chunks, respecting the load limiter. Chunks that
	// miss the budget stay in the desired set and are picked up on the
	// next boundary crossing or explicit update.
	for key := range desired {
		if _, ok := ts.chunks[key]; ok {
			continue
		}
		if !ts.limiter.Allow() {
			ts.primed = false // force another pass next tick
			break
		}
		chunk := model.TerrainChunk{Key: key}
		if ts.sink != nil {
			chunk.Handle = ts.sink.CreateChunk(key)
		}
		ts.chunks[key] = chunk
		ts.Created++
	}

	// Destroy everything outside the desired square.
	for key, chunk := range ts.chunks {
		if _, ok := desired[key]; ok {
			continue
		}
		if ts.sink != nil {
			ts.sink.DestroyChunk(chunk)
		}
		delete(ts.chunks, key)
		ts.Destroyed++
	}
}

// LoadedCount returns the number of currently loaded chunks.
func (ts *TerrainStreamer) LoadedCount() int {
	return len(ts.chunks)
}

// Loaded reports whether the chunk at key is currently instantiated.
func (ts *TerrainStreamer) Loaded(key model.ChunkKey) bool {
	_, ok := ts.chunks[key]
	return ok
}
