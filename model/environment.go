package model

// WindState is the process-wide wind snapshot. Mutated only by the
// WindField; everyone else reads a copy taken once per tick.
type WindState struct {
	Direction   float64 // radians, world XZ plane
	Strength    float64 // dimensionless, [0.5, 2.0] after any change
	ChangeTimer float64 // seconds until the next step change
}

// CelestialState is the derived, per-tick output of the celestial
// clock. Everything here is a pure function of TimeOfDay and is
// recomputed every tick, never stored as authoritative state.
type CelestialState struct {
	TimeOfDay float64 // [0, 1), 0 = midnight

	SunPosition  Vec3
	MoonPosition Vec3
	SunVisible   bool
	MoonVisible  bool

	// Blend weights for sky/fog/ambient interpolation. They sum to
	// roughly 1 across the cycle but are individually smooth ramps.
	DayWeight    float64
	SunsetWeight float64
	NightWeight  float64

	// LightMultiplier scales navigation-light intensity: 1 at night,
	// dimmer in daylight.
	LightMultiplier float64
}

// ChunkKey identifies a terrain tile by integer chunk coordinates.
type ChunkKey struct {
	X, Z int
}

// TerrainChunk pairs a chunk key with its renderer-owned handle.
// Geometry is shared across all chunks and never owned per-chunk.
type TerrainChunk struct {
	Key    ChunkKey
	Handle VisualHandle
}
