package core

// WorldConfig bundles every tunable of the simulation core. Components
// read from it but never write; a context owns exactly one copy so
// multiple independent simulations can coexist.
type WorldConfig struct {
	// GroundLevel is the world-space Y of the ground reference plane.
	// Heights elsewhere in this config are AGL (above this plane).
	GroundLevel float64

	// Hard altitude envelope and the avoidance margins inside it.
	MinHeightAGL  float64
	MaxHeightAGL  float64
	AvoidanceDist float64 // danger-zone depth at floor and ceiling

	// Waypoint generation.
	WaypointDistanceMin float64
	WaypointDistanceMax float64
	ArrivalThreshold    float64
	BlendRate           float64 // blend-factor units per second

	// Altitude control.
	AltitudeGain      float64 // proportional constant K_ALT
	AvoidanceGain     float64 // fraction of max rate added per unit urgency
	VerticalSmoothing float64 // lerp factor per reference frame (1/60 s)

	// Cruise speed before the per-entity BaseSpeedFactor.
	CruiseSpeed float64

	// Wind.
	WindChangeInterval float64
	WindStrengthMin    float64
	WindStrengthMax    float64
	WindDirectionStep  float64 // max |direction change| per event
	WindDriftFactor    float64

	// Turbulence.
	TurbulenceInterval float64
	TurbulenceScale    float64

	// Terrain streaming.
	ChunkSize      float64
	ChunkRadius    int
	ChunkLoadLimit float64 // chunk creations per second, 0 = unlimited
	ChunkLoadBurst int

	// Spawning.
	Population       int
	SpawnDistanceMin float64
	SpawnDistanceMax float64
	DespawnBoxSize   float64

	// Celestial clock: full day length in seconds. NightLock pins the
	// clock at midnight when set at construction.
	DayLength float64
}

// DefaultWorldConfig returns the reference tuning. Values are chosen so
// the safe band sits one avoidance margin inside the hard envelope and
// the despawn box comfortably contains the spawn annulus.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		GroundLevel:   0,
		MinHeightAGL:  40,
		MaxHeightAGL:  260,
		AvoidanceDist: 30,

		WaypointDistanceMin: 150,
		WaypointDistanceMax: 600,
		ArrivalThreshold:    18,
		BlendRate:           0.25,

		AltitudeGain:      0.06,
		AvoidanceGain:     0.6,
		VerticalSmoothing: 0.2,

		CruiseSpeed: 28,

		WindChangeInterval: 20,
		WindStrengthMin:    0.5,
		WindStrengthMax:    2.0,
		WindDirectionStep:  0.25 * 3.141592653589793,
		WindDriftFactor:    2.0,

		TurbulenceInterval: 1.5,
		TurbulenceScale:    1.2,

		ChunkSize:      200,
		ChunkRadius:    3,
		ChunkLoadLimit: 0,
		ChunkLoadBurst: 16,

		Population:       12,
		SpawnDistanceMin: 200,
		SpawnDistanceMax: 700,
		DespawnBoxSize:   1600,

		DayLength: 600,
	}
}

// SafeZoneMin returns the lower edge of the waypoint safe band (AGL).
func (c WorldConfig) SafeZoneMin() float64 {
	return c.MinHeightAGL + c.AvoidanceDist
}

// SafeZoneMax returns the upper edge of the waypoint safe band (AGL).
func (c WorldConfig) SafeZoneMax() float64 {
	return c.MaxHeightAGL - c.AvoidanceDist
}

// AGL converts a world-space Y into height above ground.
func (c WorldConfig) AGL(y float64) float64 {
	return y - c.GroundLevel
}

// WorldY converts an AGL height into world-space Y.
func (c WorldConfig) WorldY(agl float64) float64 {
	return agl + c.GroundLevel
}
