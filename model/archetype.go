package model

// LightOffsets positions the three navigation lights relative to the
// entity origin, per model archetype. A zero value (all origins) is the
// identity fallback used when an asset reports degenerate bounds.
type LightOffsets struct {
	Red   Vec3 // port beacon
	Green Vec3 // starboard
	White Vec3 // tail strobe
}

// Archetype describes one visual model family: which asset to load,
// the ranges its performance profile is drawn from, and where its
// lights sit. Archetypes are read-only after scenario load.
type Archetype struct {
	Name  string
	Asset string

	// Inclusive ranges sampled at spawn.
	SpeedFactorMin float64
	SpeedFactorMax float64
	ClimbPerfMin   float64
	ClimbPerfMax   float64
	MaxClimbRate   float64
	MaxDescentRate float64

	Lights LightOffsets

	// Weight biases random archetype selection; zero means never picked
	// unless it is the only archetype.
	Weight float64
}
