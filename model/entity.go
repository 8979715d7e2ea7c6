package model

// VisualHandle is an opaque reference to a renderer-owned visual asset.
// The core moves and orients handles but never inspects them beyond the
// optional Bounds query used for frustum visibility.
type VisualHandle interface{}

// PlaceholderHandle is substituted when an asset fails to load so that
// spawning never blocks on the renderer (the entity keeps full physics
// fidelity and simply renders as a placeholder).
var PlaceholderHandle VisualHandle = placeholder{}

type placeholder struct{}

// PerformanceProfile captures the immutable flight characteristics
// assigned to an entity at spawn.
type PerformanceProfile struct {
	BaseSpeedFactor float64 // multiplier on cruise speed
	ClimbPerf       float64 // multiplier on proportional altitude gain
	MaxClimbRate    float64 // metres per second, positive
	MaxDescentRate  float64 // metres per second, positive
}

// Vec3 is a point or direction in world space. Y is up; height above
// ground (AGL) is Y minus the world ground level.
type Vec3 struct {
	X, Y, Z float64
}

// FlightEntity is the plain-data record for one simulated flyer.
// Controllers mutate it in place; presentation state (the visual
// handle, light offsets) is referenced but never interpreted here.
type FlightEntity struct {
	Slot   int    // dense-arena index, stable for the entity's lifetime
	ID     string // per-run identity, fresh on every respawn
	Handle VisualHandle

	Position      Vec3
	Heading       float64 // radians, yaw about Y
	Pitch         float64 // radians
	Roll          float64 // radians
	VerticalSpeed float64 // metres per second, positive up

	Profile   PerformanceProfile
	Archetype string

	// Navigation state. SmoothWaypoint is the live steering target
	// produced by the Bézier blend; controllers steer toward it, never
	// toward TargetWaypoint directly.
	CurrentWaypoint  Vec3
	TargetWaypoint   Vec3
	ControlPoint     Vec3
	BlendFactor      float64 // in [0,1], monotone between regenerations
	SmoothWaypoint   Vec3
	WaypointTimer    float64
	WaypointInterval float64

	// Orientation momentum (internal smoothing state).
	YawVelocity   float64
	RollVelocity  float64
	PitchVelocity float64

	// Turbulence state.
	TurbulenceTimer  float64
	TurbulenceOffset Vec3

	// LightTimer drives blink patterns and phase-offsets the wobble
	// sinusoids; it only feeds presentation.
	LightTimer float64

	Visible bool
}

// ResetMomentum zeroes all smoothing state; called on respawn so a
// recycled entity does not inherit angular momentum from its previous
// life.
func (e *FlightEntity) ResetMomentum() {
	e.YawVelocity = 0
	e.RollVelocity = 0
	e.PitchVelocity = 0
	e.VerticalSpeed = 0
	e.TurbulenceTimer = 0
	e.TurbulenceOffset = Vec3{}
}

// Transform is the per-entity pose handed to the rendering collaborator
// each tick. Rotation applies yaw, then pitch, then roll.
type Transform struct {
	Position Vec3
	Heading  float64
	Pitch    float64
	Roll     float64
	Scale    float64
	Visible  bool
}

// LightState carries the per-tick navigation light intensities for one
// entity. Values are already scaled by the day/night multiplier.
type LightState struct {
	Red   float64
	Green float64
	White float64
}
