package core

import (
	"math"

	"github.com/aerialfoundry/skyfleet-simulator/model"
)

// NavigationController picks distant goals for each entity and blends
// between successive goals along a quadratic Bézier so turns come out
// curved rather than jittery. Entities steer toward the live
// SmoothWaypoint, never toward the raw target.
type NavigationController struct {
	cfg WorldConfig
}

func NewNavigationController(cfg WorldConfig) *NavigationController {
	return &NavigationController{cfg: cfg}
}

// SelectWaypoint returns a goal at a random distance and bearing from
// origin, with altitude drawn uniformly from the safe band.
func (nc *NavigationController) SelectWaypoint(origin Vec3, rng *RandomSource) Vec3 {
	dist := rng.Range(nc.cfg.WaypointDistanceMin, nc.cfg.WaypointDistanceMax)
	bearing := rng.Angle()
	agl := rng.Range(nc.cfg.SafeZoneMin(), nc.cfg.SafeZoneMax())
	return Vec3{
		X: origin.X + math.Sin(bearing)*dist,
		Y: nc.cfg.WorldY(agl),
		Z: origin.Z + math.Cos(bearing)*dist,
	}
}

// Advance updates the entity's steering target for this tick.
//
// When the entity has closed within the arrival threshold of its
// smooth waypoint and the previous blend has completed, a new target
// is generated:
//  1. the old smooth waypoint becomes the blend origin,
//  2. the control point sits at the segment midpoint, displaced
//     sideways by 30-70% of segment length (side chosen at random) and
//     altitude-clamped into the safe band,
//  3. the blend factor resets to zero.
//
// Every tick the blend factor advances by BlendRate·dt (the reference
// used a fixed per-frame step; normalizing by dt keeps blend speed
// frame-rate-independent), is shaped ease-out-cubic, and the smooth
// waypoint is re-evaluated on the Bézier.
func (nc *NavigationController) Advance(e *model.FlightEntity, dt float64, rng *RandomSource) {
	e.WaypointTimer += dt
	arrived := Distance(e.Position, e.SmoothWaypoint) < nc.cfg.ArrivalThreshold && e.BlendFactor >= 1
	// The timer is the stall fallback: wind drift can hold an entity
	// just outside the arrival threshold indefinitely, so a goal that
	// outlives its interval is regenerated anyway.
	stalled := e.WaypointInterval > 0 && e.WaypointTimer >= e.WaypointInterval && e.BlendFactor >= 1
	if arrived || stalled {
		nc.regenerate(e, rng)
	}

	e.BlendFactor = Clamp(e.BlendFactor+nc.cfg.BlendRate*dt, 0, 1)
	eased := EaseOutCubic(e.BlendFactor)
	e.SmoothWaypoint = QuadraticBezier(e.CurrentWaypoint, e.ControlPoint, e.TargetWaypoint, eased)
}

// SteeringTarget returns the smooth waypoint with its altitude clamped
// back into the safe band at read time. The stored waypoints are never
// mutated here: the Bézier may legitimately pass outside the band
// mid-blend, and the invariants only bind what controllers consume.
func (nc *NavigationController) SteeringTarget(e *model.FlightEntity) Vec3 {
	t := e.SmoothWaypoint
	t.Y = nc.cfg.WorldY(Clamp(nc.cfg.AGL(t.Y), nc.cfg.SafeZoneMin(), nc.cfg.SafeZoneMax()))
	return t
}

// DesiredHeading is the bearing toward the clamped steering target.
func (nc *NavigationController) DesiredHeading(e *model.FlightEntity) float64 {
	return BearingTo(e.Position, nc.SteeringTarget(e))
}

// InitWaypoints seeds a freshly spawned entity: both waypoints start at
// a goal chosen from the spawn position and the blend is complete, so
// the first regeneration happens naturally on arrival.
func (nc *NavigationController) InitWaypoints(e *model.FlightEntity, rng *RandomSource) {
	goal := nc.SelectWaypoint(e.Position, rng)
	e.CurrentWaypoint = goal
	e.TargetWaypoint = goal
	e.ControlPoint = goal
	e.SmoothWaypoint = goal
	e.BlendFactor = 1
	e.WaypointTimer = 0
	e.WaypointInterval = rng.Range(25, 45)
}

func (nc *NavigationController) regenerate(e *model.FlightEntity, rng *RandomSource) {
	e.CurrentWaypoint = e.SmoothWaypoint
	e.TargetWaypoint = nc.SelectWaypoint(e.Position, rng)

	// Perpendicular control point: midpoint of the direct segment,
	// displaced left or right by 30-70% of the segment length.
	seg := Sub(e.TargetWaypoint, e.CurrentWaypoint)
	mid := Add(e.CurrentWaypoint, Scale(seg, 0.5))
	length := HorizontalDistance(e.CurrentWaypoint, e.TargetWaypoint)
	perp := Normalize(Vec3{X: -seg.Z, Z: seg.X})
	offset := rng.Range(0.3, 0.7) * length * rng.Sign()

	cp := Add(mid, Scale(perp, offset))
	cp.Y = nc.cfg.WorldY(Clamp(nc.cfg.AGL(cp.Y), nc.cfg.SafeZoneMin(), nc.cfg.SafeZoneMax()))
	e.ControlPoint = cp
	e.BlendFactor = 0
	e.WaypointTimer = 0
}
