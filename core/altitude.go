package core

import (
	"github.com/aerialfoundry/skyfleet-simulator/model"
)

// AltitudeEnvelopeController decides each entity's vertical speed.
// Proportional waypoint-seeking and danger-zone avoidance are additive:
// near a hard limit the avoidance term dominates without switching off
// the seek term, which keeps the transition smooth.
type AltitudeEnvelopeController struct {
	cfg WorldConfig
	nav *NavigationController
}

func NewAltitudeEnvelopeController(cfg WorldConfig, nav *NavigationController) *AltitudeEnvelopeController {
	return &AltitudeEnvelopeController{cfg: cfg, nav: nav}
}

// Advance computes and integrates this tick's vertical speed.
func (ac *AltitudeEnvelopeController) Advance(e *model.FlightEntity, dt float64, rng *RandomSource) {
	agl := ac.cfg.AGL(e.Position.Y)
	targetAGL := ac.cfg.AGL(ac.nav.SteeringTarget(e).Y)

	// Proportional seek toward the steering target's altitude.
	desired := (targetAGL - agl) * ac.cfg.AltitudeGain * e.Profile.ClimbPerf

	floorDist := agl - ac.cfg.MinHeightAGL
	ceilingDist := ac.cfg.MaxHeightAGL - agl

	if floorDist < ac.cfg.AvoidanceDist {
		urgency := 1 - floorDist/ac.cfg.AvoidanceDist
		desired += e.Profile.MaxClimbRate * urgency * ac.cfg.AvoidanceGain
		// Deep in the danger zone the waypoint itself is the problem:
		// relocate its altitude to the opposite half of the safe band,
		// otherwise proportional seek keeps dragging the entity back
		// into the boundary and it oscillates there.
		if floorDist < ac.cfg.AvoidanceDist*0.5 {
			ac.relocateWaypointAltitude(e, rng, true)
		}
	}
	if ceilingDist < ac.cfg.AvoidanceDist {
		urgency := 1 - ceilingDist/ac.cfg.AvoidanceDist
		desired -= e.Profile.MaxDescentRate * urgency * ac.cfg.AvoidanceGain
		if ceilingDist < ac.cfg.AvoidanceDist*0.5 {
			ac.relocateWaypointAltitude(e, rng, false)
		}
	}

	desired = Clamp(desired, -e.Profile.MaxDescentRate, e.Profile.MaxClimbRate)

	// Smooth toward the decision. The reference lerp factor of 0.2 is
	// per 1/60 s frame; scale to dt so responsiveness is frame-rate
	// independent.
	alpha := Clamp(ac.cfg.VerticalSmoothing*dt*60, 0, 1)
	e.VerticalSpeed = Lerp(e.VerticalSpeed, desired, alpha)

	e.Position.Y += e.VerticalSpeed * dt

	// Defensive clamp. Avoidance is expected to keep altitude bounded
	// on its own; this only catches extreme parameter combinations.
	minY := ac.cfg.WorldY(ac.cfg.MinHeightAGL)
	maxY := ac.cfg.WorldY(ac.cfg.MaxHeightAGL)
	if e.Position.Y < minY {
		e.Position.Y = minY
		if e.VerticalSpeed < 0 {
			e.VerticalSpeed = 0
		}
	} else if e.Position.Y > maxY {
		e.Position.Y = maxY
		if e.VerticalSpeed > 0 {
			e.VerticalSpeed = 0
		}
	}
}

// relocateWaypointAltitude rewrites the target and smooth waypoint
// altitudes into the half of the safe band away from the threatened
// limit, breaking the seek/avoidance feedback loop.
func (ac *AltitudeEnvelopeController) relocateWaypointAltitude(e *model.FlightEntity, rng *RandomSource, nearFloor bool) {
	mid := (ac.cfg.SafeZoneMin() + ac.cfg.SafeZoneMax()) / 2
	var agl float64
	if nearFloor {
		agl = rng.Range(mid, ac.cfg.SafeZoneMax())
	} else {
		agl = rng.Range(ac.cfg.SafeZoneMin(), mid)
	}
	y := ac.cfg.WorldY(agl)
	e.TargetWaypoint.Y = y
	e.SmoothWaypoint.Y = y
}
