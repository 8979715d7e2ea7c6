package core

import (
	"testing"

	"github.com/aerialfoundry/skyfleet-simulator/model"
)

func altitudeTestEntity(cfg WorldConfig, agl float64) *model.FlightEntity {
	e := &model.FlightEntity{
		Position: Vec3{Y: cfg.WorldY(agl)},
		Profile: model.PerformanceProfile{
			BaseSpeedFactor: 1,
			ClimbPerf:       1,
			MaxClimbRate:    1,
			MaxDescentRate:  1,
		},
	}
	e.SmoothWaypoint = Vec3{X: 1000, Y: e.Position.Y, Z: 1000}
	e.TargetWaypoint = e.SmoothWaypoint
	return e
}

func TestAltitudeSeeksWaypointAltitude(t *testing.T) {
	cfg := DefaultWorldConfig()
	nav := NewNavigationController(cfg)
	ac := NewAltitudeEnvelopeController(cfg, nav)
	rng := NewRandomSource(21)

	e := altitudeTestEntity(cfg, 100)
	target := cfg.WorldY(200)
	e.SmoothWaypoint.Y = target
	e.TargetWaypoint.Y = target

	start := e.Position.Y
	for i := 0; i < 300; i++ { // 5 s at 60 Hz
		ac.Advance(e, 1.0/60, rng)
	}

	if e.Position.Y <= start {
		t.Fatalf("altitude did not rise toward target: %v -> %v", start, e.Position.Y)
	}
	// MaxClimbRate is 1 m/s, so 5 s gains at most 5 m.
	if gained := e.Position.Y - start; gained > 5+1e-6 {
		t.Fatalf("gained %v m in 5 s, exceeds MaxClimbRate budget", gained)
	}
	if e.VerticalSpeed <= 0 {
		t.Fatalf("VerticalSpeed = %v while climbing, want positive", e.VerticalSpeed)
	}
}

func TestAltitudeVerticalSpeedNeverExceedsLimits(t *testing.T) {
	cfg := DefaultWorldConfig()
	nav := NewNavigationController(cfg)
	ac := NewAltitudeEnvelopeController(cfg, nav)
	rng := NewRandomSource(22)

	e := altitudeTestEntity(cfg, 60) // inside the floor danger zone
	for i := 0; i < 600; i++ {
		ac.Advance(e, 1.0/60, rng)
		if e.VerticalSpeed > e.Profile.MaxClimbRate+1e-9 || e.VerticalSpeed < -e.Profile.MaxDescentRate-1e-9 {
			t.Fatalf("VerticalSpeed = %v at step %d, outside [%v, %v]",
				e.VerticalSpeed, i, -e.Profile.MaxDescentRate, e.Profile.MaxClimbRate)
		}
	}
}

func TestAltitudeRecoversFromFloorDangerZone(t *testing.T) {
	cfg := DefaultWorldConfig()
	nav := NewNavigationController(cfg)
	ac := NewAltitudeEnvelopeController(cfg, nav)
	rng := NewRandomSource(23)

	e := altitudeTestEntity(cfg, cfg.MinHeightAGL+5)
	// Waypoint altitude also near the floor, the pathological case.
	e.SmoothWaypoint.Y = e.Position.Y
	e.TargetWaypoint.Y = e.Position.Y

	for i := 0; i < 3600; i++ { // 60 s
		ac.Advance(e, 1.0/60, rng)
	}

	agl := cfg.AGL(e.Position.Y)
	if agl < cfg.SafeZoneMin() {
		t.Fatalf("altitude = %v AGL after 60 s, still below safe band %v", agl, cfg.SafeZoneMin())
	}
	// The threatened waypoint altitude was relocated into the upper half.
	mid := (cfg.SafeZoneMin() + cfg.SafeZoneMax()) / 2
	if wpAGL := cfg.AGL(e.TargetWaypoint.Y); wpAGL < mid {
		t.Fatalf("relocated waypoint altitude = %v AGL, want ≥ %v", wpAGL, mid)
	}
}

func TestAltitudeDefensiveClampHoldsHardEnvelope(t *testing.T) {
	cfg := DefaultWorldConfig()
	nav := NewNavigationController(cfg)
	ac := NewAltitudeEnvelopeController(cfg, nav)
	rng := NewRandomSource(24)

	e := altitudeTestEntity(cfg, cfg.MinHeightAGL-20) // spawned broken, below the floor
	ac.Advance(e, 1.0/60, rng)

	if agl := cfg.AGL(e.Position.Y); agl < cfg.MinHeightAGL {
		t.Fatalf("altitude = %v AGL after clamp, below hard floor %v", agl, cfg.MinHeightAGL)
	}
	if e.VerticalSpeed < 0 {
		t.Fatalf("VerticalSpeed = %v at the floor, want ≥ 0", e.VerticalSpeed)
	}
}

func TestAltitudeCeilingPushesDown(t *testing.T) {
	cfg := DefaultWorldConfig()
	nav := NewNavigationController(cfg)
	ac := NewAltitudeEnvelopeController(cfg, nav)
	rng := NewRandomSource(25)

	e := altitudeTestEntity(cfg, cfg.MaxHeightAGL-5)
	e.SmoothWaypoint.Y = e.Position.Y
	e.TargetWaypoint.Y = e.Position.Y

	start := e.Position.Y
	for i := 0; i < 600; i++ {
		ac.Advance(e, 1.0/60, rng)
	}

	if e.Position.Y >= start {
		t.Fatalf("altitude did not descend from ceiling danger zone: %v -> %v", start, e.Position.Y)
	}
	mid := (cfg.SafeZoneMin() + cfg.SafeZoneMax()) / 2
	if wpAGL := cfg.AGL(e.TargetWaypoint.Y); wpAGL > mid {
		t.Fatalf("relocated waypoint altitude = %v AGL, want ≤ %v", wpAGL, mid)
	}
}
