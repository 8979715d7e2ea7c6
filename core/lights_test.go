package core

import (
	"math"
	"testing"

	"github.com/aerialfoundry/skyfleet-simulator/model"
)

func TestLightsStrobeDoubleFlash(t *testing.T) {
	night := model.CelestialState{LightMultiplier: 1}
	e := &model.FlightEntity{}

	// First flash at the start of the period.
	e.LightTimer = 0.01
	if got := Lights(e, night).White; got != 1 {
		t.Errorf("strobe at t=0.01 = %v, want 1", got)
	}
	// Dark gap between the flashes.
	e.LightTimer = 0.12
	if got := Lights(e, night).White; got != 0 {
		t.Errorf("strobe at t=0.12 = %v, want 0", got)
	}
	// Second flash.
	e.LightTimer = 0.20
	if got := Lights(e, night).White; got != 1 {
		t.Errorf("strobe at t=0.20 = %v, want 1", got)
	}
	// Off for the rest of the period, including the next cycle's gap.
	e.LightTimer = 1.0
	if got := Lights(e, night).White; got != 0 {
		t.Errorf("strobe at t=1.0 = %v, want 0", got)
	}
	e.LightTimer = strobePeriod + 0.01
	if got := Lights(e, night).White; got != 1 {
		t.Errorf("strobe at start of second period = %v, want 1", got)
	}
}

func TestLightsBeaconBlinksAndStaysNonNegative(t *testing.T) {
	night := model.CelestialState{LightMultiplier: 1}
	e := &model.FlightEntity{}

	peakSeen := false
	for i := 0; i < 200; i++ {
		e.LightTimer = float64(i) * 0.01
		red := Lights(e, night).Red
		if red < 0 || red > 1 {
			t.Fatalf("beacon intensity %v at t=%v, outside [0, 1]", red, e.LightTimer)
		}
		if red > 0.95 {
			peakSeen = true
		}
	}
	if !peakSeen {
		t.Fatal("beacon never reached its bright phase over 2 s")
	}

	// Quarter period of the 1.5 Hz beacon is fully bright.
	e.LightTimer = 1 / (4 * beaconHz)
	if got := Lights(e, night).Red; math.Abs(got-1) > 1e-9 {
		t.Errorf("beacon at quarter period = %v, want 1", got)
	}
}

func TestLightsFadeWithDaylight(t *testing.T) {
	e := &model.FlightEntity{LightTimer: 0.01}

	night := Lights(e, model.CelestialState{LightMultiplier: 1})
	day := Lights(e, model.CelestialState{LightMultiplier: 0.2})

	if day.Green >= night.Green || day.White >= night.White {
		t.Fatalf("daylight did not dim lights: day %+v, night %+v", day, night)
	}
	if math.Abs(night.Green-0.8) > 1e-9 {
		t.Errorf("green marker at night = %v, want steady 0.8", night.Green)
	}
}

func TestLightOffsetsForUnknownArchetypeIsIdentity(t *testing.T) {
	archetypes := map[string]model.Archetype{
		"known": {Name: "known", Lights: model.LightOffsets{Red: model.Vec3{X: -3}}},
	}

	if got := LightOffsetsFor(archetypes, "known"); got.Red.X != -3 {
		t.Errorf("known archetype offsets = %+v, want stored layout", got)
	}
	if got := LightOffsetsFor(archetypes, "mystery"); got != (model.LightOffsets{}) {
		t.Errorf("unknown archetype offsets = %+v, want identity", got)
	}
}
