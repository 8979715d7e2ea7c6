package core

import (
	"math"

	"github.com/aerialfoundry/skyfleet-simulator/model"
)

// Navigation light timing. The red beacon blinks at ~1.5 Hz, the white
// strobe double-flashes on a 2 s period, and the green marker burns
// steady. All intensities scale with the celestial night multiplier so
// lights fade in daylight.
const (
	beaconHz     = 1.5
	strobePeriod = 2.0
	strobeFlash  = 0.06 // duration of each strobe flash
	strobeGap    = 0.18 // start of the second flash within the period
)

// Lights computes the per-tick navigation light intensities for an
// entity from its light timer and the day/night multiplier.
func Lights(e *model.FlightEntity, sky model.CelestialState) model.LightState {
	t := e.LightTimer

	// Beacon: sharpened sine so the blink has a crisp on-phase.
	beacon := math.Sin(2 * math.Pi * beaconHz * t)
	if beacon < 0 {
		beacon = 0
	}
	beacon = beacon * beacon

	// Strobe: two brief flashes at the start of each period.
	phase := math.Mod(t, strobePeriod)
	strobe := 0.0
	if phase < strobeFlash || (phase >= strobeGap && phase < strobeGap+strobeFlash) {
		strobe = 1
	}

	m := sky.LightMultiplier
	return model.LightState{
		Red:   beacon * m,
		Green: 0.8 * m,
		White: strobe * m,
	}
}

// LightOffsetsFor resolves the light layout for an archetype name,
// falling back to identity offsets when the archetype is unknown or
// its asset reported degenerate bounds. Identity offsets place all
// lights at the entity origin, which is safe rather than NaN-prone.
func LightOffsetsFor(archetypes map[string]model.Archetype, name string) model.LightOffsets {
	a, ok := archetypes[name]
	if !ok {
		return model.LightOffsets{}
	}
	return a.Lights
}
