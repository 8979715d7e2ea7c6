package core

import (
	"math"

	"github.com/aerialfoundry/skyfleet-simulator/model"
)

// Celestial phase windows. The day phase ramps in over [0.15, 0.35] and
// out over [0.65, 0.85]; the sunset phase peaks inside both transition
// windows. Outside those ramps the night weight dominates.
const (
	dawnStart = 0.15
	dawnEnd   = 0.35
	duskStart = 0.65
	duskEnd   = 0.85
)

// SunOrbitRadius is the distance of the sun/moon sprites from the
// world origin; it only scales the reported positions.
const SunOrbitRadius = 900.0

// CelestialClock advances a cyclic time-of-day scalar and derives all
// sky parameters from it. Every derived value is recomputed on demand;
// TimeOfDay is the only authoritative state.
type CelestialClock struct {
	timeOfDay float64 // [0, 1), 0 = midnight
	rate      float64 // cycles per second
	nightLock bool
}

// NewCelestialClock starts the clock at the given fraction of the day.
// dayLength is the wall-clock duration of one full cycle in seconds.
func NewCelestialClock(dayLength, startTimeOfDay float64) *CelestialClock {
	if dayLength <= 0 {
		dayLength = 600
	}
	return &CelestialClock{
		timeOfDay: math.Mod(math.Abs(startTimeOfDay), 1),
		rate:      1 / dayLength,
	}
}

// SetNightLock pins the clock at midnight while engaged. The external
// toggle for night-only scenes.
func (c *CelestialClock) SetNightLock(lock bool) {
	c.nightLock = lock
	if lock {
		c.timeOfDay = 0
	}
}

// Advance moves time forward by dt seconds unless the night lock is
// engaged.
func (c *CelestialClock) Advance(dt float64) {
	if c.nightLock {
		return
	}
	c.timeOfDay = math.Mod(c.timeOfDay+dt*c.rate, 1)
}

// TimeOfDay returns the current cycle fraction.
func (c *CelestialClock) TimeOfDay() float64 {
	return c.timeOfDay
}

// State derives the full celestial snapshot for the current time.
func (c *CelestialClock) State() model.CelestialState {
	t := c.timeOfDay

	// Sun angle: noon (t=0.5) puts the sun at its zenith, midnight at
	// the antipode, horizon crossings at t=0.25 and t=0.75. The moon
	// is exactly antipodal.
	angle := (t - 0.5) * 2 * math.Pi
	sunY := math.Cos(angle) * SunOrbitRadius
	sunZ := math.Sin(angle) * SunOrbitRadius
	moonY := -sunY
	moonZ := -sunZ

	day := dayWeight(t)
	sunset := sunsetWeight(t)
	night := Clamp(1-day-sunset, 0, 1)

	return model.CelestialState{
		TimeOfDay:       t,
		SunPosition:     Vec3{Y: sunY, Z: sunZ},
		MoonPosition:    Vec3{Y: moonY, Z: moonZ},
		SunVisible:      t > dawnStart && t < duskEnd && sunY > 0,
		MoonVisible:     (t <= dawnStart || t >= duskEnd) && moonY > 0,
		DayWeight:       day,
		SunsetWeight:    sunset,
		NightWeight:     night,
		LightMultiplier: 1 - 0.8*day,
	}
}

// dayWeight ramps 0→1 across dawn and 1→0 across dusk, flat elsewhere.
func dayWeight(t float64) float64 {
	switch {
	case t <= dawnStart || t >= duskEnd:
		return 0
	case t < dawnEnd:
		return smoothstep((t - dawnStart) / (dawnEnd - dawnStart))
	case t <= duskStart:
		return 1
	default:
		return smoothstep((duskEnd - t) / (duskEnd - duskStart))
	}
}

// sunsetWeight peaks at the middle of each transition window and fades
// to zero at its edges.
func sunsetWeight(t float64) float64 {
	switch {
	case t > dawnStart && t < dawnEnd:
		return peak((t - dawnStart) / (dawnEnd - dawnStart))
	case t > duskStart && t < duskEnd:
		return peak((t - duskStart) / (duskEnd - duskStart))
	default:
		return 0
	}
}

// smoothstep is the standard 3t²-2t³ ramp on [0,1].
func smoothstep(t float64) float64 {
	t = Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

// peak maps [0,1] to a smooth bump that is 0 at both ends and 1 at 0.5.
func peak(t float64) float64 {
	return math.Sin(Clamp(t, 0, 1) * math.Pi)
}
