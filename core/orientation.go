package core

import (
	"math"

	"github.com/aerialfoundry/skyfleet-simulator/model"
)

// angularSpring is the shared second-order smoothing stage: error
// drives acceleration, velocity is exponentially damped and
// rate-clamped, then integrated. The same shape runs yaw, roll and
// pitch with different gains; preserving it (not just the end clamps)
// is what gives the inertial flight feel.
type angularSpring struct {
	Gain    float64 // rad/s² per radian of error
	Damping float64 // 1/s exponential decay of velocity
	MaxRate float64 // rad/s velocity clamp
}

// step advances one axis. The error is wrapped into (-π, π] so the
// spring always takes the short way around.
func (s angularSpring) step(current, target, vel, dt float64) (float64, float64) {
	vel += WrapToPi(target-current) * s.Gain * dt
	vel *= math.Exp(-s.Damping * dt)
	vel = Clamp(vel, -s.MaxRate, s.MaxRate)
	return current + vel*dt, vel
}

// Orientation gains, converted from the 60 FPS reference constants
// (accel 0.02/frame², damping 0.97/frame) into per-second units.
var (
	yawSpring   = angularSpring{Gain: 72, Damping: 1.8, MaxRate: 1.1}
	rollSpring  = angularSpring{Gain: 60, Damping: 2.2, MaxRate: 2.0}
	pitchSpring = angularSpring{Gain: 54, Damping: 2.4, MaxRate: 1.5}
)

const (
	rollCoupling     = 0.7         // bank angle per rad/s of yaw rate
	rollTargetClamp  = math.Pi / 4 // ±45° commanded bank
	rollClamp        = 0.89        // ±51° absolute bank
	pitchGain        = 0.25        // rad per m/s of vertical speed
	pitchTargetClamp = 0.26        // ±15° commanded pitch
	pitchClamp       = 0.35        // ±20° absolute pitch
)

// OrientationController smooths heading/pitch/roll with momentum and
// advances the entity's position along its heading. It also owns the
// turbulence coupling: a periodically redrawn offset scaled by wind
// strength, applied to position each tick.
type OrientationController struct {
	cfg WorldConfig
	nav *NavigationController
}

func NewOrientationController(cfg WorldConfig, nav *NavigationController) *OrientationController {
	return &OrientationController{cfg: cfg, nav: nav}
}

// Advance runs one orientation/integration step for the entity.
func (oc *OrientationController) Advance(e *model.FlightEntity, dt float64, wind model.WindState, rng *RandomSource) {
	// Yaw: spring toward the bearing of the smooth waypoint.
	targetHeading := oc.nav.DesiredHeading(e)
	e.Heading, e.YawVelocity = yawSpring.step(e.Heading, targetHeading, e.YawVelocity, dt)
	e.Heading = WrapToPi(e.Heading)

	// Roll banks into the turn, proportional to yaw rate.
	targetRoll := Clamp(-e.YawVelocity*rollCoupling, -rollTargetClamp, rollTargetClamp)
	e.Roll, e.RollVelocity = rollSpring.step(e.Roll, targetRoll, e.RollVelocity, dt)
	e.Roll = Clamp(e.Roll, -rollClamp, rollClamp)

	// Pitch follows vertical speed: climbing noses up.
	targetPitch := Clamp(-e.VerticalSpeed*pitchGain, -pitchTargetClamp, pitchTargetClamp)
	e.Pitch, e.PitchVelocity = pitchSpring.step(e.Pitch, targetPitch, e.PitchVelocity, dt)
	e.Pitch = Clamp(e.Pitch, -pitchClamp, pitchClamp)

	// Advance along the heading at cruise speed. Vertical motion is
	// integrated by the altitude controller, not here.
	speed := oc.cfg.CruiseSpeed * e.Profile.BaseSpeedFactor
	e.Position.X += math.Sin(e.Heading) * speed * dt
	e.Position.Z += math.Cos(e.Heading) * speed * dt

	// Turbulence: redraw the offset every interval, scaled by wind
	// strength, and feed it in continuously scaled by dt.
	e.TurbulenceTimer -= dt
	if e.TurbulenceTimer <= 0 {
		e.TurbulenceTimer = oc.cfg.TurbulenceInterval
		s := wind.Strength * oc.cfg.TurbulenceScale
		e.TurbulenceOffset = Vec3{
			X: rng.Range(-s, s),
			Y: rng.Range(-s, s) * 0.5,
			Z: rng.Range(-s, s),
		}
	}
	e.Position = Add(e.Position, Scale(e.TurbulenceOffset, dt))

	e.LightTimer += dt
}

// Wobble returns the layered sinusoidal buffeting terms for the
// entity's current light timer. They are added to the rendered
// orientation at transform-read time, leaving the momentum state
// untouched; the per-entity phase comes from the light timer itself.
func Wobble(e *model.FlightEntity, wind model.WindState) (roll, pitch, heading float64) {
	t := e.LightTimer
	phase := float64(e.Slot) * 0.7
	amp := 0.02 * wind.Strength

	roll = amp * (math.Sin(t*3.1+phase) + 0.5*math.Sin(t*7.3+phase*2))
	pitch = amp * 0.6 * (math.Sin(t*2.3+phase) + 0.4*math.Sin(t*5.9+phase))
	heading = amp * 0.4 * math.Sin(t*1.7+phase)
	return roll, pitch, heading
}
