package core

import (
	"math"

	"github.com/aerialfoundry/skyfleet-simulator/model"
)

// WindField owns the process-wide wind state. Direction and strength
// change instantaneously at interval boundaries, with no interpolation
// between regimes; the persistent drift plus per-entity turbulence
// provide all the visual smoothing needed.
type WindField struct {
	cfg   WorldConfig
	state model.WindState
}

// NewWindField draws an initial direction and strength so the first
// interval is already windy rather than calm.
func NewWindField(cfg WorldConfig, rng *RandomSource) *WindField {
	return &WindField{
		cfg: cfg,
		state: model.WindState{
			Direction:   rng.Angle(),
			Strength:    rng.Range(cfg.WindStrengthMin, cfg.WindStrengthMax),
			ChangeTimer: cfg.WindChangeInterval,
		},
	}
}

// Advance counts down to the next change event. At the boundary the
// direction shifts by a bounded amount (never a full reversal in one
// step) and strength is redrawn from its fixed range.
func (w *WindField) Advance(dt float64, rng *RandomSource) {
	w.state.ChangeTimer -= dt
	if w.state.ChangeTimer > 0 {
		return
	}
	w.state.ChangeTimer = w.cfg.WindChangeInterval
	w.state.Direction += rng.Range(-w.cfg.WindDirectionStep, w.cfg.WindDirectionStep)
	w.state.Strength = rng.Range(w.cfg.WindStrengthMin, w.cfg.WindStrengthMax)
}

// State returns a copy of the current wind state; callers snapshot it
// once per tick.
func (w *WindField) State() model.WindState {
	return w.state
}

// Drift returns the horizontal ground-track displacement for dt
// seconds. Wind moves entities over the ground without altering their
// own airspeed or orientation.
func (w *WindField) Drift(dt float64) Vec3 {
	d := w.state.Strength * w.cfg.WindDriftFactor * dt
	return Vec3{
		X: math.Cos(w.state.Direction) * d,
		Z: math.Sin(w.state.Direction) * d,
	}
}
