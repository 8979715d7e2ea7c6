package core

import (
	"math"
	"testing"
)

func TestWindStrengthStaysWithinConfiguredRange(t *testing.T) {
	cfg := DefaultWorldConfig()
	rng := NewRandomSource(7)
	w := NewWindField(cfg, rng)

	// Drive through many change events.
	for i := 0; i < 500; i++ {
		w.Advance(cfg.WindChangeInterval, rng)
		s := w.State().Strength
		if s < cfg.WindStrengthMin || s >= cfg.WindStrengthMax {
			t.Fatalf("strength = %v after event %d, want [%v, %v)", s, i, cfg.WindStrengthMin, cfg.WindStrengthMax)
		}
	}
}

func TestWindDirectionChangeIsBounded(t *testing.T) {
	cfg := DefaultWorldConfig()
	rng := NewRandomSource(11)
	w := NewWindField(cfg, rng)

	for i := 0; i < 200; i++ {
		before := w.State().Direction
		w.Advance(cfg.WindChangeInterval, rng)
		delta := math.Abs(w.State().Direction - before)
		if delta > cfg.WindDirectionStep+1e-9 {
			t.Fatalf("direction changed by %v at event %d, want ≤ %v", delta, i, cfg.WindDirectionStep)
		}
	}
}

func TestWindNoChangeBeforeInterval(t *testing.T) {
	cfg := DefaultWorldConfig()
	rng := NewRandomSource(3)
	w := NewWindField(cfg, rng)
	before := w.State()

	w.Advance(cfg.WindChangeInterval/2, rng)

	after := w.State()
	if after.Direction != before.Direction || after.Strength != before.Strength {
		t.Fatalf("wind changed mid-interval: before %+v, after %+v", before, after)
	}
}

func TestWindDriftScalesWithStrengthAndDt(t *testing.T) {
	cfg := DefaultWorldConfig()
	rng := NewRandomSource(5)
	w := NewWindField(cfg, rng)
	state := w.State()

	dt := 1.0 / 60
	d := w.Drift(dt)
	got := math.Sqrt(d.X*d.X + d.Z*d.Z)
	want := state.Strength * cfg.WindDriftFactor * dt
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("|Drift| = %v, want %v", got, want)
	}
	if d.Y != 0 {
		t.Fatalf("Drift.Y = %v, want 0", d.Y)
	}
}
