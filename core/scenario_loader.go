// core/scenario_loader.go
package core

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aerialfoundry/skyfleet-simulator/model"
)

// Scenario is a small summary of what was loaded from JSON. It's
// mainly useful for logging or debugging from main().
type Scenario struct {
	Archetypes []model.Archetype
}

// internal JSON shapes; unexported so the file format can evolve freely.
type scenarioJSON struct {
	Archetypes []archetypeJSON `json:"archetypes"`
}

type archetypeJSON struct {
	Name           string      `json:"name"`
	Asset          string      `json:"asset"`
	SpeedFactor    *rangeJSON  `json:"speed_factor"`     // optional; defaults to [0.8, 1.2]
	ClimbPerf      *rangeJSON  `json:"climb_perf"`       // optional; defaults to [0.8, 1.2]
	MaxClimbRate   float64     `json:"max_climb_rate"`   // m/s; defaults to 3
	MaxDescentRate float64     `json:"max_descent_rate"` // m/s; defaults to 3
	Weight         float64     `json:"weight"`           // defaults to 1
	Lights         *lightsJSON `json:"lights"`           // optional; identity offsets when absent
}

type rangeJSON struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type lightsJSON struct {
	Red   offsetJSON `json:"red"`
	Green offsetJSON `json:"green"`
	White offsetJSON `json:"white"`
}

type offsetJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// LoadScenario reads an archetype scenario from r and returns the
// parsed archetypes.
//
// It fails only on JSON / structural errors and missing names; value
// ranges get conservative defaults rather than hard validation, the
// same way direct construction behaves in tests.
func LoadScenario(r io.Reader) (*Scenario, error) {
	var payload scenarioJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("LoadScenario: decode failed: %w", err)
	}

	result := &Scenario{
		Archetypes: make([]model.Archetype, 0, len(payload.Archetypes)),
	}

	for _, ja := range payload.Archetypes {
		if ja.Name == "" {
			return nil, fmt.Errorf("LoadScenario: archetype with empty name")
		}

		a := model.Archetype{
			Name:           ja.Name,
			Asset:          ja.Asset,
			SpeedFactorMin: 0.8,
			SpeedFactorMax: 1.2,
			ClimbPerfMin:   0.8,
			ClimbPerfMax:   1.2,
			MaxClimbRate:   3,
			MaxDescentRate: 3,
			Weight:         1,
		}
		if ja.SpeedFactor != nil {
			a.SpeedFactorMin, a.SpeedFactorMax = orderedRange(ja.SpeedFactor.Min, ja.SpeedFactor.Max)
		}
		if ja.ClimbPerf != nil {
			a.ClimbPerfMin, a.ClimbPerfMax = orderedRange(ja.ClimbPerf.Min, ja.ClimbPerf.Max)
		}
		if ja.MaxClimbRate > 0 {
			a.MaxClimbRate = ja.MaxClimbRate
		}
		if ja.MaxDescentRate > 0 {
			a.MaxDescentRate = ja.MaxDescentRate
		}
		if ja.Weight > 0 {
			a.Weight = ja.Weight
		}
		if ja.Lights != nil {
			a.Lights = model.LightOffsets{
				Red:   Vec3{X: ja.Lights.Red.X, Y: ja.Lights.Red.Y, Z: ja.Lights.Red.Z},
				Green: Vec3{X: ja.Lights.Green.X, Y: ja.Lights.Green.Y, Z: ja.Lights.Green.Z},
				White: Vec3{X: ja.Lights.White.X, Y: ja.Lights.White.Y, Z: ja.Lights.White.Z},
			}
		}

		result.Archetypes = append(result.Archetypes, a)
	}

	return result, nil
}

// orderedRange keeps loaded ranges usable even if min/max arrive
// swapped.
func orderedRange(min, max float64) (float64, float64) {
	if max < min {
		return max, min
	}
	return min, max
}
