// Package load models the relative load λ(t) ∈ [0,1] of a system over time.
//
// The load curve is dimensionless ("how busy is the system"); converting it
// into Watts is left to pkg/power, which is why the savings scenario can
// share the normal curve and only differ in how power is capped.
//
// Curves (t in hours, all results clamped to [0,1]):
//
//	normal, savings : base + amplitude·sin(π·t)
//	peak (offset)   : base + amplitude·exp(−k·(t−t0)²)
//	peak (bare)     : exp(−k·(t−t0)²)
package load

import (
	"fmt"
	"math"
	"strings"

	"github.com/ja7ad/energy/pkg/util"
)

// Scenario selects the load curve and the power-capping rule.
type Scenario string

const (
	Normal  Scenario = "normal"
	Peak    Scenario = "peak"
	Savings Scenario = "savings"
)

// Scenarios lists every known scenario in display order.
var Scenarios = []Scenario{Normal, Peak, Savings}

// ParseScenario accepts the canonical names and the legacy
// "pico"/"poupanca" spellings, case-insensitively.
func ParseScenario(s string) (Scenario, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal":
		return Normal, nil
	case "peak", "pico":
		return Peak, nil
	case "savings", "poupanca", "poupança":
		return Savings, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScenario, s)
	}
}

// Shape chooses between the two peak curve variants.
type Shape string

const (
	// ShapeOffset is base + amplitude·exp(−k·(t−t0)²). Default.
	ShapeOffset Shape = "offset"
	// ShapeBare is exp(−k·(t−t0)²), ignoring base and amplitude.
	ShapeBare Shape = "bare"
)

// ParseShape parses a peak curve shape; empty selects ShapeOffset.
func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "offset":
		return ShapeOffset, nil
	case "bare":
		return ShapeBare, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownShape, s)
	}
}

// Func is a relative load as a function of time in hours.
type Func func(t float64) float64

// Params holds a fully resolved load parameter set.
// K and T0 are only read for the peak scenario.
type Params struct {
	Scenario  Scenario
	Shape     Shape
	Base      float64
	Amplitude float64
	K         float64
	T0        float64
}

// Build returns λ(t) for p. Callers are expected to pass validated params;
// whatever the inputs, the result is clamped to [0,1].
func Build(p Params) Func {
	if p.Scenario == Peak {
		if p.Shape == ShapeBare {
			return func(t float64) float64 {
				d := t - p.T0
				return util.Clamp01(math.Exp(-p.K * d * d))
			}
		}
		return func(t float64) float64 {
			d := t - p.T0
			return util.Clamp01(p.Base + p.Amplitude*math.Exp(-p.K*d*d))
		}
	}

	// normal and savings share the sine curve
	return func(t float64) float64 {
		return util.Clamp01(p.Base + p.Amplitude*math.Sin(math.Pi*t))
	}
}

// Formula renders the curve with the concrete coefficients of p.
func (p Params) Formula() string {
	f := util.FmtFloat
	if p.Scenario == Peak {
		if p.Shape == ShapeBare {
			return fmt.Sprintf("λ(t) = clamp01(exp(−%s·(t − %s)²))", f(p.K), f(p.T0))
		}
		return fmt.Sprintf("λ(t) = clamp01(%s + %s·exp(−%s·(t − %s)²))",
			f(p.Base), f(p.Amplitude), f(p.K), f(p.T0))
	}
	return fmt.Sprintf("λ(t) = clamp01(%s + %s·sin(π·t))", f(p.Base), f(p.Amplitude))
}

// Coefficients is a fixed base/amplitude pair.
type Coefficients struct {
	Base      float64
	Amplitude float64
}

// Preset returns the built-in coefficients for s, used when load coefficients
// are not taken from the caller.
func Preset(s Scenario) Coefficients {
	switch s {
	case Peak:
		return Coefficients{Base: 0.2, Amplitude: 0.7}
	default:
		return Coefficients{Base: 0.5, Amplitude: 0.3}
	}
}
