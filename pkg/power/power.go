// Package power converts a relative load into instantaneous power in Watts.
package power

import (
	"fmt"
	"math"

	"github.com/ja7ad/energy/pkg/load"
	"github.com/ja7ad/energy/pkg/util"
)

// Func is instantaneous power in Watts as a function of time in hours.
type Func func(t float64) float64

// Params holds model coefficients.
// Units:
//   - IdlePower/MaxPower: Watts at λ=0 and λ=1
//   - SavingsLimit: Watts ceiling, read only for the savings scenario
type Params struct {
	Scenario     load.Scenario
	IdlePower    float64
	MaxPower     float64
	SavingsLimit float64
}

// Build wraps λ into P(t):
//
//	P_normal(t) = IdlePower + (MaxPower − IdlePower)·λ(t)
//	P(t)        = min(SavingsLimit, P_normal(t))   (savings)
//	P(t)        = P_normal(t)                      (otherwise)
func Build(p Params, lambda load.Func) Func {
	span := p.MaxPower - p.IdlePower
	if p.Scenario == load.Savings {
		return func(t float64) float64 {
			return math.Min(p.SavingsLimit, p.IdlePower+span*lambda(t))
		}
	}
	return func(t float64) float64 {
		return p.IdlePower + span*lambda(t)
	}
}

// Formula renders the power rule(s) with the concrete values of p.
func (p Params) Formula() []string {
	f := util.FmtFloat
	lines := []string{
		fmt.Sprintf("P_normal(t) = %s + (%s − %s)·λ(t)", f(p.IdlePower), f(p.MaxPower), f(p.IdlePower)),
	}
	if p.Scenario == load.Savings {
		lines = append(lines, fmt.Sprintf("P(t) = min(%s, P_normal(t))", f(p.SavingsLimit)))
	} else {
		lines = append(lines, "P(t) = P_normal(t)")
	}
	return lines
}
