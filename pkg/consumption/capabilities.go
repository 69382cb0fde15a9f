package consumption

import (
	"slices"

	"github.com/ja7ad/energy/pkg/load"
	"github.com/ja7ad/energy/pkg/quadrature"
)

// Field names an Input parameter, using the same keys as its YAML/JSON tags.
type Field string

const (
	FieldA              Field = "a"
	FieldB              Field = "b"
	FieldN              Field = "n"
	FieldIdlePower      Field = "idle_power"
	FieldMaxPower       Field = "max_power"
	FieldBase           Field = "base"
	FieldAmplitude      Field = "amplitude"
	FieldK              Field = "k"
	FieldT0             Field = "t0"
	FieldSavingsLimit   Field = "savings_limit"
	FieldTariffRate     Field = "tariff_rate"
	FieldEmissionFactor Field = "emission_factor"
)

// Capability describes which parameters a scenario reads, which of them it
// requires, and which quadrature rule is recommended for it.
type Capability struct {
	Scenario    load.Scenario
	Fields      []Field
	Required    []Field
	Recommended quadrature.Method
}

// RecommendedMethod is trapezoidal for savings (the min() ceiling makes P(t)
// non-smooth) and Simpson otherwise.
func RecommendedMethod(s load.Scenario) quadrature.Method {
	if s == load.Savings {
		return quadrature.Trapezoidal
	}
	return quadrature.Simpson
}

// Capabilities returns the parameter table for s under the engine's config.
func (e *Engine) Capabilities(s load.Scenario) Capability {
	c := Capability{
		Scenario:    s,
		Fields:      []Field{FieldA, FieldB, FieldN, FieldIdlePower, FieldMaxPower},
		Required:    []Field{FieldA, FieldB, FieldN, FieldIdlePower, FieldMaxPower},
		Recommended: RecommendedMethod(s),
	}
	if e.cfg.Coefficients == CoefficientsInput {
		c.Fields = append(c.Fields, FieldBase, FieldAmplitude)
		c.Required = append(c.Required, FieldBase, FieldAmplitude)
	}

	switch s {
	case load.Peak:
		c.Fields = append(c.Fields, FieldK, FieldT0)
		c.Required = append(c.Required, FieldK)
	case load.Savings:
		c.Fields = append(c.Fields, FieldSavingsLimit)
		c.Required = append(c.Required, FieldSavingsLimit)
	}

	c.Fields = append(c.Fields, FieldTariffRate)
	if e.cfg.EmissionPolicy == EmissionInput {
		c.Fields = append(c.Fields, FieldEmissionFactor)
	}
	return c
}

// Applicable reports whether f is read for scenario s.
func (e *Engine) Applicable(s load.Scenario, f Field) bool {
	return slices.Contains(e.Capabilities(s).Fields, f)
}

// IsRequired reports whether f must be supplied for scenario s.
func (e *Engine) IsRequired(s load.Scenario, f Field) bool {
	return slices.Contains(e.Capabilities(s).Required, f)
}
