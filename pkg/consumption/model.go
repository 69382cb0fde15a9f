package consumption

import (
	"fmt"
	"strings"

	"github.com/ja7ad/energy/pkg/load"
	"github.com/ja7ad/energy/pkg/power"
	"github.com/ja7ad/energy/pkg/quadrature"
)

// DefaultEmissionFactor is the grid emission factor in kg CO₂ per kWh.
const DefaultEmissionFactor = 0.25

// DefaultMaxSteps bounds n so a single computation stays O(n) with a known ceiling.
const DefaultMaxSteps = 10_000_000

// EmissionPolicy decides where the CO₂ factor comes from.
type EmissionPolicy string

const (
	// EmissionInput uses Input.EmissionFactor when supplied, else Config.EmissionFactor.
	EmissionInput EmissionPolicy = "input"
	// EmissionFixed always uses Config.EmissionFactor and ignores the input.
	EmissionFixed EmissionPolicy = "fixed"
)

// ParseEmissionPolicy parses a policy name; empty selects EmissionInput.
func ParseEmissionPolicy(s string) (EmissionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "input":
		return EmissionInput, nil
	case "fixed":
		return EmissionFixed, nil
	default:
		return "", fmt.Errorf("consumption: unknown emission policy %q", s)
	}
}

// CoefficientMode decides where the load base/amplitude come from.
type CoefficientMode string

const (
	// CoefficientsInput requires base and amplitude from the caller.
	CoefficientsInput CoefficientMode = "input"
	// CoefficientsPreset uses load.Preset per scenario; caller values are ignored.
	CoefficientsPreset CoefficientMode = "preset"
)

// ParseCoefficientMode parses a mode name; empty selects CoefficientsInput.
func ParseCoefficientMode(s string) (CoefficientMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "input":
		return CoefficientsInput, nil
	case "preset":
		return CoefficientsPreset, nil
	default:
		return "", fmt.Errorf("consumption: unknown coefficient mode %q", s)
	}
}

// Config holds process-wide settings for the engine.
// Units:
//   - EmissionFactor: kg CO₂ per kWh
//   - MaxSteps: upper bound on the quadrature step count n
type Config struct {
	EmissionFactor float64
	EmissionPolicy EmissionPolicy
	PeakShape      load.Shape
	Coefficients   CoefficientMode
	MaxSteps       int
}

// _defaultConfig returns a Config pre-filled with the documented defaults.
func _defaultConfig() *Config {
	return &Config{
		EmissionFactor: DefaultEmissionFactor,
		EmissionPolicy: EmissionInput,
		PeakShape:      load.ShapeOffset,
		Coefficients:   CoefficientsInput,
		MaxSteps:       DefaultMaxSteps,
	}
}

// Input is the raw parameter set handed over by a caller.
// Nil pointers mean "not supplied". N is a float so that a non-integer
// step count can be reported instead of silently truncated.
type Input struct {
	Scenario string `json:"scenario" yaml:"scenario"`
	Method   string `json:"method" yaml:"method"`

	A *float64 `json:"a,omitempty" yaml:"a,omitempty"`
	B *float64 `json:"b,omitempty" yaml:"b,omitempty"`
	N *float64 `json:"n,omitempty" yaml:"n,omitempty"`

	IdlePower *float64 `json:"idle_power,omitempty" yaml:"idle_power,omitempty"`
	MaxPower  *float64 `json:"max_power,omitempty" yaml:"max_power,omitempty"`

	Base      *float64 `json:"base,omitempty" yaml:"base,omitempty"`
	Amplitude *float64 `json:"amplitude,omitempty" yaml:"amplitude,omitempty"`

	K  *float64 `json:"k,omitempty" yaml:"k,omitempty"`
	T0 *float64 `json:"t0,omitempty" yaml:"t0,omitempty"`

	SavingsLimit *float64 `json:"savings_limit,omitempty" yaml:"savings_limit,omitempty"`

	TariffRate     *float64 `json:"tariff_rate,omitempty" yaml:"tariff_rate,omitempty"`
	EmissionFactor *float64 `json:"emission_factor,omitempty" yaml:"emission_factor,omitempty"`
}

// Float returns a pointer to v, for building an Input literal.
func Float(v float64) *float64 { return &v }

// Request is a validated Input with every default resolved.
type Request struct {
	Scenario       load.Scenario
	Method         quadrature.Method
	A, B           float64
	N              int
	Load           load.Params
	Power          power.Params
	Tariff         *float64
	EmissionFactor float64
}

// Result is the outcome of one computation.
type Result struct {
	Scenario       load.Scenario     `json:"scenario"`
	Method         quadrature.Method `json:"method"`
	EnergyWh       float64           `json:"energy_wh"`
	EnergyKWh      float64           `json:"energy_kwh"`
	Cost           *float64          `json:"cost,omitempty"`
	CO2Kg          float64           `json:"co2_kg"`
	EmissionFactor float64           `json:"emission_factor"`
	Trace          []string          `json:"trace"`
}

// Sample is one point of a sampled power profile.
type Sample struct {
	T        float64 `json:"t_h"`
	Load     float64 `json:"load"`
	Power    float64 `json:"power_w"`
	EnergyWh float64 `json:"e_cum_wh"`
}
