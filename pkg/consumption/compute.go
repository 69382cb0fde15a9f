package consumption

import (
	"fmt"

	"github.com/ja7ad/energy/pkg/load"
	"github.com/ja7ad/energy/pkg/power"
	"github.com/ja7ad/energy/pkg/quadrature"
	"github.com/ja7ad/energy/pkg/types"
	"github.com/ja7ad/energy/pkg/util"
)

// Engine validates inputs and integrates power into energy.
// It holds only its Config and is safe to share between goroutines.
type Engine struct {
	cfg *Config
}

// New creates an engine with the given config.
// Fields set in cfg override defaults.
// Notes:
//   - EmissionFactor and MaxSteps must be > 0 to override defaults.
//   - Empty EmissionPolicy/PeakShape/Coefficients keep their defaults.
func New(cfg *Config) *Engine {
	base := _defaultConfig()

	// No user cfg: use defaults as-is.
	if cfg == nil {
		return &Engine{cfg: base}
	}

	merged := *base

	// Positive-only overrides
	if cfg.EmissionFactor > 0 {
		merged.EmissionFactor = cfg.EmissionFactor
	}
	if cfg.MaxSteps > 0 {
		merged.MaxSteps = cfg.MaxSteps
	}

	if cfg.EmissionPolicy != "" {
		merged.EmissionPolicy = cfg.EmissionPolicy
	}
	if cfg.PeakShape != "" {
		merged.PeakShape = cfg.PeakShape
	}
	if cfg.Coefficients != "" {
		merged.Coefficients = cfg.Coefficients
	}

	return &Engine{cfg: &merged}
}

// Config returns a copy of the effective configuration.
func (e *Engine) Config() Config { return *e.cfg }

// Compute validates in and, if it is accepted, integrates it.
// Equal inputs always yield bit-identical results.
func (e *Engine) Compute(in Input) (Result, error) {
	req, err := e.Validate(in)
	if err != nil {
		return Result{}, err
	}
	return req.Evaluate()
}

// LoadFunc returns λ(t) for the request.
func (r Request) LoadFunc() load.Func { return load.Build(r.Load) }

// PowerFunc returns P(t) for the request.
func (r Request) PowerFunc() power.Func { return power.Build(r.Power, r.LoadFunc()) }

// Evaluate integrates P(t) over [A,B] with the selected rule and derives
// kWh, cost and CO₂. The trace lists every formula used, in order.
func (r Request) Evaluate() (Result, error) {
	wh, err := quadrature.Integrate(r.Method, r.PowerFunc(), r.A, r.B, r.N)
	if err != nil {
		return Result{}, fmt.Errorf("integrate: %w", err)
	}

	trace := []string{r.Load.Formula()}
	trace = append(trace, r.Power.Formula()...)
	trace = append(trace,
		r.Method.Formula(r.A, r.B, r.N),
		fmt.Sprintf("E = %s Wh over [%s, %s] h", util.FmtFloat(wh), util.FmtFloat(r.A), util.FmtFloat(r.B)),
	)

	res := Derive(wh, r.Tariff, r.EmissionFactor)
	res.Scenario = r.Scenario
	res.Method = r.Method
	res.Trace = append(trace, res.Trace...)
	return res, nil
}

// Derive converts an energy in Wh into kWh, cost (only when tariff is
// non-nil) and CO₂ mass in kg.
func Derive(energyWh float64, tariff *float64, emissionFactor float64) Result {
	f := util.FmtFloat
	kwh := types.WattHours(energyWh).KWh()

	res := Result{
		EnergyWh:       energyWh,
		EnergyKWh:      kwh,
		CO2Kg:          kwh * emissionFactor,
		EmissionFactor: emissionFactor,
		Trace:          []string{"kWh = Wh / 1000"},
	}
	if tariff != nil {
		cost := kwh * *tariff
		res.Cost = &cost
		res.Trace = append(res.Trace, fmt.Sprintf("cost = kWh · %s", f(*tariff)))
	}
	res.Trace = append(res.Trace, fmt.Sprintf("CO₂ = kWh · %s kg/kWh", f(emissionFactor)))
	return res
}

// Profile samples λ(t) and P(t) at points+1 equally spaced times in [A,B].
// EnergyWh is the running trapezoidal integral up to each sample.
func (r Request) Profile(points int) []Sample {
	if points < 1 {
		points = 1
	}
	lambda := r.LoadFunc()
	pw := power.Build(r.Power, lambda)
	h := (r.B - r.A) / float64(points)

	out := make([]Sample, 0, points+1)
	var cum float64
	for i := 0; i <= points; i++ {
		t := r.A + float64(i)*h
		if i == points {
			t = r.B
		}
		p := pw(t)
		if i > 0 {
			cum += (out[i-1].Power + p) / 2 * (t - out[i-1].T)
		}
		out = append(out, Sample{T: t, Load: lambda(t), Power: p, EnergyWh: cum})
	}
	return out
}
