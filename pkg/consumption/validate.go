package consumption

import (
	"github.com/ja7ad/energy/pkg/load"
	"github.com/ja7ad/energy/pkg/power"
	"github.com/ja7ad/energy/pkg/quadrature"
	"github.com/ja7ad/energy/pkg/util"
)

// Validate checks in and resolves its defaults. Checks run in a fixed order
// and the first failure is returned as a *ValidationError:
//
//  1. required fields present (scenario, method, a, b, n, idle/max power,
//     base/amplitude when coefficients come from input)
//  2. b > a, with b−a representable
//  3. n is a positive integer no larger than MaxSteps
//  4. idle power ≥ 0 and max power ≥ idle power
//  5. Simpson's rule needs an even n
//  6. base and amplitude in [0,1]
//  7. scenario specific: peak needs k > 0 and t0 within [a,b];
//     savings needs a power limit > 0
//  8. tariff and emission factor, when used, are finite and ≥ 0
//
// A missing t0 defaults to the midpoint (a+b)/2.
func (e *Engine) Validate(in Input) (Request, error) {
	cfg := e.cfg

	// 1. required fields
	if in.Scenario == "" {
		return Request{}, reject(ErrMissingRequiredField, "scenario", "")
	}
	scenario, err := load.ParseScenario(in.Scenario)
	if err != nil {
		return Request{}, reject(ErrMissingRequiredField, "scenario", "%q is not one of normal|peak|savings", in.Scenario)
	}
	if in.Method == "" {
		return Request{}, reject(ErrMissingRequiredField, "method", "")
	}
	method, err := quadrature.ParseMethod(in.Method)
	if err != nil {
		return Request{}, reject(ErrMissingRequiredField, "method", "%q is not one of trapezoidal|simpson", in.Method)
	}
	required := []requiredValue{
		{"a", in.A},
		{"b", in.B},
		{"n", in.N},
		{"idle_power", in.IdlePower},
		{"max_power", in.MaxPower},
	}
	userCoefficients := cfg.Coefficients == CoefficientsInput
	if userCoefficients {
		required = append(required, requiredValue{"base", in.Base}, requiredValue{"amplitude", in.Amplitude})
	}
	for _, r := range required {
		if r.value == nil {
			return Request{}, reject(ErrMissingRequiredField, r.name, "")
		}
	}

	a, b := *in.A, *in.B
	idle, pmax := *in.IdlePower, *in.MaxPower

	// 2. bounds
	if !util.Finite(a) || !util.Finite(b) || !util.Finite(b-a) || !(b > a) {
		return Request{}, reject(ErrInvalidBounds, "b", "b (%v) must be strictly greater than a (%v)", b, a)
	}

	// 3. step count
	if !util.IsInteger(*in.N) || *in.N <= 0 {
		return Request{}, reject(ErrInvalidStepCount, "n", "n (%v) must be a positive integer", *in.N)
	}
	if *in.N > float64(cfg.MaxSteps) {
		return Request{}, reject(ErrInvalidStepCount, "n", "n (%v) exceeds the limit of %d steps", *in.N, cfg.MaxSteps)
	}
	n := int(*in.N)

	// 4. power ordering
	if !util.Finite(idle) || !util.Finite(pmax) || idle < 0 {
		return Request{}, reject(ErrPowerOrderingViolation, "idle_power", "idle power (%v) must be a finite value ≥ 0", idle)
	}
	if pmax < idle {
		return Request{}, reject(ErrPowerOrderingViolation, "max_power", "max power (%v) must be ≥ idle power (%v)", pmax, idle)
	}

	// 5. parity
	if method.RequiresEvenSteps() && n%2 != 0 {
		return Request{}, reject(ErrOddStepCountForSimpson, "n", "simpson requires an even n, got %d", n)
	}

	// 6. load coefficients
	coeff := load.Preset(scenario)
	if userCoefficients {
		coeff = load.Coefficients{Base: *in.Base, Amplitude: *in.Amplitude}
		if !inUnit(coeff.Base) {
			return Request{}, reject(ErrLoadCoefficientOutOfRange, "base", "base (%v) must lie in [0,1]", coeff.Base)
		}
		if !inUnit(coeff.Amplitude) {
			return Request{}, reject(ErrLoadCoefficientOutOfRange, "amplitude", "amplitude (%v) must lie in [0,1]", coeff.Amplitude)
		}
	}

	lp := load.Params{
		Scenario:  scenario,
		Shape:     cfg.PeakShape,
		Base:      coeff.Base,
		Amplitude: coeff.Amplitude,
	}
	pp := power.Params{Scenario: scenario, IdlePower: idle, MaxPower: pmax}

	// 7. scenario specific
	switch scenario {
	case load.Peak:
		if in.K == nil {
			return Request{}, reject(ErrMissingOrInvalidPeakSteepness, "k", "k is required for the peak scenario")
		}
		if !util.Finite(*in.K) || *in.K <= 0 {
			return Request{}, reject(ErrMissingOrInvalidPeakSteepness, "k", "k (%v) must be > 0", *in.K)
		}
		lp.K = *in.K
		lp.T0 = (a + b) / 2
		if in.T0 != nil {
			t0 := *in.T0
			if !util.Finite(t0) || t0 < a || t0 > b {
				return Request{}, reject(ErrPeakCenterOutOfBounds, "t0", "t0 (%v) must lie within [%v, %v]", t0, a, b)
			}
			lp.T0 = t0
		}
	case load.Savings:
		if in.SavingsLimit == nil {
			return Request{}, reject(ErrMissingOrInvalidSavingsLimit, "savings_limit", "a power limit in W is required for the savings scenario")
		}
		if !(*in.SavingsLimit > 0) {
			return Request{}, reject(ErrMissingOrInvalidSavingsLimit, "savings_limit", "limit (%v W) must be > 0", *in.SavingsLimit)
		}
		pp.SavingsLimit = *in.SavingsLimit
	}

	// 8. derivation rates
	if in.TariffRate != nil && !validRate(*in.TariffRate) {
		return Request{}, reject(ErrInvalidDerivationRate, "tariff_rate", "tariff (%v) must be a finite value ≥ 0", *in.TariffRate)
	}
	factor := cfg.EmissionFactor
	if cfg.EmissionPolicy == EmissionInput && in.EmissionFactor != nil {
		if !validRate(*in.EmissionFactor) {
			return Request{}, reject(ErrInvalidDerivationRate, "emission_factor", "emission factor (%v) must be a finite value ≥ 0", *in.EmissionFactor)
		}
		factor = *in.EmissionFactor
	}

	var tariff *float64
	if in.TariffRate != nil {
		tariff = Float(*in.TariffRate)
	}

	return Request{
		Scenario:       scenario,
		Method:         method,
		A:              a,
		B:              b,
		N:              n,
		Load:           lp,
		Power:          pp,
		Tariff:         tariff,
		EmissionFactor: factor,
	}, nil
}

type requiredValue struct {
	name  string
	value *float64
}

func inUnit(v float64) bool { return v >= 0 && v <= 1 }

func validRate(v float64) bool { return util.Finite(v) && v >= 0 }
