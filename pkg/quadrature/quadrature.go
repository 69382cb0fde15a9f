// Package quadrature integrates a sampled function over [a,b] with the
// composite trapezoidal and Simpson rules.
//
// Both rules use n equal subintervals of width h = (b−a)/n and plain
// floating-point sums; accuracy depends only on n. When the integrand is
// power in Watts and t is in hours, the result is energy in Wh.
package quadrature

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ja7ad/energy/pkg/util"
)

// ErrUnknownMethod indicates a method other than trapezoidal/simpson.
var ErrUnknownMethod = errors.New("quadrature: unknown method")

// Method selects a composite rule.
type Method string

const (
	Trapezoidal Method = "trapezoidal"
	Simpson     Method = "simpson"
)

// ParseMethod accepts "trapezoidal" (or "trapezoid"/"trapezios") and "simpson".
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trapezoidal", "trapezoid", "trapezios":
		return Trapezoidal, nil
	case "simpson":
		return Simpson, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// RequiresEvenSteps reports whether m only works with an even n.
func (m Method) RequiresEvenSteps() bool { return m == Simpson }

// Formula renders the rule for a concrete step width and count.
func (m Method) Formula(a, b float64, n int) string {
	h := util.FmtFloat((b - a) / float64(n))
	switch m {
	case Simpson:
		return fmt.Sprintf("E ≈ (h/3)·[P(a) + P(b) + 4·Σodd P(a+i·h) + 2·Σeven P(a+i·h)], h = %s, n = %d", h, n)
	default:
		return fmt.Sprintf("E ≈ (h/2)·[P(a) + P(b) + 2·Σ P(a+i·h)], h = %s, n = %d", h, n)
	}
}

// TrapezoidalRule returns (h/2)·[f(a) + f(b) + 2·Σ_{i=1}^{n−1} f(a+i·h)].
// Valid for any n ≥ 1.
func TrapezoidalRule(f func(float64) float64, a, b float64, n int) float64 {
	h := (b - a) / float64(n)
	sum := f(a) + f(b)
	for i := 1; i < n; i++ {
		sum += 2 * f(a+float64(i)*h)
	}
	return h / 2 * sum
}

// SimpsonRule returns (h/3)·[f(a) + f(b) + 4·Σodd + 2·Σeven].
// n must be even; parity is not re-checked here and an odd n yields a
// wrong (but finite) result.
func SimpsonRule(f func(float64) float64, a, b float64, n int) float64 {
	h := (b - a) / float64(n)
	sum := f(a) + f(b)
	for i := 1; i < n; i++ {
		w := 4.0
		if i%2 == 0 {
			w = 2
		}
		sum += w * f(a+float64(i)*h)
	}
	return h / 3 * sum
}

// Integrate dispatches to the rule selected by m.
func Integrate(m Method, f func(float64) float64, a, b float64, n int) (float64, error) {
	switch m {
	case Trapezoidal:
		return TrapezoidalRule(f, a, b, n), nil
	case Simpson:
		return SimpsonRule(f, a, b, n), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, string(m))
	}
}
