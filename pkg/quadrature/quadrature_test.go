package quadrature

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMethod(t *testing.T) {
	for in, want := range map[string]Method{
		"trapezoidal": Trapezoidal,
		"Trapezoid":   Trapezoidal,
		"trapezios":   Trapezoidal,
		"simpson":     Simpson,
		" SIMPSON ":   Simpson,
	} {
		got, err := ParseMethod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMethod("romberg")
	require.ErrorIs(t, err, ErrUnknownMethod)
}

func TestConstantIntegrand_Exact(t *testing.T) {
	const c = 150.0
	f := func(float64) float64 { return c }

	for _, tc := range []struct {
		a, b float64
		n    int
	}{
		{0, 1, 2}, {0, 1, 1000}, {2, 10, 8}, {-3, 4.5, 64},
	} {
		want := c * (tc.b - tc.a)
		assert.InDelta(t, want, TrapezoidalRule(f, tc.a, tc.b, tc.n), 1e-9, "trapezoidal %+v", tc)
		assert.InDelta(t, want, SimpsonRule(f, tc.a, tc.b, tc.n), 1e-9, "simpson %+v", tc)
	}

	// trapezoidal accepts odd n, including a single step
	assert.InDelta(t, c*3, TrapezoidalRule(f, 0, 3, 1), 1e-12)
	assert.InDelta(t, c*3, TrapezoidalRule(f, 0, 3, 7), 1e-9)
}

func TestTrapezoidal_ExactForLinear(t *testing.T) {
	f := func(x float64) float64 { return 3*x + 1 }
	// ∫0..2 (3x+1) dx = 6 + 2 = 8
	assert.InDelta(t, 8.0, TrapezoidalRule(f, 0, 2, 1), 1e-12)
	assert.InDelta(t, 8.0, TrapezoidalRule(f, 0, 2, 17), 1e-9)
}

func TestSimpson_ExactForCubic(t *testing.T) {
	f := func(x float64) float64 { return x*x*x - 2*x*x + 1 }
	// ∫0..2 = 4 − 16/3 + 2 = 2/3
	assert.InDelta(t, 2.0/3.0, SimpsonRule(f, 0, 2, 2), 1e-12)
	assert.InDelta(t, 2.0/3.0, SimpsonRule(f, 0, 2, 10), 1e-9)
}

func TestRulesConverge(t *testing.T) {
	// ∫0..1 sin(πx) dx = 2/π
	f := func(x float64) float64 { return math.Sin(math.Pi * x) }
	want := 2 / math.Pi

	prevTrap := math.Inf(1)
	for _, n := range []int{4, 16, 64, 256, 1024} {
		trap := math.Abs(TrapezoidalRule(f, 0, 1, n) - want)
		simp := math.Abs(SimpsonRule(f, 0, 1, n) - want)
		t.Logf("n=%5d  |trap err|=%.3e  |simpson err|=%.3e", n, trap, simp)

		assert.Less(t, trap, prevTrap, "trapezoidal error should shrink at n=%d", n)
		assert.LessOrEqual(t, simp, trap, "simpson should be at least as accurate at n=%d", n)
		prevTrap = trap
	}
	assert.InDelta(t, want, TrapezoidalRule(f, 0, 1, 100_000), 1e-9)
	assert.InDelta(t, want, SimpsonRule(f, 0, 1, 100_000), 1e-10)
}

func TestIntegrate_Dispatch(t *testing.T) {
	f := func(x float64) float64 { return x * x }

	got, err := Integrate(Simpson, f, 0, 3, 6)
	require.NoError(t, err)
	assert.InDelta(t, 9.0, got, 1e-9)

	got, err = Integrate(Trapezoidal, f, 0, 3, 6)
	require.NoError(t, err)
	assert.Equal(t, TrapezoidalRule(f, 0, 3, 6), got)

	_, err = Integrate(Method("midpoint"), f, 0, 3, 6)
	require.ErrorIs(t, err, ErrUnknownMethod)
}

func TestMethod_Formula(t *testing.T) {
	assert.Equal(t,
		"E ≈ (h/3)·[P(a) + P(b) + 4·Σodd P(a+i·h) + 2·Σeven P(a+i·h)], h = 0.001, n = 1000",
		Simpson.Formula(0, 1, 1000))
	assert.Equal(t,
		"E ≈ (h/2)·[P(a) + P(b) + 2·Σ P(a+i·h)], h = 0.5, n = 4",
		Trapezoidal.Formula(0, 2, 4))
	assert.True(t, Simpson.RequiresEvenSteps())
	assert.False(t, Trapezoidal.RequiresEvenSteps())
}
