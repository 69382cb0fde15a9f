package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp01(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{"below", -0.5, 0},
		{"zero", 0, 0},
		{"inside", 0.42, 0.42},
		{"one", 1, 1},
		{"above", 3.7, 1},
		{"neg_inf", math.Inf(-1), 0},
		{"pos_inf", math.Inf(1), 1},
		{"nan", math.NaN(), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Clamp01(tc.in))
		})
	}
}

func TestClamp01_BoundedAndMonotonic(t *testing.T) {
	prev := Clamp01(-2)
	for x := -2.0; x <= 2.0; x += 0.01 {
		got := Clamp01(x)
		require.GreaterOrEqual(t, got, 0.0)
		require.LessOrEqual(t, got, 1.0)
		// non-decreasing across the sweep
		require.GreaterOrEqual(t, got, prev, "x=%.2f", x)
		prev = got
	}
}

func TestFmtFloat(t *testing.T) {
	assert.Equal(t, "120", FmtFloat(120))
	assert.Equal(t, "0.25", FmtFloat(0.25))
	assert.Equal(t, "-1.5", FmtFloat(-1.5))
	assert.Equal(t, "0.001", FmtFloat(0.001))
}

func TestIsIntegerAndFinite(t *testing.T) {
	assert.True(t, IsInteger(1000))
	assert.True(t, IsInteger(-3))
	assert.False(t, IsInteger(2.5))
	assert.False(t, IsInteger(math.NaN()))
	assert.False(t, IsInteger(math.Inf(1)))

	assert.True(t, Finite(0))
	assert.False(t, Finite(math.NaN()))
	assert.False(t, Finite(math.Inf(-1)))
}
