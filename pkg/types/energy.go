package types

import (
	"fmt"
	"math"
)

// WattHours is a float64 wrapper representing an amount of energy in Wh.
type WattHours float64

// Humanized returns a human-readable string with automatic unit (Wh, kWh, MWh, GWh).
func (e WattHours) Humanized() string {
	v := float64(e)
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("%.2f GWh", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.2f MWh", v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.2f kWh", v/1e3)
	default:
		return fmt.Sprintf("%.2f Wh", v)
	}
}

// KWh returns the number of kilowatt-hours.
func (e WattHours) KWh() float64 { return float64(e) / 1000 }
