// Package units converts sensor and forecast temperatures into the unit the
// station is configured to display.
package units

// Unit selects the display temperature unit.
type Unit uint8

const (
	Celsius Unit = iota
	Fahrenheit
)

// Suffix returns the single-letter label used on the display.
func (u Unit) Suffix() string {
	if u == Fahrenheit {
		return "F"
	}
	return "C"
}

// Convert takes a temperature in Celsius and returns it in u.
// Celsius mode is the identity.
func Convert(celsius float64, u Unit) float64 {
	if u == Fahrenheit {
		return celsius*9/5 + 32
	}
	return celsius
}
