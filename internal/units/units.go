// Package units holds the unit types used across gorebar.
//
// Inputs arrive in millimeters and are converted once to the host's internal
// linear unit (decimal feet). Geometry code only ever accepts Feet, so a
// millimeter value cannot reach it without an explicit conversion.
package units

import "math"

// MMPerFoot is the number of millimeters in one internal unit.
const MMPerFoot = 304.8

// Millimeters is an externally supplied length.
type Millimeters float64

// Feet is the internal linear unit used by all geometry.
type Feet float64

// Degrees is an externally supplied angle.
type Degrees float64

// Radians is the internal angle unit.
type Radians float64

// KgPerMeter is a linear mass as published in bar tables.
type KgPerMeter float64

// KgPerFoot is linear mass in internal units.
type KgPerFoot float64

// ToInternal converts a millimeter length to internal units.
func ToInternal(mm Millimeters) Feet {
	return Feet(float64(mm) / MMPerFoot)
}

// Internal is shorthand for ToInternal(mm).
func (mm Millimeters) Internal() Feet {
	return ToInternal(mm)
}

// Millimeters converts back to millimeters, for reports only.
func (f Feet) Millimeters() Millimeters {
	return Millimeters(float64(f) * MMPerFoot)
}

// Radians converts the angle once for trigonometry.
func (d Degrees) Radians() Radians {
	return Radians(float64(d) * math.Pi / 180)
}

// Internal converts a published unit weight to kg per internal unit.
func (w KgPerMeter) Internal() KgPerFoot {
	return KgPerFoot(float64(w) * MMPerFoot / 1000)
}
