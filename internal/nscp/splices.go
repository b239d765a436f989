// Package nscp holds the NSCP 2015 provisions used to check bar splices.
package nscp

import (
	"fmt"
	"math"
)

// NSCP 2015 splice constants
const (
	// Minimum length of any lap splice (Sections 425.5.2.1 and 425.5.5.1)
	MinLap = 300.0 // mm

	// Lightweight concrete factor, normal weight
	Lambda = 1.0

	// Tension lap class B factor (Section 425.5.2.1)
	ClassBFactor = 1.3

	// Bars larger than this use the 1.7 divisor for tension development
	// (Table 425.4.2.3, No. 22 and larger)
	largeBarDiameter = 20.0 // mm
)

// Materials are the design strengths in MPa.
type Materials struct {
	Fc float64 // concrete compressive strength f'c
	Fy float64 // steel yield strength
}

// Validate checks the strengths are usable.
func (m Materials) Validate() error {
	if m.Fc <= 0 || m.Fy <= 0 {
		return fmt.Errorf("f'c and fy must be positive, got %.1f and %.1f MPa", m.Fc, m.Fy)
	}
	return nil
}

// CompressionLap returns the minimum compression lap of a bar
// NSCP 2015 Section 425.5.5.1
func CompressionLap(m Materials, db float64) float64 {
	var l float64
	if m.Fy <= 420 {
		l = 0.071 * m.Fy * db
	} else {
		l = (0.13*m.Fy - 24) * db
	}
	// One third more when f'c < 21 MPa (Section 425.5.5.2)
	if m.Fc < 21 {
		l *= 4.0 / 3.0
	}
	return math.Max(l, MinLap)
}

// TensionDevelopment returns the simplified tension development length
// with clear spacing and cover of at least db
// NSCP 2015 Table 425.4.2.3
func TensionDevelopment(m Materials, db float64) float64 {
	divisor := 2.1
	if db > largeBarDiameter {
		divisor = 1.7
	}
	// ψt = ψe = 1.0 (vertical bars, uncoated)
	ld := m.Fy / (divisor * Lambda * math.Sqrt(m.Fc)) * db
	return math.Max(ld, MinLap)
}

// TensionLap returns the class B tension lap
// NSCP 2015 Section 425.5.2.1
func TensionLap(m Materials, db float64) float64 {
	return math.Max(ClassBFactor*TensionDevelopment(m, db), MinLap)
}

// LapCheck compares a provided lap with the required ones.
type LapCheck struct {
	Provided    float64 // mm
	Compression float64 // mm
	Tension     float64 // mm
}

// CheckLap evaluates a lap of the given length for a bar of diameter db.
func CheckLap(m Materials, db, provided float64) LapCheck {
	return LapCheck{
		Provided:    provided,
		Compression: CompressionLap(m, db),
		Tension:     TensionLap(m, db),
	}
}

// MeetsCompression reports whether the lap satisfies the compression lap.
func (c LapCheck) MeetsCompression() bool { return c.Provided >= c.Compression }

// MeetsTension reports whether the lap satisfies the class B tension lap.
func (c LapCheck) MeetsTension() bool { return c.Provided >= c.Tension }
