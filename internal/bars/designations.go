package bars

import (
	"math"

	"github.com/alexiusacademia/gorebar/internal/units"
)

// Designation is a standard high-yield deformed bar size.
type Designation struct {
	Name       string
	DiameterMM units.Millimeters // nominal diameter
	UnitWeight units.KgPerMeter  // nominal mass per length
}

// Diameter returns the nominal diameter in internal units.
func (d Designation) Diameter() units.Feet {
	return units.ToInternal(d.DiameterMM)
}

// Area returns the nominal cross-sectional area in mm².
func (d Designation) Area() float64 {
	r := float64(d.DiameterMM) / 2
	return math.Pi * r * r
}

// Standard holds the bar sizes available to scenarios. Unit weights for
// H13 and above are the values used for project quantity take-off.
var Standard = []Designation{
	{Name: "H10", DiameterMM: 10, UnitWeight: 0.617},
	{Name: "H12", DiameterMM: 12, UnitWeight: 0.888},
	{Name: "H13", DiameterMM: 13, UnitWeight: 1.040},
	{Name: "H16", DiameterMM: 16, UnitWeight: 1.580},
	{Name: "H20", DiameterMM: 20, UnitWeight: 2.470},
	{Name: "H25", DiameterMM: 25, UnitWeight: 3.854},
	{Name: "H32", DiameterMM: 32, UnitWeight: 6.313},
	{Name: "H40", DiameterMM: 40, UnitWeight: 9.864},
}

// Lookup finds a designation by exact, case-sensitive name.
func Lookup(name string) (Designation, bool) {
	for _, d := range Standard {
		if d.Name == name {
			return d, true
		}
	}
	return Designation{}, false
}

// UnitWeights maps designation names to their unit weight.
func UnitWeights() map[string]units.KgPerMeter {
	m := make(map[string]units.KgPerMeter, len(Standard))
	for _, d := range Standard {
		m[d.Name] = d.UnitWeight
	}
	return m
}
