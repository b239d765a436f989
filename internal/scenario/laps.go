package scenario

import (
	"fmt"

	"github.com/alexiusacademia/gorebar/internal/bars"
	"github.com/alexiusacademia/gorebar/internal/nscp"
)

// Splice is the lap between a bar of the chain and the bar above it.
type Splice struct {
	Bar   int // 1-based index of the lower bar
	Type  string
	Check nscp.LapCheck
}

// Message renders the check the way the reports print it.
func (s Splice) Message() string {
	mark := "✓"
	if !s.Check.MeetsCompression() {
		mark = "⚠"
	}
	line := fmt.Sprintf("%s r%d %s lap %.0f mm (compression min %.0f mm", mark, s.Bar, s.Type,
		s.Check.Provided, s.Check.Compression)
	if s.Check.MeetsTension() {
		return line + ", tension class B OK)"
	}
	return line + fmt.Sprintf(", tension class B %.0f mm)", s.Check.Tension)
}

// CheckLaps evaluates every splice of a face against the material strengths.
// Bars with an unknown designation are left out.
func CheckLaps(p Params, face Face) ([]Splice, error) {
	entries, err := p.Layer(face).Entries()
	if err != nil {
		return nil, err
	}
	m := p.Materials.NSCP()
	var out []Splice
	for i, e := range entries {
		if i == 0 {
			continue
		}
		d, ok := bars.Lookup(e.Type)
		if !ok {
			continue
		}
		out = append(out, Splice{
			Bar:   i + 1,
			Type:  e.Type,
			Check: nscp.CheckLap(m, float64(d.DiameterMM), float64(e.Lap)),
		})
	}
	return out, nil
}
