package geometry

import (
	"math"

	"github.com/alexiusacademia/gorebar/internal/units"
)

// WallSection locates a diaphragm wall panel. Origin is the top centre of
// the panel's reference edge: X = 0 at the panel end, Y = 0 on the wall
// centreline, Z = 0 at the reference level.
type WallSection struct {
	Origin    Point
	Length    units.Feet
	Thickness units.Feet
}

// Face selects which side of the wall a main bar layer sits on.
type Face int

const (
	// FacePositive is the +Y face (layer B).
	FacePositive Face = iota
	// FaceNegative is the -Y face (layer D).
	FaceNegative
)

func (f Face) String() string {
	if f == FaceNegative {
		return "negative"
	}
	return "positive"
}

// MainBarOffsets positions the first bar of a vertical main layer.
type MainBarOffsets struct {
	Face         Face
	Edge         units.Feet // panel end to the link's outer face
	Cover        units.Feet // wall face to the link's outer face
	LinkDiameter units.Feet
	MainDiameter units.Feet
	Inset        units.Feet // extra distance inward from the outermost layer
	Top          units.Feet // bar top above the origin
}

// MainBarOrigin returns the start point of the first bar of a main layer.
func MainBarOrigin(w WallSection, o MainBarOffsets) Point {
	half := float64(w.Thickness) / 2
	toCentre := float64(o.Cover) + float64(o.LinkDiameter) + float64(o.MainDiameter)/2 + float64(o.Inset)

	p := Point{
		X: w.Origin.X + float64(o.Edge) + float64(o.LinkDiameter) + float64(o.MainDiameter)/2,
		Z: w.Origin.Z + float64(o.Top),
	}
	if o.Face == FaceNegative {
		p.Y = w.Origin.Y - half + toCentre
	} else {
		p.Y = w.Origin.Y + half - toCentre
	}
	return p
}

// StraightBar returns a single vertical bar running down from start.
func StraightBar(start Point, length units.Feet) BarPath {
	end := Point{X: start.X, Y: start.Y, Z: start.Z - float64(length)}
	return NewPolyline(start, end)
}

// ChainBar is one bar of a lapped vertical chain. Lap is the overlap with
// the bar above and is ignored for the first bar.
type ChainBar struct {
	Length units.Feet
	Lap    units.Feet
}

// LappedChain lays out spliced vertical bars from the top down. Each bar
// starts Lap above the end of the bar before it and is shifted sideways (Y)
// by stagger. The shift starts in the direction of firstSign and flips on
// every consecutive lap, so spliced bars zig-zag either side of the line.
func LappedChain(origin Point, stagger units.Feet, firstSign int, chain []ChainBar) ([]BarPath, error) {
	if len(chain) == 0 {
		return nil, invalidf("lapped chain needs at least one bar")
	}
	if firstSign != 1 && firstSign != -1 {
		return nil, invalidf("stagger sign must be +1 or -1, got %d", firstSign)
	}
	if stagger < 0 {
		return nil, invalidf("stagger must not be negative")
	}

	paths := make([]BarPath, 0, len(chain))
	sign := float64(firstSign)
	var prev BarPath
	for i, bar := range chain {
		if bar.Length <= 0 {
			return nil, invalidf("bar %d length must be positive", i+1)
		}
		start := origin
		if i > 0 {
			if bar.Lap <= 0 || bar.Lap >= bar.Length {
				return nil, invalidf("bar %d lap must be positive and shorter than the bar", i+1)
			}
			start = Point{
				X: prev.Start().X,
				Y: prev.Start().Y + sign*float64(stagger),
				Z: prev.End().Z + float64(bar.Lap),
			}
			sign = -sign
		}
		prev = StraightBar(start, bar.Length)
		paths = append(paths, prev)
	}
	return paths, nil
}

// InclineOffset returns the run along the routing axis of an inclined leg
// that travels dist perpendicular to it at angle from the perpendicular.
func InclineOffset(dist units.Feet, angle units.Radians) units.Feet {
	return units.Feet(float64(dist) * math.Tan(float64(angle)))
}
