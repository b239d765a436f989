package geometry

import "github.com/alexiusacademia/gorebar/internal/units"

// ExLinkParams describes a horizontal five-leg EX-link.
type ExLinkParams struct {
	LinkDiameter units.Feet
	Edge         units.Feet // panel end to the link's outer face
	Cover        units.Feet
	Elevation    units.Feet // link level above the origin
	Leg          units.Feet // hook leg length at both ends
	EndOffset    units.Feet // clearance from the panel midline to the inclined leg
	Incline      units.Feet // perpendicular travel of the inclined leg
	Angle        units.Radians
}

// ExLinkPoints holds the vertices of an EX-link in routing order.
type ExLinkPoints struct {
	HookStart Point // P1'
	P1        Point
	P2        Point
	P3        Point
	P4        Point
	P5        Point
	DeltaX    units.Feet
}

// Ordered returns the vertices in routing order.
func (p ExLinkPoints) Ordered() []Point {
	return []Point{p.HookStart, p.P1, p.P2, p.P3, p.P4, p.P5}
}

// ExLinkVertices computes all six vertices of the link. The hook leg at P1
// points +X, the link crosses the thickness to the -Y face, runs along it
// toward the midline, returns across on an incline and ends with a hook leg
// pointing -X.
func ExLinkVertices(w WallSection, p ExLinkParams) ExLinkPoints {
	o := w.Origin
	half := float64(w.Thickness) / 2
	z := o.Z + float64(p.Elevation)
	dLink := float64(p.LinkDiameter)
	cover := float64(p.Cover)

	var pts ExLinkPoints
	pts.P1 = Point{X: o.X + float64(p.Edge) + dLink/2, Y: o.Y + half - cover, Z: z}
	pts.HookStart = Point{X: pts.P1.X + float64(p.Leg), Y: pts.P1.Y, Z: z}
	pts.P2 = Point{X: pts.P1.X, Y: o.Y - half + cover + dLink/2, Z: z}
	pts.P3 = Point{X: o.X + float64(w.Length)/2 - float64(p.EndOffset) - dLink/2, Y: pts.P2.Y, Z: z}

	pts.DeltaX = InclineOffset(p.Incline, p.Angle)
	pts.P4 = Point{X: pts.P3.X - float64(pts.DeltaX), Y: o.Y + half - cover - dLink/2, Z: z}
	pts.P5 = Point{X: pts.P4.X - float64(p.Leg), Y: pts.P4.Y, Z: z}
	return pts
}

// ExLink returns the five-segment centerline of an EX-link.
func ExLink(w WallSection, p ExLinkParams) (BarPath, ExLinkPoints) {
	pts := ExLinkVertices(w, p)
	return NewPolyline(pts.Ordered()...), pts
}
