package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// NewPolyline joins a fully computed point list into a BarPath. Consecutive
// segments share the same Point value so the chain is continuous by
// construction.
func NewPolyline(points ...Point) BarPath {
	if len(points) < 2 {
		return BarPath{}
	}
	segs := make([]Segment, 0, len(points)-1)
	for i := 0; i < len(points)-1; i++ {
		segs = append(segs, Segment{Start: points[i], End: points[i+1]})
	}
	return BarPath{Segments: segs}
}

// Validate checks the path has at least one segment, no degenerate segment
// and exact endpoint continuity.
func (p BarPath) Validate() error {
	if len(p.Segments) == 0 {
		return invalidf("bar path must have at least one segment")
	}
	for i, s := range p.Segments {
		if s.Length() == 0 {
			return invalidf("segment %d has zero length", i+1)
		}
		if i > 0 && p.Segments[i-1].End != s.Start {
			return invalidf("segment %d does not start where segment %d ends: %v != %v",
				i+1, i, s.Start, p.Segments[i-1].End)
		}
	}
	return nil
}

// Start returns the first point of the path.
func (p BarPath) Start() Point {
	if len(p.Segments) == 0 {
		return Point{}
	}
	return p.Segments[0].Start
}

// End returns the last point of the path.
func (p BarPath) End() Point {
	if len(p.Segments) == 0 {
		return Point{}
	}
	return p.Segments[len(p.Segments)-1].End
}

// Length returns the developed length of the centerline.
func (p BarPath) Length() float64 {
	var total float64
	for _, s := range p.Segments {
		total += s.Length()
	}
	return total
}

// Points returns the vertices of the path in order.
func (p BarPath) Points() []Point {
	if len(p.Segments) == 0 {
		return nil
	}
	pts := make([]Point, 0, len(p.Segments)+1)
	pts = append(pts, p.Segments[0].Start)
	for _, s := range p.Segments {
		pts = append(pts, s.End)
	}
	return pts
}

// Bounds returns the axis-aligned box enclosing every vertex.
func (p BarPath) Bounds() Box {
	pts := p.Points()
	if len(pts) == 0 {
		return Box{}
	}
	b := Box{Min: pts[0], Max: pts[0]}
	for _, v := range pts[1:] {
		b.Min.X = math.Min(b.Min.X, v.X)
		b.Min.Y = math.Min(b.Min.Y, v.Y)
		b.Min.Z = math.Min(b.Min.Z, v.Z)
		b.Max.X = math.Max(b.Max.X, v.X)
		b.Max.Y = math.Max(b.Max.Y, v.Y)
		b.Max.Z = math.Max(b.Max.Z, v.Z)
	}
	return b
}

// Translate returns a copy of p moved by v.
func (p BarPath) Translate(v Vector) BarPath {
	out := BarPath{Segments: make([]Segment, len(p.Segments))}
	for i, s := range p.Segments {
		out.Segments[i] = Segment{Start: r3.Add(s.Start, v), End: r3.Add(s.End, v)}
	}
	return out
}

// Mirror returns a copy of p reflected across pl.
func (p BarPath) Mirror(pl Plane) BarPath {
	out := BarPath{Segments: make([]Segment, len(p.Segments))}
	for i, s := range p.Segments {
		out.Segments[i] = Segment{Start: pl.Reflect(s.Start), End: pl.Reflect(s.End)}
	}
	return out
}

// PerpendicularTo reports whether every segment of p is orthogonal to
// normal within tol (cosine of the angle between them).
func (p BarPath) PerpendicularTo(normal Vector, tol float64) bool {
	n := r3.Norm(normal)
	if n == 0 {
		return false
	}
	for _, s := range p.Segments {
		l := s.Length()
		if l == 0 {
			continue
		}
		if math.Abs(r3.Dot(s.Direction(), normal))/(l*n) > tol {
			return false
		}
	}
	return true
}
