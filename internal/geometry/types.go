package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point is a location in the host's internal units.
// The coordinate system follows the wall: X runs along the panel length,
// Y through the thickness and Z is vertical.
type Point = r3.Vec

// Vector is a direction or displacement in internal units.
type Vector = r3.Vec

// Basis vectors of the host coordinate system.
var (
	BasisX = Vector{X: 1}
	BasisY = Vector{Y: 1}
	BasisZ = Vector{Z: 1}
)

// Segment is one straight leg of a bar centerline.
type Segment struct {
	Start Point
	End   Point
}

// Direction returns End - Start.
func (s Segment) Direction() Vector {
	return r3.Sub(s.End, s.Start)
}

// Length returns the segment length.
func (s Segment) Length() float64 {
	return r3.Norm(s.Direction())
}

// BarPath is the centerline of one physical bar as a chain of connected
// straight segments. Segment i ends exactly where segment i+1 starts.
type BarPath struct {
	Segments []Segment
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min Point
	Max Point
}

// Center returns the midpoint of the box.
func (b Box) Center() Point {
	return r3.Add(b.Min, r3.Scale(0.5, r3.Sub(b.Max, b.Min)))
}

// Plane is defined by an origin and a unit normal.
type Plane struct {
	Origin Point
	Normal Vector
}

// NewPlane builds a plane, normalizing the given normal.
func NewPlane(normal Vector, origin Point) (Plane, error) {
	if r3.Norm(normal) == 0 {
		return Plane{}, &ValidationError{msg: "plane normal must be non-zero"}
	}
	return Plane{Origin: origin, Normal: r3.Unit(normal)}, nil
}

// Reflect mirrors p across the plane.
func (pl Plane) Reflect(p Point) Point {
	dist := r3.Dot(r3.Sub(p, pl.Origin), pl.Normal)
	return r3.Sub(p, r3.Scale(2*dist, pl.Normal))
}

// ReflectVector mirrors a direction across the plane. Unlike Reflect it
// ignores the plane origin.
func (pl Plane) ReflectVector(v Vector) Vector {
	return r3.Sub(v, r3.Scale(2*r3.Dot(v, pl.Normal), pl.Normal))
}

// ValidationError reports geometry that cannot be turned into a bar.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func invalidf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}
