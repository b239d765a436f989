// Package host defines the contracts gorebar needs from the document that
// owns walls, bar types and bars. internal/document provides the SQLite
// implementation; tests provide in-memory fakes.
package host

import (
	"context"
	"errors"

	"github.com/alexiusacademia/gorebar/internal/geometry"
	"github.com/alexiusacademia/gorebar/internal/units"
)

var (
	// ErrNotFound is returned when an element id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrTransactionClosed is returned by calls on a committed or rolled back transaction.
	ErrTransactionClosed = errors.New("transaction already closed")
	// ErrDiscontinuous is returned when a curve chain has disjoint endpoints.
	ErrDiscontinuous = errors.New("curve chain is not continuous")
	// ErrDocumentClosed means the document can no longer be written to.
	ErrDocumentClosed = errors.New("document is closed")
)

// ElementID is an opaque handle to an element of the document. The zero
// value is an unresolved handle.
type ElementID string

// IsZero reports whether the id is unresolved.
func (id ElementID) IsZero() bool { return id == "" }

// Category groups model instances (walls, floors, ...).
type Category string

// Class identifies element types.
type Class string

const (
	CategoryWalls Category = "Walls"

	ClassRebarBarType Class = "RebarBarType"
	ClassRebar        Class = "Rebar"
	// ClassElementType matches every type element (bar types included).
	ClassElementType Class = "ElementType"
)

// HookOrientation is the side a bar end hook turns toward, looking along
// the bar from start to end with the normal pointing up.
type HookOrientation string

const (
	HookLeft  HookOrientation = "left"
	HookRight HookOrientation = "right"
)

// Opposite returns the orientation a mirrored bar carries.
func (h HookOrientation) Opposite() HookOrientation {
	if h == HookLeft {
		return HookRight
	}
	return HookLeft
}

// Element is a named catalog entry.
type Element struct {
	ID       ElementID
	Category Category
	Class    Class
	Name     string
}

// Catalog looks elements up by name. Lookups return the first element whose
// name matches exactly (case-sensitive); absence is ok == false, not an error.
type Catalog interface {
	FindByCategoryAndName(ctx context.Context, category Category, name string) (ElementID, bool, error)
	FindByClassAndName(ctx context.Context, class Class, name string) (ElementID, bool, error)
	ListByClass(ctx context.Context, class Class) ([]Element, error)
	// ElementsOfType returns the bars whose type is typeID.
	ElementsOfType(ctx context.Context, typeID ElementID) ([]ElementID, error)
	// BarDiameter returns the nominal diameter recorded on a bar type.
	BarDiameter(ctx context.Context, typeID ElementID) (units.Feet, error)
}

// Document is the host document: a catalog plus transactional writes.
type Document interface {
	Catalog
	Begin(ctx context.Context, label string) (Transaction, error)
}

// CurveChainRequest carries the arguments of the bar creation primitive.
type CurveChainRequest struct {
	Host             ElementID
	BarType          ElementID
	StartHook        HookOrientation
	EndHook          HookOrientation
	Normal           geometry.Vector
	Curves           []geometry.Segment
	UseExistingShape bool
	DeformIn3D       bool
}

// Transaction is a scoped write boundary. Nothing done through it is
// visible after Rollback. After Commit or Rollback every call returns
// ErrTransactionClosed.
type Transaction interface {
	Label() string
	CreateFromCurveChain(ctx context.Context, req CurveChainRequest) (ElementID, error)
	Translate(ctx context.Context, ids []ElementID, v geometry.Vector) ([]ElementID, error)
	Mirror(ctx context.Context, id ElementID, plane geometry.Plane) ([]ElementID, error)
	BoundingBox(ctx context.Context, id ElementID) (geometry.Box, error)
	SetParameter(ctx context.Context, id ElementID, name string, value float64) error
	Commit() error
	Rollback() error
}
