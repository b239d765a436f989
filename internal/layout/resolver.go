package layout

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/alexiusacademia/gorebar/internal/host"
	"github.com/alexiusacademia/gorebar/internal/metrics"
	"github.com/alexiusacademia/gorebar/internal/units"
)

// SurfaceRef is a resolved wall that bars attach to.
type SurfaceRef struct {
	ID   host.ElementID
	Name string
}

// Resolved reports whether the reference points at an element.
func (s SurfaceRef) Resolved() bool { return !s.ID.IsZero() }

// BarTypeRef is a resolved bar type and the diameter recorded on it.
type BarTypeRef struct {
	ID       host.ElementID
	Name     string
	Diameter units.Feet
}

// Resolved reports whether the reference points at an element.
func (b BarTypeRef) Resolved() bool { return !b.ID.IsZero() }

// Resolver turns names into catalog handles.
type Resolver struct {
	catalog host.Catalog
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewResolver creates a resolver over catalog.
func NewResolver(catalog host.Catalog, logger *zap.Logger, m *metrics.Metrics) *Resolver {
	return &Resolver{catalog: catalog, logger: logger, metrics: m}
}

// ToInternal converts a millimeter input to internal units.
func ToInternal(mm units.Millimeters) units.Feet {
	return units.ToInternal(mm)
}

// ResolveSurface finds the first wall named exactly name. A miss is a
// *LookupError.
func (r *Resolver) ResolveSurface(ctx context.Context, name string) (SurfaceRef, error) {
	id, ok, err := r.catalog.FindByCategoryAndName(ctx, host.CategoryWalls, name)
	if err != nil {
		return SurfaceRef{}, fmt.Errorf("failed to look up surface %q: %w", name, err)
	}
	if !ok {
		r.metrics.ObserveLookupMiss("surface")
		r.logger.Warn("Surface not found", zap.String("name", name))
		return SurfaceRef{}, &LookupError{What: "surface", Name: name}
	}
	return SurfaceRef{ID: id, Name: name}, nil
}

// ResolveBarType finds the first bar type named exactly name. A miss is a
// *LookupError.
func (r *Resolver) ResolveBarType(ctx context.Context, name string) (BarTypeRef, error) {
	id, ok, err := r.catalog.FindByClassAndName(ctx, host.ClassRebarBarType, name)
	if err != nil {
		return BarTypeRef{}, fmt.Errorf("failed to look up bar type %q: %w", name, err)
	}
	if !ok {
		r.metrics.ObserveLookupMiss("bar_type")
		r.logger.Warn("Bar type not found", zap.String("name", name))
		return BarTypeRef{}, &LookupError{What: "bar type", Name: name}
	}
	dia, err := r.catalog.BarDiameter(ctx, id)
	if err != nil {
		return BarTypeRef{}, fmt.Errorf("failed to read diameter of %q: %w", name, err)
	}
	return BarTypeRef{ID: id, Name: name, Diameter: dia}, nil
}
