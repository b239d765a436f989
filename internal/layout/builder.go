package layout

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/alexiusacademia/gorebar/internal/geometry"
	"github.com/alexiusacademia/gorebar/internal/host"
	"github.com/alexiusacademia/gorebar/internal/metrics"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	kindCreateBar = "create_bar"

	// normalTolerance bounds |cos| between the normal and any segment.
	normalTolerance = 1e-9
)

// BarRequest is everything needed to create one bar.
type BarRequest struct {
	Label            string
	Surface          SurfaceRef
	BarType          BarTypeRef
	Path             geometry.BarPath
	Normal           geometry.Vector
	StartHook        host.HookOrientation
	EndHook          host.HookOrientation
	UseExistingShape bool
	DeformIn3D       bool
}

// BarEntity is a committed bar.
type BarEntity struct {
	ID      host.ElementID
	BarType BarTypeRef
	Path    geometry.BarPath
	Unit    UnitOfWork
}

// Builder creates bars, one transaction per bar.
type Builder struct {
	doc     host.Document
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewBuilder creates a builder writing to doc.
func NewBuilder(doc host.Document, logger *zap.Logger, m *metrics.Metrics) *Builder {
	return &Builder{doc: doc, logger: logger, metrics: m}
}

// CreateBar validates req and creates the bar in its own transaction. A
// failure rolls back only this bar; bars committed earlier are unaffected.
func (b *Builder) CreateBar(ctx context.Context, req BarRequest) (BarEntity, error) {
	if err := checkBarRequest(req); err != nil {
		b.logger.Error("Bar request rejected", zap.String("label", req.Label), zap.Error(err))
		return BarEntity{}, err
	}

	label := req.Label
	if label == "" {
		label = "Create Rebar"
	}

	var id host.ElementID
	unit, err := runUnit(ctx, b.doc, kindCreateBar, label, b.logger, b.metrics, func(tx host.Transaction) error {
		var err error
		id, err = tx.CreateFromCurveChain(ctx, host.CurveChainRequest{
			Host:             req.Surface.ID,
			BarType:          req.BarType.ID,
			StartHook:        req.StartHook,
			EndHook:          req.EndHook,
			Normal:           req.Normal,
			Curves:           req.Path.Segments,
			UseExistingShape: req.UseExistingShape,
			DeformIn3D:       req.DeformIn3D,
		})
		return err
	})
	if err != nil {
		b.logger.Error("Failed to create bar",
			zap.String("label", label), zap.String("bar_type", req.BarType.Name), zap.Error(err))
		return BarEntity{}, &CreationError{Unit: unit, Err: err}
	}

	b.metrics.ObserveCreated("bar", 1)
	b.logger.Info("Bar created",
		zap.String("label", label),
		zap.String("id", string(id)),
		zap.String("bar_type", req.BarType.Name),
		zap.Int("segments", len(req.Path.Segments)))
	return BarEntity{ID: id, BarType: req.BarType, Path: req.Path, Unit: unit}, nil
}

func checkBarRequest(req BarRequest) error {
	const op = "create bar"
	if !req.Surface.Resolved() {
		return &PreconditionError{Op: op, Reason: "host surface is not resolved"}
	}
	if !req.BarType.Resolved() {
		return &PreconditionError{Op: op, Reason: "bar type is not resolved"}
	}
	if err := req.Path.Validate(); err != nil {
		return &PreconditionError{Op: op, Reason: "invalid bar path", Err: err}
	}
	if math.Abs(r3.Norm(req.Normal)-1) > normalTolerance {
		return &PreconditionError{Op: op, Reason: "normal must be a unit vector"}
	}
	if !req.Path.PerpendicularTo(req.Normal, normalTolerance) {
		return &PreconditionError{Op: op, Reason: "normal is not perpendicular to the bar plane"}
	}
	return nil
}
