package layout

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/alexiusacademia/gorebar/internal/geometry"
	"github.com/alexiusacademia/gorebar/internal/host"
	"github.com/alexiusacademia/gorebar/internal/metrics"
	"github.com/alexiusacademia/gorebar/internal/units"
)

const (
	kindReplicate = "replicate"
	kindMirror    = "mirror"
)

// ReplicationSpec stamps IDs Count times along Axis, Spacing apart.
type ReplicationSpec struct {
	IDs     []host.ElementID
	Axis    geometry.Vector
	Spacing units.Feet
	Count   int
	Label   string
}

// Iteration is the outcome of one replication step.
type Iteration struct {
	Index   int
	Offset  geometry.Vector
	Unit    UnitOfWork
	Created []host.ElementID
	Err     error
}

// ReplicationResult collects every iteration of a Replicate call.
type ReplicationResult struct {
	Iterations []Iteration
	Created    []host.ElementID
	Failures   []*ReplicationError
}

// Committed counts the iterations that persisted.
func (r *ReplicationResult) Committed() int {
	n := 0
	for _, it := range r.Iterations {
		if it.Unit.State == Committed {
			n++
		}
	}
	return n
}

// MirrorResult is the outcome of a single mirror.
type MirrorResult struct {
	Source  host.ElementID
	Plane   geometry.Plane
	Unit    UnitOfWork
	Created []host.ElementID
}

// Replicator copies and mirrors existing bars.
type Replicator struct {
	doc     host.Document
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewReplicator creates a replicator writing to doc.
func NewReplicator(doc host.Document, logger *zap.Logger, m *metrics.Metrics) *Replicator {
	return &Replicator{doc: doc, logger: logger, metrics: m}
}

// Replicate translates spec.IDs by i·Spacing along Axis for i in 1..Count,
// one transaction per i. A failed iteration is rolled back and recorded;
// later iterations still run unless the failure is fatal, in which case the
// partial result and the error are returned.
func (r *Replicator) Replicate(ctx context.Context, spec ReplicationSpec) (*ReplicationResult, error) {
	res := &ReplicationResult{}
	if err := checkCounts(spec); err != nil {
		return res, err
	}
	if spec.Count == 0 || spec.Spacing == 0 {
		r.logger.Debug("Nothing to replicate",
			zap.Int("count", spec.Count), zap.Float64("spacing", float64(spec.Spacing)))
		return res, nil
	}
	if err := checkTargets(spec); err != nil {
		return res, err
	}

	label := spec.Label
	if label == "" {
		label = "Copy Rebar"
	}
	axis := r3.Unit(spec.Axis)

	for i := 1; i <= spec.Count; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		offset := r3.Scale(float64(spec.Spacing)*float64(i), axis)
		iterLabel := fmt.Sprintf("%s %d/%d", label, i, spec.Count)

		var created []host.ElementID
		unit, err := runUnit(ctx, r.doc, kindReplicate, iterLabel, r.logger, r.metrics, func(tx host.Transaction) error {
			var err error
			created, err = tx.Translate(ctx, spec.IDs, offset)
			return err
		})

		it := Iteration{Index: i, Offset: offset, Unit: unit, Err: err}
		if err != nil {
			rerr := &ReplicationError{Unit: unit, Iteration: i, Err: err}
			it.Err = rerr
			res.Iterations = append(res.Iterations, it)
			res.Failures = append(res.Failures, rerr)
			r.logger.Error("Replication iteration failed", zap.Int("iteration", i), zap.Error(err))
			if IsFatal(err) {
				return res, rerr
			}
			continue
		}

		it.Created = created
		res.Iterations = append(res.Iterations, it)
		res.Created = append(res.Created, created...)
		r.metrics.ObserveCreated("copy", len(created))
	}

	r.logger.Info("Replication finished",
		zap.String("label", label),
		zap.Int("iterations", spec.Count),
		zap.Int("created", len(res.Created)),
		zap.Int("failed", len(res.Failures)))
	return res, nil
}

func checkCounts(spec ReplicationSpec) error {
	switch {
	case spec.Count < 0:
		return &PreconditionError{Op: "replicate", Reason: fmt.Sprintf("count must not be negative, got %d", spec.Count)}
	case spec.Spacing < 0:
		return &PreconditionError{Op: "replicate", Reason: fmt.Sprintf("spacing must not be negative, got %g", float64(spec.Spacing))}
	}
	return nil
}

func checkTargets(spec ReplicationSpec) error {
	switch {
	case len(spec.IDs) == 0:
		return &PreconditionError{Op: "replicate", Reason: "no elements to replicate"}
	case r3.Norm(spec.Axis) == 0:
		return &PreconditionError{Op: "replicate", Reason: "axis must be non-zero"}
	}
	return nil
}

// Mirror reflects id across the plane with the given normal through the
// centre of its bounding box. The reflected copy is a new element; the
// source is kept.
func (r *Replicator) Mirror(ctx context.Context, id host.ElementID, normal geometry.Vector) (MirrorResult, error) {
	res := MirrorResult{Source: id}
	if id.IsZero() {
		return res, &PreconditionError{Op: "mirror", Reason: "element is not resolved"}
	}

	label := "Mirror Rebar"
	unit, err := runUnit(ctx, r.doc, kindMirror, label, r.logger, r.metrics, func(tx host.Transaction) error {
		box, err := tx.BoundingBox(ctx, id)
		if err != nil {
			return err
		}
		plane, err := geometry.NewPlane(normal, box.Center())
		if err != nil {
			return err
		}
		res.Plane = plane

		created, err := tx.Mirror(ctx, id, plane)
		if err != nil {
			return err
		}
		if len(created) == 0 {
			return errEmptyMirror
		}
		res.Created = created
		return nil
	})
	res.Unit = unit
	if err != nil {
		r.logger.Error("Mirror failed", zap.String("id", string(id)), zap.Error(err))
		return res, &ReplicationError{Unit: unit, Err: err}
	}

	r.metrics.ObserveCreated("mirror", len(res.Created))
	r.logger.Info("Mirror committed", zap.String("id", string(id)), zap.Int("created", len(res.Created)))
	return res, nil
}

// ReplicateByType replicates every existing bar of barType.
func (r *Replicator) ReplicateByType(ctx context.Context, barType BarTypeRef, axis geometry.Vector,
	spacing units.Feet, count int) (*ReplicationResult, error) {
	if !barType.Resolved() {
		return &ReplicationResult{}, &PreconditionError{Op: "replicate", Reason: "bar type is not resolved"}
	}
	ids, err := r.doc.ElementsOfType(ctx, barType.ID)
	if err != nil {
		return &ReplicationResult{}, fmt.Errorf("failed to list bars of type %q: %w", barType.Name, err)
	}
	return r.Replicate(ctx, ReplicationSpec{
		IDs:     ids,
		Axis:    axis,
		Spacing: spacing,
		Count:   count,
		Label:   "Copy " + barType.Name,
	})
}

// MirrorByType mirrors every existing bar of barType, one transaction per
// bar. Failures are collected and do not stop the remaining bars unless
// they are fatal.
func (r *Replicator) MirrorByType(ctx context.Context, barType BarTypeRef, normal geometry.Vector) ([]MirrorResult, []error, error) {
	if !barType.Resolved() {
		return nil, nil, &PreconditionError{Op: "mirror", Reason: "bar type is not resolved"}
	}
	ids, err := r.doc.ElementsOfType(ctx, barType.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list bars of type %q: %w", barType.Name, err)
	}

	var (
		results []MirrorResult
		errs    []error
	)
	for _, id := range ids {
		res, err := r.Mirror(ctx, id, normal)
		if err != nil {
			errs = append(errs, err)
			if IsFatal(err) {
				return results, errs, err
			}
			continue
		}
		results = append(results, res)
	}
	return results, errs, nil
}
