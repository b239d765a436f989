package scenario

import (
	"context"

	"github.com/alexiusacademia/gorebar/internal/geometry"
	"github.com/alexiusacademia/gorebar/internal/host"
	"github.com/alexiusacademia/gorebar/internal/layout"
	"github.com/alexiusacademia/gorebar/internal/units"
)

// ExLinkGeometry computes the link path for a bar of diameter dLink.
func ExLinkGeometry(p Params, dLink units.Feet) (geometry.BarPath, geometry.ExLinkPoints) {
	return geometry.ExLink(p.Wall.Section(), geometry.ExLinkParams{
		LinkDiameter: dLink,
		Edge:         units.ToInternal(p.Wall.Edge),
		Cover:        units.ToInternal(p.Wall.Cover),
		Elevation:    units.ToInternal(p.ExLink.Elevation),
		Leg:          units.ToInternal(p.ExLink.Leg),
		EndOffset:    units.ToInternal(p.ExLink.EndOffset),
		Incline:      units.ToInternal(p.ExLink.Incline),
		Angle:        p.ExLink.Angle.Radians(),
	})
}

// ExLink creates one EX-link in the wall.
func ExLink(ctx context.Context, s *layout.Session, p Params) (*Report, error) {
	rep := newReport("EX-link")

	surface, err := s.Resolver.ResolveSurface(ctx, p.Wall.Name)
	if err != nil {
		rep.failf("%s or Rebar type '%s' not found.", p.Wall.Name, p.ExLink.BarType)
		return rep, err
	}
	bt, err := s.Resolver.ResolveBarType(ctx, p.ExLink.BarType)
	if err != nil {
		rep.failf("%s or Rebar type '%s' not found.", p.Wall.Name, p.ExLink.BarType)
		return rep, err
	}

	path, pts := ExLinkGeometry(p, bt.Diameter)
	entity, err := s.Builder.CreateBar(ctx, layout.BarRequest{
		Label:            "Create EX-Link Rebar",
		Surface:          surface,
		BarType:          bt,
		Path:             path,
		Normal:           geometry.BasisZ,
		StartHook:        host.HookLeft,
		EndHook:          host.HookRight,
		UseExistingShape: true,
		DeformIn3D:       true,
	})
	if err != nil {
		rep.failf("Failed to create EX-Link Rebar: %v", err)
		return rep, err
	}
	rep.created(entity.ID)
	rep.addf("The EX-link rebar is created (incline run %.1f mm).", float64(pts.DeltaX.Millimeters()))
	return rep, nil
}

// CopyExLinks stacks every bar of the configured type downward at the
// configured spacing until Instances bars exist per original.
func CopyExLinks(ctx context.Context, s *layout.Session, p Params) (*Report, error) {
	rep := newReport("copy EX-links")
	cp := p.CopyExLinks

	bt, err := s.Resolver.ResolveBarType(ctx, cp.BarType)
	if err != nil {
		rep.failf("No rebar type found with the name '%s'.", cp.BarType)
		return rep, err
	}
	ids, err := s.Document.ElementsOfType(ctx, bt.ID)
	if err != nil {
		return rep, err
	}
	if len(ids) == 0 {
		rep.skipf("No rebars found of type '%s'.", cp.BarType)
		return rep, nil
	}
	rep.addf("Found %d rebars of type '%s'.", len(ids), cp.BarType)

	res, err := s.Replicator.Replicate(ctx, layout.ReplicationSpec{
		IDs:     ids,
		Axis:    geometry.Vector{Z: -1},
		Spacing: units.ToInternal(cp.Spacing),
		Count:   cp.Instances - 1,
		Label:   "Copy Rebar",
	})
	if res != nil {
		rep.created(res.Created...)
		for _, f := range res.Failures {
			rep.failf("Failed to copy rebar: %v", f)
		}
	}
	if err != nil {
		return rep, err
	}
	rep.addf("Successfully copied %d rebars %d times.", len(ids), res.Committed())
	return rep, nil
}

// MirrorExLinks mirrors every bar of the configured type across the plane
// normal to Y through its own bounding box centre.
func MirrorExLinks(ctx context.Context, s *layout.Session, p Params) (*Report, error) {
	rep := newReport("mirror EX-links")
	mp := p.MirrorExLinks

	bt, err := s.Resolver.ResolveBarType(ctx, mp.BarType)
	if err != nil {
		rep.failf("No rebar type found with the name '%s'.", mp.BarType)
		return rep, err
	}

	results, errs, err := s.Replicator.MirrorByType(ctx, bt, geometry.BasisY)
	for _, r := range results {
		rep.created(r.Created...)
	}
	for _, e := range errs {
		rep.failf("Failed to mirror rebar: %v", e)
	}
	if err != nil {
		return rep, err
	}
	if len(results) == 0 && len(errs) == 0 {
		rep.skipf("No rebars found of type '%s'.", mp.BarType)
		return rep, nil
	}
	rep.addf("%d rebars mirrored successfully.", len(results))
	return rep, nil
}
