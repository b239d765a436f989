package scenario

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/alexiusacademia/gorebar/internal/geometry"
	"github.com/alexiusacademia/gorebar/internal/host"
	"github.com/alexiusacademia/gorebar/internal/layout"
	"github.com/alexiusacademia/gorebar/internal/units"
)

// LayerPlan is the computed geometry of one main layer before anything is
// written.
type LayerPlan struct {
	Face    Face
	Origin  geometry.Point
	Stagger units.Feet
	Types   []string
	Paths   []geometry.BarPath
}

// PlanLayer lays out the chain of a face. mainDiameter is the diameter of
// the top bar; it sets the bar origin and the splice stagger.
func PlanLayer(p Params, face Face, mainDiameter units.Feet) (LayerPlan, error) {
	lp := p.Layer(face)
	entries, err := lp.Entries()
	if err != nil {
		return LayerPlan{}, err
	}

	offsets := geometry.MainBarOffsets{
		Face:         geometry.FacePositive,
		Edge:         units.ToInternal(p.Wall.Edge),
		Cover:        units.ToInternal(p.Wall.Cover),
		LinkDiameter: units.ToInternal(p.Wall.LinkDiameter),
		MainDiameter: mainDiameter,
		Top:          units.ToInternal(lp.Top),
	}
	if face == FaceD {
		offsets.Face = geometry.FaceNegative
	} else {
		// Face B sits inside the outer layer: one more bar plus the clear gap.
		offsets.Inset = mainDiameter + units.ToInternal(lp.Clear)
	}
	origin := geometry.MainBarOrigin(p.Wall.Section(), offsets)

	chain := make([]geometry.ChainBar, len(entries))
	types := make([]string, len(entries))
	for i, e := range entries {
		chain[i] = geometry.ChainBar{Length: units.ToInternal(e.Length), Lap: units.ToInternal(e.Lap)}
		types[i] = e.Type
	}

	paths, err := geometry.LappedChain(origin, mainDiameter, lp.FirstSign, chain)
	if err != nil {
		return LayerPlan{}, err
	}
	return LayerPlan{Face: face, Origin: origin, Stagger: mainDiameter, Types: types, Paths: paths}, nil
}

// MainLayer creates the lapped chain of a face, one transaction per bar, and
// copies the created bars across the panel. A bar whose type is missing is
// skipped; bars created before it stay.
func MainLayer(ctx context.Context, s *layout.Session, p Params, face Face) (*Report, error) {
	rep := newReport(fmt.Sprintf("main layer %s", face))
	lp := p.Layer(face)
	if err := lp.Check(); err != nil {
		rep.failf("Layer %s: %s", face, err)
		return rep, err
	}

	surface, err := s.Resolver.ResolveSurface(ctx, p.Wall.Name)
	if err != nil {
		rep.failf("%s not found.", p.Wall.Name)
		return rep, err
	}

	entries, err := lp.Entries()
	if err != nil {
		return rep, err
	}
	types := make(map[string]layout.BarTypeRef)
	resolve := func(name string) (layout.BarTypeRef, error) {
		if ref, ok := types[name]; ok {
			return ref, nil
		}
		ref, err := s.Resolver.ResolveBarType(ctx, name)
		if err != nil {
			return ref, err
		}
		types[name] = ref
		return ref, nil
	}

	top, err := resolve(entries[0].Type)
	if err != nil {
		rep.failf("Rebar type '%s' not found.", entries[0].Type)
		return rep, err
	}

	plan, err := PlanLayer(p, face, top.Diameter)
	if err != nil {
		return rep, err
	}

	var ids []host.ElementID
	for i, path := range plan.Paths {
		n := i + 1
		bt, err := resolve(plan.Types[i])
		if err != nil {
			var lookup *layout.LookupError
			if errors.As(err, &lookup) {
				rep.skipf("Rebar type '%s' not found, bar r%d skipped.", plan.Types[i], n)
				continue
			}
			return rep, err
		}

		entity, err := s.Builder.CreateBar(ctx, layout.BarRequest{
			Label:            fmt.Sprintf("Create Rebar r%d", n),
			Surface:          surface,
			BarType:          bt,
			Path:             path,
			Normal:           geometry.BasisY,
			StartHook:        host.HookLeft,
			EndHook:          host.HookRight,
			UseExistingShape: true,
		})
		if err != nil {
			rep.failf("Failed to create rebar r%d: %v", n, err)
			if layout.IsFatal(err) {
				return rep, err
			}
			continue
		}
		ids = append(ids, entity.ID)
		rep.created(entity.ID)
		rep.addf("Rebar r%d (%s, %.0f mm) created.", n, bt.Name, path.Length()*units.MMPerFoot)
	}

	if len(ids) == 0 {
		rep.addf("No bars created, layer copy skipped.")
		return rep, nil
	}

	res, err := s.Replicator.Replicate(ctx, layout.ReplicationSpec{
		IDs:     ids,
		Axis:    geometry.BasisX,
		Spacing: units.ToInternal(lp.Spacing),
		Count:   lp.Copies,
		Label:   "Copy Rebar Layer",
	})
	if res != nil {
		rep.created(res.Created...)
		for _, f := range res.Failures {
			rep.failf("Failed to copy the rebar layer: %v", f)
		}
	}
	if err != nil {
		return rep, err
	}
	rep.addf("%d copies of the rebar layer created.", res.Committed())

	s.Logger.Info("Main layer finished",
		zap.String("face", string(face)),
		zap.Int("created", len(rep.Created)),
		zap.Int("failed", rep.Failed),
		zap.Int("skipped", rep.Skipped))
	return rep, nil
}
