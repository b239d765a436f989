package scenario

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/alexiusacademia/gorebar/internal/host"
	"github.com/alexiusacademia/gorebar/internal/layout"
)

// UnitWeightParameter is the type parameter holding linear mass.
const UnitWeightParameter = "Unit weight"

// UnitWeights writes the unit weight of every type named in the mapping, all
// in one transaction. Any failure rolls back every type.
func UnitWeights(ctx context.Context, s *layout.Session, p Params) (*Report, error) {
	rep := newReport("unit weights")

	types, err := s.Document.ListByClass(ctx, host.ClassElementType)
	if err != nil {
		return rep, err
	}

	var matched []host.Element
	for _, t := range types {
		if _, ok := p.UnitWeights[t.Name]; ok {
			matched = append(matched, t)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	_, err = s.Run(ctx, "unit_weights", "Update Rebar Unit Weights", func(tx host.Transaction) error {
		for _, t := range matched {
			value := p.UnitWeights[t.Name].Internal()
			if err := tx.SetParameter(ctx, t.ID, UnitWeightParameter, float64(value)); err != nil {
				return err
			}
			rep.addf("Set unit weight for %s to: %g internal units", t.Name, float64(value))
		}
		return nil
	})
	if err != nil {
		rep.Lines = nil
		rep.failf("Error: %v", err)
		return rep, err
	}

	s.Logger.Info("Unit weights updated", zap.Int("types", len(matched)))
	return rep, nil
}
