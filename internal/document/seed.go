package document

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/alexiusacademia/gorebar/internal/bars"
	"github.com/alexiusacademia/gorebar/internal/host"
	"github.com/alexiusacademia/gorebar/internal/units"
)

// WallSpec describes a wall panel to add to a document.
type WallSpec struct {
	Name      string
	Length    units.Feet
	Thickness units.Feet
	Height    units.Feet
}

// SeedSpec lists the elements Seed adds.
type SeedSpec struct {
	Walls    []WallSpec
	BarTypes []bars.Designation
}

// SeedResult reports what Seed created and what already existed.
type SeedResult struct {
	Walls    map[string]host.ElementID
	BarTypes map[string]host.ElementID
	Skipped  []string
}

// Seed adds walls and bar types in one transaction. Elements whose name
// already exists in their category or class are left untouched.
func (d *Document) Seed(ctx context.Context, spec SeedSpec) (*SeedResult, error) {
	if err := d.checkOpen(); err != nil {
		return nil, err
	}

	res := &SeedResult{
		Walls:    make(map[string]host.ElementID),
		BarTypes: make(map[string]host.ElementID),
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start seed transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, w := range spec.Walls {
		var n int
		if err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM elements WHERE category = ? AND name = ?`,
			string(host.CategoryWalls), w.Name).Scan(&n); err != nil {
			return nil, err
		}
		if n > 0 {
			res.Skipped = append(res.Skipped, w.Name)
			continue
		}
		id := newID()
		if err = insertElement(ctx, tx, id, host.CategoryWalls, "Wall", w.Name); err != nil {
			return nil, err
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO walls (id, length_ft, thickness_ft, height_ft) VALUES (?, ?, ?, ?)`,
			string(id), float64(w.Length), float64(w.Thickness), float64(w.Height)); err != nil {
			return nil, err
		}
		res.Walls[w.Name] = id
	}

	for _, b := range spec.BarTypes {
		var n int
		if err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM elements WHERE class = ? AND name = ?`,
			string(host.ClassRebarBarType), b.Name).Scan(&n); err != nil {
			return nil, err
		}
		if n > 0 {
			res.Skipped = append(res.Skipped, b.Name)
			continue
		}
		id := newID()
		if err = insertElement(ctx, tx, id, "", host.ClassRebarBarType, b.Name); err != nil {
			return nil, err
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO bar_types (id, diameter_ft) VALUES (?, ?)`,
			string(id), float64(b.Diameter())); err != nil {
			return nil, err
		}
		res.BarTypes[b.Name] = id
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit seed: %w", err)
	}
	d.logger.Info("Document seeded",
		zap.Int("walls", len(res.Walls)),
		zap.Int("bar_types", len(res.BarTypes)),
		zap.Int("skipped", len(res.Skipped)))
	return res, nil
}
