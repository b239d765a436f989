package document

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexiusacademia/gorebar/internal/host"
	"github.com/alexiusacademia/gorebar/internal/units"
)

// FindByCategoryAndName returns the first instance element of category
// named exactly name.
func (d *Document) FindByCategoryAndName(ctx context.Context, category host.Category, name string) (host.ElementID, bool, error) {
	return d.findFirst(ctx,
		`SELECT id FROM elements WHERE category = ? AND name = ? ORDER BY rowid LIMIT 1`,
		string(category), name)
}

// FindByClassAndName returns the first element of class named exactly name.
// host.ClassElementType matches any type element.
func (d *Document) FindByClassAndName(ctx context.Context, class host.Class, name string) (host.ElementID, bool, error) {
	if class == host.ClassElementType {
		return d.findFirst(ctx,
			`SELECT id FROM elements WHERE class LIKE '%Type' AND name = ? ORDER BY rowid LIMIT 1`, name)
	}
	return d.findFirst(ctx,
		`SELECT id FROM elements WHERE class = ? AND name = ? ORDER BY rowid LIMIT 1`,
		string(class), name)
}

func (d *Document) findFirst(ctx context.Context, query string, args ...any) (host.ElementID, bool, error) {
	if err := d.checkOpen(); err != nil {
		return "", false, err
	}
	var id string
	err := d.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("catalog lookup failed: %w", err)
	}
	return host.ElementID(id), true, nil
}

// ListByClass returns every element of class in creation order.
func (d *Document) ListByClass(ctx context.Context, class host.Class) ([]host.Element, error) {
	if err := d.checkOpen(); err != nil {
		return nil, err
	}

	query := `SELECT id, category, class, name FROM elements WHERE class = ? ORDER BY rowid`
	args := []any{string(class)}
	if class == host.ClassElementType {
		query = `SELECT id, category, class, name FROM elements WHERE class LIKE '%Type' ORDER BY rowid`
		args = nil
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s elements: %w", class, err)
	}
	defer rows.Close()

	var out []host.Element
	for rows.Next() {
		var e host.Element
		var id, category, cls string
		if err := rows.Scan(&id, &category, &cls, &e.Name); err != nil {
			return nil, err
		}
		e.ID, e.Category, e.Class = host.ElementID(id), host.Category(category), host.Class(cls)
		out = append(out, e)
	}
	return out, rows.Err()
}

// ElementsOfType returns the bars of the given bar type in creation order.
func (d *Document) ElementsOfType(ctx context.Context, typeID host.ElementID) ([]host.ElementID, error) {
	if err := d.checkOpen(); err != nil {
		return nil, err
	}
	rows, err := d.db.QueryContext(ctx,
		`SELECT r.id FROM rebars r JOIN elements e ON e.id = r.id WHERE r.type_id = ? ORDER BY e.rowid`,
		string(typeID))
	if err != nil {
		return nil, fmt.Errorf("failed to list bars of type: %w", err)
	}
	defer rows.Close()

	var out []host.ElementID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, host.ElementID(id))
	}
	return out, rows.Err()
}

// BarDiameter returns the nominal diameter stored for a bar type.
func (d *Document) BarDiameter(ctx context.Context, typeID host.ElementID) (units.Feet, error) {
	if err := d.checkOpen(); err != nil {
		return 0, err
	}
	var dia float64
	err := d.db.QueryRowContext(ctx, `SELECT diameter_ft FROM bar_types WHERE id = ?`, string(typeID)).Scan(&dia)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("bar type %s: %w", typeID, host.ErrNotFound)
	}
	return units.Feet(dia), err
}

// Parameter reads a named parameter of an element.
func (d *Document) Parameter(ctx context.Context, id host.ElementID, name string) (float64, bool, error) {
	if err := d.checkOpen(); err != nil {
		return 0, false, err
	}
	var v float64
	err := d.db.QueryRowContext(ctx,
		`SELECT value FROM parameters WHERE element_id = ? AND name = ?`, string(id), name).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}
