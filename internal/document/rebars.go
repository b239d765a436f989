package document

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexiusacademia/gorebar/internal/geometry"
	"github.com/alexiusacademia/gorebar/internal/host"
	"github.com/alexiusacademia/gorebar/internal/units"
)

// Rebar is a stored bar as read back for reports.
type Rebar struct {
	ID        host.ElementID
	TypeName  string
	TypeID    host.ElementID
	HostID    host.ElementID
	SourceID  host.ElementID // set on copies and mirrors
	StartHook host.HookOrientation
	EndHook   host.HookOrientation
	Normal    geometry.Vector
	Path      geometry.BarPath
}

// Wall is a stored wall panel.
type Wall struct {
	ID        host.ElementID
	Name      string
	Length    units.Feet
	Thickness units.Feet
	Height    units.Feet
}

// Rebars lists every bar in creation order.
func (d *Document) Rebars(ctx context.Context) ([]Rebar, error) {
	if err := d.checkOpen(); err != nil {
		return nil, err
	}
	rows, err := d.db.QueryContext(ctx,
		`SELECT `+rebarColumns+` FROM rebars r JOIN elements e ON e.id = r.id ORDER BY e.rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list bars: %w", err)
	}
	defer rows.Close()

	var out []Rebar
	for rows.Next() {
		row, err := scanRebar(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, toRebar(row))
	}
	return out, rows.Err()
}

// Rebar reads one bar.
func (d *Document) Rebar(ctx context.Context, id host.ElementID) (Rebar, error) {
	if err := d.checkOpen(); err != nil {
		return Rebar{}, err
	}
	row, err := scanRebar(d.db.QueryRowContext(ctx,
		`SELECT `+rebarColumns+` FROM rebars r JOIN elements e ON e.id = r.id WHERE r.id = ?`, string(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return Rebar{}, fmt.Errorf("bar %q: %w", id, host.ErrNotFound)
	}
	if err != nil {
		return Rebar{}, err
	}
	return toRebar(row), nil
}

func toRebar(row rebarRow) Rebar {
	return Rebar{
		ID:        row.ID,
		TypeName:  row.Name,
		TypeID:    row.TypeID,
		HostID:    row.HostID,
		SourceID:  row.SourceID,
		StartHook: row.StartHook,
		EndHook:   row.EndHook,
		Normal:    row.Normal,
		Path:      row.Path,
	}
}

// Walls lists every wall panel.
func (d *Document) Walls(ctx context.Context) ([]Wall, error) {
	if err := d.checkOpen(); err != nil {
		return nil, err
	}
	rows, err := d.db.QueryContext(ctx,
		`SELECT w.id, e.name, w.length_ft, w.thickness_ft, w.height_ft
		 FROM walls w JOIN elements e ON e.id = w.id ORDER BY e.rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list walls: %w", err)
	}
	defer rows.Close()

	var out []Wall
	for rows.Next() {
		var w Wall
		var id string
		var length, thickness, height float64
		if err := rows.Scan(&id, &w.Name, &length, &thickness, &height); err != nil {
			return nil, err
		}
		w.ID = host.ElementID(id)
		w.Length, w.Thickness, w.Height = units.Feet(length), units.Feet(thickness), units.Feet(height)
		out = append(out, w)
	}
	return out, rows.Err()
}
