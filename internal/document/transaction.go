package document

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/alexiusacademia/gorebar/internal/geometry"
	"github.com/alexiusacademia/gorebar/internal/host"
)

type transaction struct {
	doc    *Document
	tx     *sql.Tx
	label  string
	closed bool
}

func (t *transaction) Label() string { return t.label }

func (t *transaction) check() error {
	if t.closed {
		return host.ErrTransactionClosed
	}
	return t.doc.checkOpen()
}

func (t *transaction) Commit() error {
	if t.closed {
		return host.ErrTransactionClosed
	}
	t.closed = true
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %q: %w", t.label, err)
	}
	t.doc.logger.Debug("Transaction committed", zap.String("label", t.label))
	return nil
}

func (t *transaction) Rollback() error {
	if t.closed {
		return host.ErrTransactionClosed
	}
	t.closed = true
	if err := t.tx.Rollback(); err != nil {
		return fmt.Errorf("failed to roll back %q: %w", t.label, err)
	}
	t.doc.logger.Debug("Transaction rolled back", zap.String("label", t.label))
	return nil
}

// rebarRow is one row of the rebars table.
type rebarRow struct {
	ID        host.ElementID
	Name      string
	TypeID    host.ElementID
	HostID    host.ElementID
	SourceID  host.ElementID
	Normal    geometry.Vector
	StartHook host.HookOrientation
	EndHook   host.HookOrientation
	UseShape  bool
	Deform3D  bool
	Path      geometry.BarPath
}

func (t *transaction) CreateFromCurveChain(ctx context.Context, req host.CurveChainRequest) (host.ElementID, error) {
	if err := t.check(); err != nil {
		return "", err
	}

	path := geometry.BarPath{Segments: req.Curves}
	if len(req.Curves) == 0 {
		return "", errors.New("curve chain is empty")
	}
	for i := 1; i < len(req.Curves); i++ {
		if req.Curves[i-1].End != req.Curves[i].Start {
			return "", fmt.Errorf("curves %d and %d: %w", i, i+1, host.ErrDiscontinuous)
		}
	}
	if err := path.Validate(); err != nil {
		return "", err
	}
	if req.Normal == (geometry.Vector{}) {
		return "", errors.New("normal must be non-zero")
	}

	var name string
	err := t.tx.QueryRowContext(ctx,
		`SELECT e.name FROM bar_types b JOIN elements e ON e.id = b.id WHERE b.id = ?`,
		string(req.BarType)).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("bar type %q: %w", req.BarType, host.ErrNotFound)
	}
	if err != nil {
		return "", err
	}

	var hostCount int
	if err := t.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM walls WHERE id = ?`, string(req.Host)).Scan(&hostCount); err != nil {
		return "", err
	}
	if hostCount == 0 {
		return "", fmt.Errorf("host %q: %w", req.Host, host.ErrNotFound)
	}

	row := rebarRow{
		ID:        newID(),
		Name:      name,
		TypeID:    req.BarType,
		HostID:    req.Host,
		Normal:    req.Normal,
		StartHook: req.StartHook,
		EndHook:   req.EndHook,
		UseShape:  req.UseExistingShape,
		Deform3D:  req.DeformIn3D,
		Path:      path,
	}
	if err := t.insertRebar(ctx, row); err != nil {
		return "", err
	}
	return row.ID, nil
}

func (t *transaction) Translate(ctx context.Context, ids []host.ElementID, v geometry.Vector) ([]host.ElementID, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	out := make([]host.ElementID, 0, len(ids))
	for _, id := range ids {
		src, err := t.loadRebar(ctx, id)
		if err != nil {
			return nil, err
		}
		cp := src
		cp.ID = newID()
		cp.SourceID = src.ID
		cp.Path = src.Path.Translate(v)
		if err := t.insertRebar(ctx, cp); err != nil {
			return nil, err
		}
		out = append(out, cp.ID)
	}
	return out, nil
}

func (t *transaction) Mirror(ctx context.Context, id host.ElementID, plane geometry.Plane) ([]host.ElementID, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	src, err := t.loadRebar(ctx, id)
	if err != nil {
		return nil, err
	}
	cp := src
	cp.ID = newID()
	cp.SourceID = src.ID
	cp.Path = src.Path.Mirror(plane)
	cp.Normal = plane.ReflectVector(src.Normal)
	cp.StartHook, cp.EndHook = src.StartHook.Opposite(), src.EndHook.Opposite()
	if err := t.insertRebar(ctx, cp); err != nil {
		return nil, err
	}
	return []host.ElementID{cp.ID}, nil
}

func (t *transaction) BoundingBox(ctx context.Context, id host.ElementID) (geometry.Box, error) {
	if err := t.check(); err != nil {
		return geometry.Box{}, err
	}
	row, err := t.loadRebar(ctx, id)
	if err != nil {
		return geometry.Box{}, err
	}
	return row.Path.Bounds(), nil
}

func (t *transaction) SetParameter(ctx context.Context, id host.ElementID, name string, value float64) error {
	if err := t.check(); err != nil {
		return err
	}
	var n int
	if err := t.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM elements WHERE id = ?`, string(id)).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("element %q: %w", id, host.ErrNotFound)
	}
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO parameters (element_id, name, value) VALUES (?, ?, ?)
		 ON CONFLICT (element_id, name) DO UPDATE SET value = excluded.value`,
		string(id), name, value)
	return err
}

func (t *transaction) insertRebar(ctx context.Context, row rebarRow) error {
	curves, err := json.Marshal(row.Path.Segments)
	if err != nil {
		return err
	}
	if err := insertElement(ctx, t.tx, row.ID, "", host.ClassRebar, row.Name); err != nil {
		return fmt.Errorf("failed to insert bar: %w", err)
	}
	var source any
	if !row.SourceID.IsZero() {
		source = string(row.SourceID)
	}
	_, err = t.tx.ExecContext(ctx,
		`INSERT INTO rebars (id, type_id, host_id, source_id, normal_x, normal_y, normal_z,
		                     start_hook, end_hook, use_existing_shape, deform_3d, curves)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(row.ID), string(row.TypeID), string(row.HostID), source,
		row.Normal.X, row.Normal.Y, row.Normal.Z,
		string(row.StartHook), string(row.EndHook), row.UseShape, row.Deform3D, string(curves))
	if err != nil {
		return fmt.Errorf("failed to insert bar: %w", err)
	}
	return nil
}

const rebarColumns = `r.id, e.name, r.type_id, r.host_id, COALESCE(r.source_id, ''),
	r.normal_x, r.normal_y, r.normal_z, r.start_hook, r.end_hook,
	r.use_existing_shape, r.deform_3d, r.curves`

type scanner interface {
	Scan(dest ...any) error
}

func scanRebar(s scanner) (rebarRow, error) {
	var (
		row                          rebarRow
		id, typeID, hostID, sourceID string
		startHook, endHook, curves   string
	)
	err := s.Scan(&id, &row.Name, &typeID, &hostID, &sourceID,
		&row.Normal.X, &row.Normal.Y, &row.Normal.Z, &startHook, &endHook,
		&row.UseShape, &row.Deform3D, &curves)
	if err != nil {
		return rebarRow{}, err
	}
	row.ID, row.TypeID, row.HostID, row.SourceID = host.ElementID(id), host.ElementID(typeID), host.ElementID(hostID), host.ElementID(sourceID)
	row.StartHook, row.EndHook = host.HookOrientation(startHook), host.HookOrientation(endHook)
	if err := json.Unmarshal([]byte(curves), &row.Path.Segments); err != nil {
		return rebarRow{}, fmt.Errorf("bar %s has unreadable curves: %w", id, err)
	}
	return row, nil
}

func (t *transaction) loadRebar(ctx context.Context, id host.ElementID) (rebarRow, error) {
	row, err := scanRebar(t.tx.QueryRowContext(ctx,
		`SELECT `+rebarColumns+` FROM rebars r JOIN elements e ON e.id = r.id WHERE r.id = ?`, string(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return rebarRow{}, fmt.Errorf("bar %q: %w", id, host.ErrNotFound)
	}
	return row, err
}
