package layout

import (
	"context"
	"fmt"
	"sort"

	"github.com/alexiusacademia/gorebar/internal/geometry"
	"github.com/alexiusacademia/gorebar/internal/host"
	"github.com/alexiusacademia/gorebar/internal/units"
)

type fakeBar struct {
	typeID host.ElementID
	path   geometry.BarPath
	seq    int
}

// fakeDocument is an in-memory host.Document. Writes are staged on the
// transaction and only become visible on Commit.
type fakeDocument struct {
	walls     map[string]host.ElementID
	barTypes  map[string]host.ElementID
	diameters map[host.ElementID]units.Feet
	bars      map[host.ElementID]fakeBar
	params    map[host.ElementID]map[string]float64

	nextID int
	closed bool

	begun      int
	translates int
	// failTranslate fails the n-th Translate call (1-based) when non-zero.
	failTranslate int
	failErr       error
	// emptyMirror makes Mirror return no elements.
	emptyMirror bool
}

func newFakeDocument() *fakeDocument {
	d := &fakeDocument{
		walls:     map[string]host.ElementID{},
		barTypes:  map[string]host.ElementID{},
		diameters: map[host.ElementID]units.Feet{},
		bars:      map[host.ElementID]fakeBar{},
		params:    map[host.ElementID]map[string]float64{},
	}
	d.walls["D-wall panel"] = d.newID()
	for name, mm := range map[string]units.Millimeters{"H20": 20, "H32": 32, "H40": 40} {
		id := d.newID()
		d.barTypes[name] = id
		d.diameters[id] = units.ToInternal(mm)
	}
	return d
}

func (d *fakeDocument) newID() host.ElementID {
	d.nextID++
	return host.ElementID(fmt.Sprintf("e%04d", d.nextID))
}

func (d *fakeDocument) FindByCategoryAndName(_ context.Context, category host.Category, name string) (host.ElementID, bool, error) {
	if category != host.CategoryWalls {
		return "", false, nil
	}
	id, ok := d.walls[name]
	return id, ok, nil
}

func (d *fakeDocument) FindByClassAndName(_ context.Context, class host.Class, name string) (host.ElementID, bool, error) {
	if class != host.ClassRebarBarType && class != host.ClassElementType {
		return "", false, nil
	}
	id, ok := d.barTypes[name]
	return id, ok, nil
}

func (d *fakeDocument) ListByClass(_ context.Context, class host.Class) ([]host.Element, error) {
	var out []host.Element
	if class != host.ClassRebarBarType && class != host.ClassElementType {
		return out, nil
	}
	for name, id := range d.barTypes {
		out = append(out, host.Element{ID: id, Class: host.ClassRebarBarType, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (d *fakeDocument) ElementsOfType(_ context.Context, typeID host.ElementID) ([]host.ElementID, error) {
	var ids []host.ElementID
	for id, b := range d.bars {
		if b.typeID == typeID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return d.bars[ids[i]].seq < d.bars[ids[j]].seq })
	return ids, nil
}

func (d *fakeDocument) BarDiameter(_ context.Context, typeID host.ElementID) (units.Feet, error) {
	dia, ok := d.diameters[typeID]
	if !ok {
		return 0, host.ErrNotFound
	}
	return dia, nil
}

func (d *fakeDocument) Begin(_ context.Context, label string) (host.Transaction, error) {
	if d.closed {
		return nil, host.ErrDocumentClosed
	}
	d.begun++
	return &fakeTx{doc: d, label: label, staged: map[host.ElementID]fakeBar{}, params: map[host.ElementID]map[string]float64{}}, nil
}

type fakeTx struct {
	doc    *fakeDocument
	label  string
	staged map[host.ElementID]fakeBar
	params map[host.ElementID]map[string]float64
	done   bool
}

func (t *fakeTx) Label() string { return t.label }

func (t *fakeTx) add(b fakeBar) host.ElementID {
	id := t.doc.newID()
	b.seq = t.doc.nextID
	t.staged[id] = b
	return id
}

func (t *fakeTx) lookup(id host.ElementID) (fakeBar, bool) {
	if b, ok := t.staged[id]; ok {
		return b, true
	}
	b, ok := t.doc.bars[id]
	return b, ok
}

func (t *fakeTx) CreateFromCurveChain(_ context.Context, req host.CurveChainRequest) (host.ElementID, error) {
	if t.done {
		return "", host.ErrTransactionClosed
	}
	path := geometry.BarPath{Segments: req.Curves}
	if err := path.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", host.ErrDiscontinuous, err)
	}
	if _, ok := t.doc.diameters[req.BarType]; !ok {
		return "", host.ErrNotFound
	}
	return t.add(fakeBar{typeID: req.BarType, path: path}), nil
}

func (t *fakeTx) Translate(_ context.Context, ids []host.ElementID, v geometry.Vector) ([]host.ElementID, error) {
	if t.done {
		return nil, host.ErrTransactionClosed
	}
	t.doc.translates++
	if t.doc.failTranslate != 0 && t.doc.translates == t.doc.failTranslate {
		return nil, t.doc.failErr
	}
	out := make([]host.ElementID, 0, len(ids))
	for _, id := range ids {
		b, ok := t.lookup(id)
		if !ok {
			return nil, host.ErrNotFound
		}
		out = append(out, t.add(fakeBar{typeID: b.typeID, path: b.path.Translate(v)}))
	}
	return out, nil
}

func (t *fakeTx) Mirror(_ context.Context, id host.ElementID, plane geometry.Plane) ([]host.ElementID, error) {
	if t.done {
		return nil, host.ErrTransactionClosed
	}
	b, ok := t.lookup(id)
	if !ok {
		return nil, host.ErrNotFound
	}
	if t.doc.emptyMirror {
		return nil, nil
	}
	return []host.ElementID{t.add(fakeBar{typeID: b.typeID, path: b.path.Mirror(plane)})}, nil
}

func (t *fakeTx) BoundingBox(_ context.Context, id host.ElementID) (geometry.Box, error) {
	b, ok := t.lookup(id)
	if !ok {
		return geometry.Box{}, host.ErrNotFound
	}
	return b.path.Bounds(), nil
}

func (t *fakeTx) SetParameter(_ context.Context, id host.ElementID, name string, value float64) error {
	if t.done {
		return host.ErrTransactionClosed
	}
	if t.params[id] == nil {
		t.params[id] = map[string]float64{}
	}
	t.params[id][name] = value
	return nil
}

func (t *fakeTx) Commit() error {
	if t.done {
		return host.ErrTransactionClosed
	}
	t.done = true
	for id, b := range t.staged {
		t.doc.bars[id] = b
	}
	for id, p := range t.params {
		if t.doc.params[id] == nil {
			t.doc.params[id] = map[string]float64{}
		}
		for k, v := range p {
			t.doc.params[id][k] = v
		}
	}
	return nil
}

func (t *fakeTx) Rollback() error {
	if t.done {
		return host.ErrTransactionClosed
	}
	t.done = true
	return nil
}
