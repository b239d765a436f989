package scenario

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gorebar/internal/bars"
	"github.com/alexiusacademia/gorebar/internal/document"
	"github.com/alexiusacademia/gorebar/internal/host"
	"github.com/alexiusacademia/gorebar/internal/layout"
	"github.com/alexiusacademia/gorebar/internal/metrics"
	"github.com/alexiusacademia/gorebar/internal/units"
)

const tol = 1e-9

func ft(mm float64) float64 { return mm / 304.8 }

func newSession(t *testing.T, barTypes ...string) (*layout.Session, *document.Document) {
	t.Helper()
	ctx := context.Background()
	doc, err := document.Open(ctx, filepath.Join(t.TempDir(), "model.gorebar"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = doc.Close() })

	if len(barTypes) == 0 {
		barTypes = []string{"H20", "H32", "H40"}
	}
	spec := document.SeedSpec{Walls: []document.WallSpec{{
		Name:      "D-wall panel",
		Length:    units.ToInternal(6000),
		Thickness: units.ToInternal(1000),
		Height:    units.ToInternal(30000),
	}}}
	for _, name := range barTypes {
		d, ok := bars.Lookup(name)
		require.True(t, ok, name)
		spec.BarTypes = append(spec.BarTypes, d)
	}
	_, err = doc.Seed(ctx, spec)
	require.NoError(t, err)

	return layout.NewSession(doc, zap.NewNop(), metrics.New()), doc
}

func TestPlanLayer_FaceB(t *testing.T) {
	plan, err := PlanLayer(Default(), FaceB, units.ToInternal(40))
	require.NoError(t, err)
	require.Len(t, plan.Paths, 2)

	r1, r2 := plan.Paths[0], plan.Paths[1]
	assert.InDelta(t, ft(100+20+20), r1.Start().X, tol)
	assert.InDelta(t, ft(500-75-20-60-40), r1.Start().Y, tol)
	assert.InDelta(t, ft(6400), r1.Start().Z, tol)
	assert.InDelta(t, ft(6400-9300), r1.End().Z, tol)

	assert.Equal(t, r1.Start().X, r2.Start().X)
	assert.InDelta(t, r1.Start().Y-ft(40), r2.Start().Y, tol)
	assert.InDelta(t, r1.End().Z+ft(1165), r2.Start().Z, tol)
	assert.InDelta(t, ft(9300), r2.Length(), tol)
	assert.Equal(t, []string{"H40", "H40"}, plan.Types)
}

func TestPlanLayer_FaceD(t *testing.T) {
	plan, err := PlanLayer(Default(), FaceD, units.ToInternal(40))
	require.NoError(t, err)
	require.Len(t, plan.Paths, 5)
	assert.Equal(t, []string{"H40", "H40", "H40", "H32", "H32"}, plan.Types)

	first := plan.Paths[0].Start()
	assert.InDelta(t, ft(-500+75+20+20), first.Y, tol)

	laps := []float64{1227, 1227, 1081, 985}
	signs := []float64{1, -1, 1, -1}
	for i := 1; i < len(plan.Paths); i++ {
		prev, cur := plan.Paths[i-1], plan.Paths[i]
		assert.InDelta(t, prev.Start().Y+signs[i-1]*ft(40), cur.Start().Y, tol, "bar r%d", i+1)
		assert.InDelta(t, prev.End().Z+ft(laps[i-1]), cur.Start().Z, tol, "bar r%d", i+1)
	}
}

func TestMainLayer_CreatesAndCopies(t *testing.T) {
	ctx := context.Background()
	s, doc := newSession(t)

	p := Default()
	p.LayerB.Copies = 3

	rep, err := MainLayer(ctx, s, p, FaceB)
	require.NoError(t, err)
	assert.True(t, rep.OK(), rep.Lines)
	assert.Len(t, rep.Created, 2+3*2)

	stored, err := doc.Rebars(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 8)

	last := stored[len(stored)-1]
	assert.Equal(t, "H40", last.TypeName)
	assert.InDelta(t, ft(140)+3*ft(119), last.Path.Start().X, tol)
}

func TestMainLayer_MissingTypeSkipsOnlyThoseBars(t *testing.T) {
	ctx := context.Background()
	s, doc := newSession(t, "H40")

	p := Default()
	p.LayerD.Copies = 2

	rep, err := MainLayer(ctx, s, p, FaceD)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Skipped)
	assert.Zero(t, rep.Failed)

	stored, err := doc.Rebars(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 3+2*3)
}

func TestMainLayer_NegativeCopyPatternCreatesNothing(t *testing.T) {
	tests := []struct {
		name  string
		layer func(*MainLayerParams)
	}{
		{"negative copies", func(lp *MainLayerParams) { lp.Copies = -3 }},
		{"negative spacing", func(lp *MainLayerParams) { lp.Spacing = -119 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s, doc := newSession(t)

			p := Default()
			tt.layer(&p.LayerB)
			assert.Error(t, p.Validate())

			_, err := MainLayer(ctx, s, p, FaceB)
			var pre *layout.PreconditionError
			require.ErrorAs(t, err, &pre)

			stored, err := doc.Rebars(ctx)
			require.NoError(t, err)
			assert.Empty(t, stored)
		})
	}
}

func TestMainLayer_MissingWall(t *testing.T) {
	ctx := context.Background()
	s, doc := newSession(t)

	p := Default()
	p.Wall.Name = "Retaining wall"

	rep, err := MainLayer(ctx, s, p, FaceB)
	require.Error(t, err)
	assert.True(t, errors.Is(err, host.ErrNotFound))
	assert.Equal(t, []string{"Retaining wall not found."}, rep.Lines)

	stored, err := doc.Rebars(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestExLink(t *testing.T) {
	ctx := context.Background()
	s, doc := newSession(t)

	rep, err := ExLink(ctx, s, Default())
	require.NoError(t, err)
	require.Len(t, rep.Created, 1)

	bar, err := doc.Rebar(ctx, rep.Created[0])
	require.NoError(t, err)
	require.Len(t, bar.Path.Segments, 5)
	assert.Equal(t, "H20", bar.TypeName)

	pts := bar.Path.Points()
	p3, p4 := pts[3], pts[4]
	assert.InDelta(t, ft(840)*math.Tan(20*math.Pi/180), p3.X-p4.X, tol)
	assert.InDelta(t, ft(5500), pts[0].Z, tol)
	for _, pt := range pts {
		assert.Equal(t, pts[0].Z, pt.Z)
	}
}

func TestCopyAndMirrorExLinks(t *testing.T) {
	ctx := context.Background()
	s, doc := newSession(t)

	p := Default()
	p.CopyExLinks.Instances = 4

	_, err := ExLink(ctx, s, p)
	require.NoError(t, err)

	rep, err := CopyExLinks(ctx, s, p)
	require.NoError(t, err)
	assert.Len(t, rep.Created, 3)

	stored, err := doc.Rebars(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 4)
	for i, b := range stored {
		assert.InDelta(t, ft(5500)-float64(i)*ft(150), b.Path.Start().Z, tol)
	}

	rep, err = MirrorExLinks(ctx, s, p)
	require.NoError(t, err)
	assert.Len(t, rep.Created, 4)

	stored, err = doc.Rebars(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 8)

	mirrored := stored[4]
	assert.Equal(t, stored[0].ID, mirrored.SourceID)
	assert.Equal(t, host.HookRight, mirrored.StartHook)
}

func TestCopyExLinks_NoBars(t *testing.T) {
	s, _ := newSession(t)

	rep, err := CopyExLinks(context.Background(), s, Default())
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Skipped)
	assert.Empty(t, rep.Created)
}

func TestUnitWeights(t *testing.T) {
	ctx := context.Background()
	s, doc := newSession(t)

	p := Default()
	p.UnitWeights = map[string]units.KgPerMeter{"H40": 9.864, "H20": 2.470, "H99": 1}

	rep, err := UnitWeights(ctx, s, p)
	require.NoError(t, err)
	assert.Len(t, rep.Lines, 2)

	id, ok, err := doc.FindByClassAndName(ctx, host.ClassRebarBarType, "H40")
	require.NoError(t, err)
	require.True(t, ok)

	v, ok, err := doc.Parameter(ctx, id, UnitWeightParameter)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 9.864*0.3048, v, 1e-12)

	id, _, err = doc.FindByClassAndName(ctx, host.ClassRebarBarType, "H32")
	require.NoError(t, err)
	_, ok, err = doc.Parameter(ctx, id, UnitWeightParameter)
	require.NoError(t, err)
	assert.False(t, ok, "types outside the mapping are untouched")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := filepath.Join(dir, "partial.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
layer_b:
  chain: "H32:6000, H32:6000@900"
  copies: 5
`), 0o644))

		p, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 5, p.LayerB.Copies)
		assert.Equal(t, units.Millimeters(119), p.LayerB.Spacing)
		assert.Equal(t, "D-wall panel", p.Wall.Name)
		assert.Equal(t, -1, p.LayerB.FirstSign)

		entries, err := p.LayerB.Entries()
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("bad chain", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("layer_d:\n  chain: \"H40:8200@100\"\n"), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestParseFace(t *testing.T) {
	f, err := ParseFace("b")
	require.NoError(t, err)
	assert.Equal(t, FaceB, f)

	_, err = ParseFace("C")
	assert.Error(t, err)
}

func TestCheckLaps(t *testing.T) {
	p := Default()

	b, err := CheckLaps(p, FaceB)
	require.NoError(t, err)
	require.Len(t, b, 1)
	assert.Equal(t, 2, b[0].Bar)
	assert.InDelta(t, 0.071*415*40, b[0].Check.Compression, tol)
	assert.False(t, b[0].Check.MeetsCompression())
	assert.Contains(t, b[0].Message(), "⚠ r2 H40 lap 1165 mm")

	d, err := CheckLaps(p, FaceD)
	require.NoError(t, err)
	require.Len(t, d, 4)
	for _, s := range d {
		assert.True(t, s.Check.MeetsCompression(), "r%d", s.Bar)
		assert.Contains(t, s.Message(), "✓")
	}
	assert.Equal(t, "H32", d[3].Type)

	p.Materials.Fy = 0
	assert.Error(t, p.Validate())
}
