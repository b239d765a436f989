package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gorebar/internal/units"
)

func mm(v float64) units.Feet { return units.ToInternal(units.Millimeters(v)) }

func dwall() WallSection {
	return WallSection{Length: mm(6000), Thickness: mm(1000)}
}

func TestStraightBar(t *testing.T) {
	start := Point{X: 0.5, Y: -1.25, Z: float64(mm(6400))}
	length := mm(9300)

	p := StraightBar(start, length)
	require.NoError(t, p.Validate())
	require.Len(t, p.Segments, 1)

	end := p.End()
	assert.Equal(t, start.Z-float64(length), end.Z)
	assert.Equal(t, start.X, end.X)
	assert.Equal(t, start.Y, end.Y)
	assert.InDelta(t, float64(length), p.Length(), 1e-12)
}

func TestMainBarOrigin(t *testing.T) {
	dMain, dLink := mm(40), mm(20)

	t.Run("negative face", func(t *testing.T) {
		o := MainBarOrigin(dwall(), MainBarOffsets{
			Face: FaceNegative, Edge: mm(100), Cover: mm(75),
			LinkDiameter: dLink, MainDiameter: dMain, Top: mm(6400),
		})
		assert.InDelta(t, float64(mm(100)+dLink+dMain/2), o.X, 1e-12)
		assert.InDelta(t, float64(-mm(1000)/2+mm(75)+dLink+dMain/2), o.Y, 1e-12)
		assert.InDelta(t, float64(mm(6400)), o.Z, 1e-12)
	})

	t.Run("positive face inner layer", func(t *testing.T) {
		o := MainBarOrigin(dwall(), MainBarOffsets{
			Face: FacePositive, Edge: mm(100), Cover: mm(75),
			LinkDiameter: dLink, MainDiameter: dMain, Inset: dMain + mm(40), Top: mm(6400),
		})
		want := mm(1000)/2 - mm(75) - dLink - 1.5*dMain - mm(40)
		assert.InDelta(t, float64(want), o.Y, 1e-12)
	})
}

func TestLappedChain_TwoBars(t *testing.T) {
	origin := Point{X: 1, Y: 1, Z: float64(mm(6400))}
	dMain, lap := mm(40), mm(1165)

	paths, err := LappedChain(origin, dMain, -1, []ChainBar{
		{Length: mm(9300)},
		{Length: mm(9300), Lap: lap},
	})
	require.NoError(t, err)
	require.Len(t, paths, 2)

	bar1, bar2 := paths[0], paths[1]
	assert.Equal(t, origin, bar1.Start())
	assert.Equal(t, bar1.End().Z+float64(lap), bar2.Start().Z)
	assert.Equal(t, bar1.Start().Y-float64(dMain), bar2.Start().Y)
	assert.Equal(t, bar1.Start().X, bar2.Start().X)
}

func TestLappedChain_AlternatingStagger(t *testing.T) {
	dMain := mm(40)
	chain := []ChainBar{
		{Length: mm(8200)},
		{Length: mm(8200), Lap: mm(1227)},
		{Length: mm(8200), Lap: mm(1227)},
		{Length: mm(8600), Lap: mm(1081)},
		{Length: mm(8600), Lap: mm(985)},
	}

	paths, err := LappedChain(Point{Z: float64(mm(6400))}, dMain, -1, chain)
	require.NoError(t, err)
	require.Len(t, paths, 5)

	wantSigns := []float64{-1, +1, -1, +1}
	for i := 1; i < len(paths); i++ {
		prev, cur := paths[i-1], paths[i]
		assert.Equal(t, prev.Start().Y+wantSigns[i-1]*float64(dMain), cur.Start().Y, "bar %d stagger", i+1)
		assert.Equal(t, prev.End().Z+float64(chain[i].Lap), cur.Start().Z, "bar %d lap", i+1)
		assert.Equal(t, cur.Start().Z-float64(chain[i].Length), cur.End().Z)
	}
}

func TestLappedChain_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		sign  int
		chain []ChainBar
	}{
		{"empty", 1, nil},
		{"bad sign", 0, []ChainBar{{Length: 1}}},
		{"zero length", 1, []ChainBar{{Length: 0}}},
		{"missing lap", 1, []ChainBar{{Length: 10}, {Length: 10}}},
		{"lap exceeds bar", 1, []ChainBar{{Length: 10}, {Length: 2, Lap: 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LappedChain(Point{}, mm(40), tt.sign, tt.chain)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func exLinkParams() ExLinkParams {
	return ExLinkParams{
		LinkDiameter: mm(20),
		Edge:         mm(100),
		Cover:        mm(75),
		Elevation:    mm(5500),
		Leg:          mm(290),
		EndOffset:    mm(450),
		Incline:      mm(840),
		Angle:        units.Degrees(20).Radians(),
	}
}

func TestInclineOffset(t *testing.T) {
	d := 840 / 304.8
	want := d * math.Tan(20*math.Pi/180)
	got := InclineOffset(units.ToInternal(840), units.Degrees(20).Radians())
	assert.InDelta(t, want, float64(got), 1e-12)
}

func TestExLink_Continuity(t *testing.T) {
	path, pts := ExLink(dwall(), exLinkParams())
	require.NoError(t, path.Validate())
	require.Len(t, path.Segments, 5)

	for i := 0; i < len(path.Segments)-1; i++ {
		assert.True(t, path.Segments[i].End == path.Segments[i+1].Start, "segment %d/%d joint", i+1, i+2)
	}
	assert.Equal(t, pts.HookStart, path.Start())
	assert.Equal(t, pts.P5, path.End())
}

func TestExLink_Vertices(t *testing.T) {
	_, pts := ExLink(dwall(), exLinkParams())
	dLink := float64(mm(20))

	assert.InDelta(t, float64(mm(100))+dLink/2, pts.P1.X, 1e-12)
	assert.InDelta(t, float64(mm(500)-mm(75)), pts.P1.Y, 1e-12)
	assert.InDelta(t, float64(mm(290)), pts.HookStart.X-pts.P1.X, 1e-12)
	assert.Equal(t, pts.P1.X, pts.P2.X)
	assert.Equal(t, pts.P2.Y, pts.P3.Y)
	assert.InDelta(t, float64(mm(3000)-mm(450))-dLink/2, pts.P3.X, 1e-12)

	assert.Equal(t, pts.P3.X-float64(pts.DeltaX), pts.P4.X)
	assert.InDelta(t, float64(mm(500)-mm(75))-dLink/2, pts.P4.Y, 1e-12)

	// end leg mirrors the start leg length
	assert.InDelta(t, pts.HookStart.X-pts.P1.X, pts.P4.X-pts.P5.X, 1e-12)

	for _, p := range pts.Ordered() {
		assert.Equal(t, float64(mm(5500)), p.Z)
	}
}

func TestExLink_PerpendicularToBasisZ(t *testing.T) {
	path, _ := ExLink(dwall(), exLinkParams())
	assert.True(t, path.PerpendicularTo(BasisZ, 1e-9))
	assert.False(t, path.PerpendicularTo(BasisX, 1e-9))
}

func TestBarPath_ValidateRejectsGaps(t *testing.T) {
	p := BarPath{Segments: []Segment{
		{Start: Point{}, End: Point{X: 1}},
		{Start: Point{X: 1, Y: 1e-9}, End: Point{X: 2}},
	}}
	assert.Error(t, p.Validate())

	assert.Error(t, BarPath{}.Validate())
	assert.Error(t, NewPolyline(Point{}, Point{}).Validate())
}

func TestMirrorAndTranslate(t *testing.T) {
	path, _ := ExLink(dwall(), exLinkParams())
	box := path.Bounds()

	plane, err := NewPlane(BasisY, box.Center())
	require.NoError(t, err)

	mirrored := path.Mirror(plane)
	require.NoError(t, mirrored.Validate())
	mb := mirrored.Bounds()
	assert.InDelta(t, box.Min.Y, mb.Min.Y, 1e-12)
	assert.InDelta(t, box.Max.Y, mb.Max.Y, 1e-12)
	assert.InDelta(t, 2*box.Center().Y-path.Start().Y, mirrored.Start().Y, 1e-12)

	moved := path.Translate(Vector{Z: -float64(mm(150))})
	require.NoError(t, moved.Validate())
	assert.InDelta(t, path.Start().Z-float64(mm(150)), moved.Start().Z, 1e-12)

	_, err = NewPlane(Vector{}, Point{})
	assert.Error(t, err)
}
