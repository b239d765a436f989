package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gorebar/internal/geometry"
	"github.com/alexiusacademia/gorebar/internal/units"
)

func twoBarChain(t *testing.T) []geometry.BarPath {
	t.Helper()
	origin := geometry.Point{Y: float64(units.ToInternal(305)), Z: float64(units.ToInternal(6400))}
	paths, err := geometry.LappedChain(origin, units.ToInternal(40), -1, []geometry.ChainBar{
		{Length: units.ToInternal(9300)},
		{Length: units.ToInternal(9300), Lap: units.ToInternal(1165)},
	})
	require.NoError(t, err)
	return paths
}

func TestChainFromPaths(t *testing.T) {
	bars := ChainFromPaths(twoBarChain(t), []string{"H40", "H40"})
	require.Len(t, bars, 2)

	assert.Equal(t, "r1 H40", bars[0].Label)
	assert.InDelta(t, 6400, bars[0].Top, 1e-6)
	assert.InDelta(t, -2900, bars[0].Bottom, 1e-6)
	assert.InDelta(t, 9300, bars[1].Length(), 1e-6)
	assert.InDelta(t, 265, bars[1].Offset, 1e-6)
}

func TestDrawASCIIChainDiagram(t *testing.T) {
	out := DrawASCIIChainDiagram(ChainDiagramData{
		Title:   "Layer B",
		Bars:    ChainFromPaths(twoBarChain(t), []string{"H40", "H40"}),
		Spacing: 119,
		Copies:  19,
	})

	assert.Contains(t, out, "Layer B")
	assert.Contains(t, out, "◄─ top")
	assert.Contains(t, out, "◄─ lap")
	assert.Contains(t, out, "r2 H40")
	assert.Contains(t, out, "(20 sets)")
	assert.Equal(t, 31, strings.Count(out, "┤"))
}

func TestDrawASCIIChainDiagram_Empty(t *testing.T) {
	assert.Equal(t, "  (no bars)\n", DrawASCIIChainDiagram(ChainDiagramData{}))
}

func TestExportPathDiagram(t *testing.T) {
	dir := t.TempDir()
	paths := twoBarChain(t)
	wall := geometry.WallSection{Length: units.ToInternal(6000), Thickness: units.ToInternal(1000)}

	for _, view := range []View{ViewSection, ViewElevation, ViewPlan} {
		t.Run(view.String(), func(t *testing.T) {
			name := filepath.Join(dir, view.String()+".svg")
			err := ExportPathDiagram(PathDiagramData{
				Title: "Layer B",
				View:  view,
				Wall:  wall,
				Paths: []PathSeries{{Label: "r1", Path: paths[0]}, {Label: "r2", Path: paths[1]}},
			}, name)
			require.NoError(t, err)

			info, err := os.Stat(name)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}

func TestExportPathDiagram_SkipsEmptyPath(t *testing.T) {
	name := filepath.Join(t.TempDir(), "section.png")
	paths := twoBarChain(t)

	err := ExportPathDiagram(PathDiagramData{
		Title: "Layer B",
		View:  ViewSection,
		Wall:  geometry.WallSection{Length: units.ToInternal(6000), Thickness: units.ToInternal(1000)},
		Paths: []PathSeries{{Label: "empty"}, {Label: "r1", Path: paths[0]}},
	}, name)
	require.NoError(t, err)
	assert.FileExists(t, name)
}

func TestParseView(t *testing.T) {
	v, err := ParseView("Plan")
	require.NoError(t, err)
	assert.Equal(t, ViewPlan, v)

	_, err = ParseView("iso")
	assert.Error(t, err)
}
