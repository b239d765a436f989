package diagram

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/alexiusacademia/gorebar/internal/geometry"
	"github.com/alexiusacademia/gorebar/internal/units"
)

// ChainBar is one bar of a vertical chain, in millimeters for display.
type ChainBar struct {
	Label  string
	Offset float64 // sideways position (Y)
	Top    float64
	Bottom float64
}

// Length returns the bar length.
func (b ChainBar) Length() float64 { return b.Top - b.Bottom }

// ChainDiagramData holds data for drawing a lapped chain in section.
type ChainDiagramData struct {
	Title   string
	Bars    []ChainBar
	Spacing float64 // layer spacing (mm), 0 if not copied
	Copies  int
}

// ChainFromPaths converts vertical bar paths into diagram bars.
func ChainFromPaths(paths []geometry.BarPath, types []string) []ChainBar {
	out := make([]ChainBar, 0, len(paths))
	for i, p := range paths {
		label := fmt.Sprintf("r%d", i+1)
		if i < len(types) {
			label += " " + types[i]
		}
		out = append(out, ChainBar{
			Label:  label,
			Offset: mm(p.Start().Y),
			Top:    mm(p.Start().Z),
			Bottom: mm(p.End().Z),
		})
	}
	return out
}

func mm(f float64) float64 {
	return float64(units.Feet(f).Millimeters())
}

// DrawASCIIChainDiagram draws the chain top down. Each distinct sideways
// offset gets its own column, so staggered laps show up as parallel runs.
func DrawASCIIChainDiagram(data ChainDiagramData) string {
	var sb strings.Builder
	if len(data.Bars) == 0 {
		return "  (no bars)\n"
	}

	heightChars := 30

	top, bottom := data.Bars[0].Top, data.Bars[0].Bottom
	var offsets []float64
	for _, b := range data.Bars {
		top = math.Max(top, b.Top)
		bottom = math.Min(bottom, b.Bottom)
		offsets = appendUnique(offsets, b.Offset)
	}
	sort.Float64s(offsets)
	width := len(offsets)*4 + 1
	step := (top - bottom) / float64(heightChars)

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s\n", data.Title))
	sb.WriteString(fmt.Sprintf("  %s\n", strings.Repeat("─", len(data.Title))))

	for i := 0; i <= heightChars; i++ {
		z := top - float64(i)*step
		row := []rune(strings.Repeat(" ", width))
		covering := 0
		for _, b := range data.Bars {
			if z <= b.Top+step/2 && z >= b.Bottom-step/2 {
				row[columnOf(offsets, b.Offset)*4+2] = '┃'
				covering++
			}
		}

		sb.WriteString(fmt.Sprintf("  %+8.0f ┤%s", z, string(row)))
		switch {
		case covering > 1:
			sb.WriteString(" ◄─ lap")
		case i == 0:
			sb.WriteString(" ◄─ top")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n  BARS\n")
	sb.WriteString("  ────\n")
	for _, b := range data.Bars {
		sb.WriteString(fmt.Sprintf("  %-8s y=%+7.1f  top=%+8.0f  bottom=%+8.0f  length=%6.0f mm\n",
			b.Label, b.Offset, b.Top, b.Bottom, b.Length()))
	}
	if data.Copies > 0 {
		sb.WriteString(fmt.Sprintf("\n  Layer copied %d times at %.0f mm along X (%d sets)\n",
			data.Copies, data.Spacing, data.Copies+1))
	}

	return sb.String()
}

func columnOf(offsets []float64, v float64) int {
	for i, o := range offsets {
		if math.Abs(o-v) < 1e-6 {
			return i
		}
	}
	return 0
}

func appendUnique(xs []float64, v float64) []float64 {
	for _, x := range xs {
		if math.Abs(x-v) < 1e-6 {
			return xs
		}
	}
	return append(xs, v)
}
