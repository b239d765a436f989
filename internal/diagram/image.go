package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/gorebar/internal/geometry"
)

// View selects the projection plane.
type View int

const (
	// ViewSection looks along X: Y across, Z up. Shows lap staggers.
	ViewSection View = iota
	// ViewElevation looks along Y: X across, Z up. Shows layer spacing.
	ViewElevation
	// ViewPlan looks down Z: X across, Y up. Shows EX-links.
	ViewPlan
)

func (v View) String() string {
	switch v {
	case ViewElevation:
		return "elevation"
	case ViewPlan:
		return "plan"
	}
	return "section"
}

// ParseView accepts section, elevation or plan.
func ParseView(s string) (View, error) {
	switch strings.ToLower(s) {
	case "section", "":
		return ViewSection, nil
	case "elevation":
		return ViewElevation, nil
	case "plan":
		return ViewPlan, nil
	}
	return ViewSection, fmt.Errorf("unknown view %q, expected section, elevation or plan", s)
}

func (v View) axes() (string, string) {
	switch v {
	case ViewElevation:
		return "X (mm)", "Z (mm)"
	case ViewPlan:
		return "X (mm)", "Y (mm)"
	}
	return "Y (mm)", "Z (mm)"
}

func (v View) project(p geometry.Point) plotter.XY {
	switch v {
	case ViewElevation:
		return plotter.XY{X: mm(p.X), Y: mm(p.Z)}
	case ViewPlan:
		return plotter.XY{X: mm(p.X), Y: mm(p.Y)}
	}
	return plotter.XY{X: mm(p.Y), Y: mm(p.Z)}
}

// PathSeries is one bar to draw.
type PathSeries struct {
	Label string
	Path  geometry.BarPath
}

// PathDiagramData holds the bars and the wall outline of a plot.
type PathDiagramData struct {
	Title string
	View  View
	Wall  geometry.WallSection
	Paths []PathSeries
	// Labelled limits the legend to the first n bars; copies are drawn
	// without a legend entry.
	Labelled int
}

// ExportPathDiagram plots bar centerlines projected on the chosen view.
func ExportPathDiagram(data PathDiagramData, filename string) error {
	p := plot.New()
	p.Title.Text = data.Title
	p.X.Label.Text, p.Y.Label.Text = data.View.axes()
	p.Add(plotter.NewGrid())

	if outline := wallOutline(data); outline != nil {
		wall, err := plotter.NewLine(outline)
		if err != nil {
			return err
		}
		wall.LineStyle.Width = vg.Points(1)
		wall.LineStyle.Color = color.Gray{Y: 128}
		wall.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(wall)
	}

	for i, s := range data.Paths {
		pts := s.Path.Points()
		if len(pts) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(pts))
		for j, pt := range pts {
			xys[j] = data.View.project(pt)
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = plotutil.Color(i % 7)
		p.Add(line)

		ends, err := plotter.NewScatter(plotter.XYs{xys[0], xys[len(xys)-1]})
		if err != nil {
			return err
		}
		ends.GlyphStyle.Color = color.RGBA{R: 139, G: 69, B: 19, A: 255}
		ends.GlyphStyle.Radius = vg.Points(2)
		ends.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(ends)

		if data.Labelled == 0 || i < data.Labelled {
			p.Legend.Add(s.Label, line)
		}
	}
	p.Legend.Top = true

	width := 6 * vg.Inch
	height := 8 * vg.Inch
	if data.View == ViewPlan {
		width, height = 8*vg.Inch, 5*vg.Inch
	}

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}

// wallOutline returns the wall faces for section and plan views.
func wallOutline(data PathDiagramData) plotter.XYs {
	w := data.Wall
	if w.Thickness == 0 {
		return nil
	}
	half := mm(float64(w.Thickness) / 2)
	y0 := mm(w.Origin.Y)

	switch data.View {
	case ViewPlan:
		x0 := mm(w.Origin.X)
		x1 := x0 + mm(float64(w.Length))
		return plotter.XYs{
			{X: x0, Y: y0 - half}, {X: x1, Y: y0 - half},
			{X: x1, Y: y0 + half}, {X: x0, Y: y0 + half},
			{X: x0, Y: y0 - half},
		}
	case ViewSection:
		var top, bottom float64
		seen := false
		for _, s := range data.Paths {
			if len(s.Path.Segments) == 0 {
				continue
			}
			b := s.Path.Bounds()
			if !seen || mm(b.Max.Z) > top {
				top = mm(b.Max.Z)
			}
			if !seen || mm(b.Min.Z) < bottom {
				bottom = mm(b.Min.Z)
			}
			seen = true
		}
		return plotter.XYs{
			{X: y0 - half, Y: bottom}, {X: y0 + half, Y: bottom},
			{X: y0 + half, Y: top}, {X: y0 - half, Y: top},
			{X: y0 - half, Y: bottom},
		}
	}
	return nil
}
