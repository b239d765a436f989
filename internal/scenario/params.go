// Package scenario holds the D-wall layout runs: the two main bar layers,
// the EX-link and its copies and mirrors, and the bar unit weights.
package scenario

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gorebar/internal/bars"
	"github.com/alexiusacademia/gorebar/internal/geometry"
	"github.com/alexiusacademia/gorebar/internal/layout"
	"github.com/alexiusacademia/gorebar/internal/nscp"
	"github.com/alexiusacademia/gorebar/internal/units"
)

// Face names a main bar layer.
type Face string

const (
	FaceB Face = "B"
	FaceD Face = "D"
)

// ParseFace accepts "B" or "D" in either case.
func ParseFace(s string) (Face, error) {
	switch Face(strings.ToUpper(strings.TrimSpace(s))) {
	case FaceB:
		return FaceB, nil
	case FaceD:
		return FaceD, nil
	}
	return "", fmt.Errorf("unknown face %q, expected B or D", s)
}

// WallParams describes the panel and the offsets shared by every bar.
type WallParams struct {
	Name         string            `yaml:"name"`
	Length       units.Millimeters `yaml:"length"`
	Thickness    units.Millimeters `yaml:"thickness"`
	Edge         units.Millimeters `yaml:"edge"`
	Cover        units.Millimeters `yaml:"cover"`
	LinkDiameter units.Millimeters `yaml:"link_diameter"`
}

// Section converts the panel to internal units with its origin at zero.
func (w WallParams) Section() geometry.WallSection {
	return geometry.WallSection{
		Length:    units.ToInternal(w.Length),
		Thickness: units.ToInternal(w.Thickness),
	}
}

// MainLayerParams is one vertical layer of lapped bars.
type MainLayerParams struct {
	// Chain in TYPE:LENGTH[@LAP] notation, top bar first.
	Chain     string            `yaml:"chain"`
	FirstSign int               `yaml:"first_sign"`
	Top       units.Millimeters `yaml:"top"`
	// Clear is the gap kept to the outer layer (face B only).
	Clear   units.Millimeters `yaml:"clear"`
	Spacing units.Millimeters `yaml:"spacing"`
	Copies  int               `yaml:"copies"`
}

// Entries parses the chain.
func (p MainLayerParams) Entries() ([]bars.ChainEntry, error) {
	return bars.ParseChain(p.Chain)
}

// Check rejects a copy pattern that the replicator would refuse, so the
// layer fails before any bar is created.
func (p MainLayerParams) Check() error {
	switch {
	case p.Copies < 0:
		return &layout.PreconditionError{Op: "main layer", Reason: fmt.Sprintf("copies must not be negative, got %d", p.Copies)}
	case p.Spacing < 0:
		return &layout.PreconditionError{Op: "main layer", Reason: fmt.Sprintf("spacing must not be negative, got %g mm", float64(p.Spacing))}
	}
	return nil
}

// ExLinkParams is the horizontal EX-link.
type ExLinkParams struct {
	BarType   string            `yaml:"bar_type"`
	Elevation units.Millimeters `yaml:"elevation"`
	Leg       units.Millimeters `yaml:"leg"`
	EndOffset units.Millimeters `yaml:"end_offset"`
	Incline   units.Millimeters `yaml:"incline"`
	Angle     units.Degrees     `yaml:"angle"`
}

// CopyParams stacks every bar of a type downward.
type CopyParams struct {
	BarType string            `yaml:"bar_type"`
	Spacing units.Millimeters `yaml:"spacing"`
	// Instances counts the original, so Instances-1 copies are made.
	Instances int `yaml:"instances"`
}

// MirrorParams mirrors every bar of a type across the wall thickness.
type MirrorParams struct {
	BarType string `yaml:"bar_type"`
}

// Params is a complete scenario file.
type Params struct {
	Wall          WallParams                  `yaml:"wall"`
	LayerB        MainLayerParams             `yaml:"layer_b"`
	LayerD        MainLayerParams             `yaml:"layer_d"`
	ExLink        ExLinkParams                `yaml:"ex_link"`
	CopyExLinks   CopyParams                  `yaml:"copy_ex_links"`
	MirrorExLinks MirrorParams                `yaml:"mirror_ex_links"`
	UnitWeights   map[string]units.KgPerMeter `yaml:"unit_weights"`
	Materials     MaterialParams              `yaml:"materials"`
}

// MaterialParams are the strengths the laps are checked against, in MPa.
type MaterialParams struct {
	Fc float64 `yaml:"fc"`
	Fy float64 `yaml:"fy"`
}

// NSCP converts the strengths for the splice checks.
func (m MaterialParams) NSCP() nscp.Materials {
	return nscp.Materials{Fc: m.Fc, Fy: m.Fy}
}

// Default returns the standard 1000 mm D-wall panel.
func Default() Params {
	return Params{
		Wall: WallParams{
			Name:         "D-wall panel",
			Length:       6000,
			Thickness:    1000,
			Edge:         100,
			Cover:        75,
			LinkDiameter: 20,
		},
		LayerB: MainLayerParams{
			Chain:     "H40:9300, H40:9300@1165",
			FirstSign: -1,
			Top:       6400,
			Clear:     40,
			Spacing:   119,
			Copies:    19,
		},
		LayerD: MainLayerParams{
			Chain:     "H40:8200, H40:8200@1227, H40:8200@1227, H32:8600@1081, H32:8600@985",
			FirstSign: 1,
			Top:       6400,
			Spacing:   119,
			Copies:    19,
		},
		ExLink: ExLinkParams{
			BarType:   "H20",
			Elevation: 5500,
			Leg:       290,
			EndOffset: 450,
			Incline:   840,
			Angle:     20,
		},
		CopyExLinks: CopyParams{
			BarType:   "H20",
			Spacing:   150,
			Instances: 243,
		},
		MirrorExLinks: MirrorParams{
			BarType: "H20",
		},
		UnitWeights: bars.UnitWeights(),
		Materials: MaterialParams{
			Fc: 28,
			Fy: 415,
		},
	}
}

// Layer returns the parameters of a face.
func (p Params) Layer(face Face) MainLayerParams {
	if face == FaceD {
		return p.LayerD
	}
	return p.LayerB
}

// Load reads a scenario file over the defaults. Keys missing from the file
// keep their default value.
func Load(path string) (Params, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("failed to read scenario: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return p, nil
}

// Validate checks the values that cannot be caught later by geometry.
func (p Params) Validate() error {
	if p.Wall.Name == "" {
		return fmt.Errorf("wall name is required")
	}
	if p.Wall.Thickness <= 0 || p.Wall.Length <= 0 {
		return fmt.Errorf("wall length and thickness must be positive")
	}
	for _, f := range []Face{FaceB, FaceD} {
		l := p.Layer(f)
		if _, err := l.Entries(); err != nil {
			return fmt.Errorf("layer %s: %w", f, err)
		}
		if l.FirstSign != 1 && l.FirstSign != -1 {
			return fmt.Errorf("layer %s: first_sign must be 1 or -1", f)
		}
		if err := l.Check(); err != nil {
			return fmt.Errorf("layer %s: %w", f, err)
		}
	}
	if err := p.Materials.NSCP().Validate(); err != nil {
		return fmt.Errorf("materials: %w", err)
	}
	if p.CopyExLinks.Instances < 1 {
		return fmt.Errorf("copy_ex_links: instances must be at least 1")
	}
	return nil
}

// SetLayer replaces the parameters of a face.
func (p *Params) SetLayer(face Face, lp MainLayerParams) {
	if face == FaceD {
		p.LayerD = lp
		return
	}
	p.LayerB = lp
}
