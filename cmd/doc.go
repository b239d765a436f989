package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorebar/internal/bars"
	"github.com/alexiusacademia/gorebar/internal/document"
	"github.com/alexiusacademia/gorebar/internal/host"
	"github.com/alexiusacademia/gorebar/internal/scenario"
	"github.com/alexiusacademia/gorebar/internal/units"
)

var (
	initWall      string
	initLength    float64
	initThickness float64
	initHeight    float64
	initTypes     []string
)

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Create and inspect model documents",
	Long: `Create and inspect the model document that holds walls,
bar types and bars.

Subcommands:
  init  - Create the document and add a wall panel and bar types
  info  - List walls, bar types and bar counts`,
}

var docInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a document with a wall panel and bar types",
	Long: `Create the model document (if needed) and add a wall panel and
the standard bar types. Elements that already exist are kept.

Examples:
  # Default 6000 x 1000 mm panel and every standard bar size
  gorebar doc init

  # Only the sizes used by the main layers
  gorebar doc init --types H40,H32,H20`,
	RunE: runDocInit,
}

var docInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the contents of a document",
	RunE:  runDocInfo,
}

func init() {
	rootCmd.AddCommand(docCmd)
	docCmd.AddCommand(docInitCmd)
	docCmd.AddCommand(docInfoCmd)

	docInitCmd.Flags().StringVar(&initWall, "wall", "D-wall panel", "Wall panel name")
	docInitCmd.Flags().Float64Var(&initLength, "length", 6000, "Panel length (mm)")
	docInitCmd.Flags().Float64Var(&initThickness, "thickness", 1000, "Panel thickness (mm)")
	docInitCmd.Flags().Float64Var(&initHeight, "height", 30000, "Panel height (mm)")
	docInitCmd.Flags().StringSliceVar(&initTypes, "types", nil, "Bar types to add (default all standard sizes)")
}

func runDocInit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	spec := document.SeedSpec{
		Walls: []document.WallSpec{{
			Name:      initWall,
			Length:    units.ToInternal(units.Millimeters(initLength)),
			Thickness: units.ToInternal(units.Millimeters(initThickness)),
			Height:    units.ToInternal(units.Millimeters(initHeight)),
		}},
	}
	if len(initTypes) == 0 {
		spec.BarTypes = bars.Standard
	} else {
		for _, name := range initTypes {
			d, ok := bars.Lookup(name)
			if !ok {
				return fmt.Errorf("unknown bar type %q", name)
			}
			spec.BarTypes = append(spec.BarTypes, d)
		}
	}

	doc, err := document.Open(ctx, cfg.Database, logger.Named("document"))
	if err != nil {
		return err
	}
	defer doc.Close()

	res, err := doc.Seed(ctx, spec)
	if err != nil {
		return err
	}

	printHeader("MODEL DOCUMENT")
	w := newTable()
	fmt.Fprintf(w, "  Document:\t%s\n", doc.Path())
	fmt.Fprintf(w, "  Walls added:\t%d\n", len(res.Walls))
	fmt.Fprintf(w, "  Bar types added:\t%d\n", len(res.BarTypes))
	if len(res.Skipped) > 0 {
		fmt.Fprintf(w, "  Already present:\t%v\n", res.Skipped)
	}
	w.Flush()
	fmt.Println()
	return nil
}

func runDocInfo(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	doc, err := document.Open(ctx, cfg.Database, logger.Named("document"))
	if err != nil {
		return err
	}
	defer doc.Close()

	walls, err := doc.Walls(ctx)
	if err != nil {
		return err
	}
	types, err := doc.ListByClass(ctx, host.ClassRebarBarType)
	if err != nil {
		return err
	}

	printHeader("MODEL DOCUMENT")
	printSection("WALLS:")
	w := newTable()
	for _, wall := range walls {
		fmt.Fprintf(w, "  %s\tL = %.0f mm\tt = %.0f mm\tH = %.0f mm\n", wall.Name,
			float64(wall.Length.Millimeters()), float64(wall.Thickness.Millimeters()), float64(wall.Height.Millimeters()))
	}
	w.Flush()
	fmt.Println()

	printSection("BAR TYPES:")
	w = newTable()
	for _, t := range types {
		dia, err := doc.BarDiameter(ctx, t.ID)
		if err != nil {
			return err
		}
		ids, err := doc.ElementsOfType(ctx, t.ID)
		if err != nil {
			return err
		}
		weight := "-"
		if v, ok, err := doc.Parameter(ctx, t.ID, scenario.UnitWeightParameter); err != nil {
			return err
		} else if ok {
			weight = fmt.Sprintf("%.3f kg/m", v/units.MMPerFoot*1000)
		}
		fmt.Fprintf(w, "  %s\tØ %.0f mm\t%d bars\t%s\n", t.Name, float64(dia.Millimeters()), len(ids), weight)
	}
	w.Flush()
	fmt.Println()
	return nil
}
