package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorebar/internal/bars"
	"github.com/alexiusacademia/gorebar/internal/diagram"
	"github.com/alexiusacademia/gorebar/internal/scenario"
	"github.com/alexiusacademia/gorebar/internal/units"
)

var (
	layerFace    string
	layerChain   string
	layerCopies  int
	layerSpacing float64
	layerDryRun  bool
)

var layerCmd = &cobra.Command{
	Use:   "layer",
	Short: "Create a lapped main bar layer on a wall face",
	Long: `Create the vertical main bars of one wall face as a chain of
lapped bars, then copy the chain along the panel.

Each bar of the chain starts one lap length above the end of the bar
before it and is shifted sideways by one bar diameter, alternating
direction at every splice. Every bar and every copy step is committed
in its own transaction; a failure only rolls back that step.

Chain notation: TYPE:LENGTH[@LAP], lengths in mm, top bar first.

Examples:
  # Face B with the default 2 x H40 chain
  gorebar layer --face B

  # Face D with a custom chain and fewer copies
  gorebar layer --face D --chain "H40:8200, H32:8600@1081" --copies 10

  # Print the computed chain without writing anything
  gorebar layer --face B --dry-run`,
	RunE: runLayer,
}

func init() {
	rootCmd.AddCommand(layerCmd)

	layerCmd.Flags().StringVarP(&layerFace, "face", "f", "", "Wall face: B or D [required]")
	layerCmd.Flags().StringVar(&layerChain, "chain", "", "Bar chain, e.g. \"H40:9300, H40:9300@1165\"")
	layerCmd.Flags().IntVar(&layerCopies, "copies", -1, "Copies along the panel (default from scenario)")
	layerCmd.Flags().Float64Var(&layerSpacing, "spacing", 0, "Layer spacing (mm) (default from scenario)")
	layerCmd.Flags().BoolVar(&layerDryRun, "dry-run", false, "Compute and print the chain only")

	layerCmd.MarkFlagRequired("face")
}

// layerParams applies the command line overrides to the scenario.
func layerParams(cmd *cobra.Command, face scenario.Face) (scenario.Params, error) {
	p, err := loadScenario()
	if err != nil {
		return p, err
	}
	lp := p.Layer(face)
	if layerChain != "" {
		lp.Chain = layerChain
	}
	if cmd.Flags().Changed("copies") {
		lp.Copies = layerCopies
	}
	if cmd.Flags().Changed("spacing") {
		lp.Spacing = units.Millimeters(layerSpacing)
	}
	p.SetLayer(face, lp)
	return p, p.Validate()
}

func runLayer(cmd *cobra.Command, args []string) error {
	face, err := scenario.ParseFace(layerFace)
	if err != nil {
		return err
	}
	p, err := layerParams(cmd, face)
	if err != nil {
		return err
	}

	if layerDryRun {
		return printLayerPlan(p, face)
	}

	ctx := context.Background()
	s, doc, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer doc.Close()

	printHeader(fmt.Sprintf("MAIN REBAR LAYER %s", face))
	printLayerInput(p, face)
	printLapChecks(p, face)

	rep, err := scenario.MainLayer(ctx, s, p, face)
	printReport(rep)
	if err != nil {
		return fmt.Errorf("layer %s: %w", face, err)
	}
	return nil
}

func printLayerInput(p scenario.Params, face scenario.Face) {
	lp := p.Layer(face)
	entries, _ := lp.Entries()

	printSection("INPUT DATA:")
	w := newTable()
	fmt.Fprintf(w, "  Wall:\t%s\n", p.Wall.Name)
	fmt.Fprintf(w, "  Thickness (t):\t%.0f mm\n", float64(p.Wall.Thickness))
	fmt.Fprintf(w, "  Cover:\t%.0f mm\n", float64(p.Wall.Cover))
	fmt.Fprintf(w, "  Link diameter:\t%.0f mm\n", float64(p.Wall.LinkDiameter))
	fmt.Fprintf(w, "  Top of bars:\t%+.0f mm\n", float64(lp.Top))
	fmt.Fprintf(w, "  Chain:\t%s\n", bars.FormatChain(entries))
	fmt.Fprintf(w, "  Copies:\t%d at %.0f mm\n", lp.Copies, float64(lp.Spacing))
	w.Flush()
	fmt.Println()
}

func printLayerPlan(p scenario.Params, face scenario.Face) error {
	lp := p.Layer(face)
	entries, err := lp.Entries()
	if err != nil {
		return err
	}
	d, ok := bars.Lookup(entries[0].Type)
	if !ok {
		return fmt.Errorf("unknown bar type %q", entries[0].Type)
	}
	plan, err := scenario.PlanLayer(p, face, d.Diameter())
	if err != nil {
		return err
	}

	printHeader(fmt.Sprintf("MAIN REBAR LAYER %s (DRY RUN)", face))
	printLayerInput(p, face)
	printLapChecks(p, face)

	printSection("COMPUTED BARS:")
	w := newTable()
	fmt.Fprintf(w, "  Bar\tType\tStart X\tStart Y\tStart Z\tEnd Z\n")
	for i, path := range plan.Paths {
		start, end := path.Start(), path.End()
		fmt.Fprintf(w, "  r%d\t%s\t%.1f\t%.1f\t%.1f\t%.1f\n", i+1, plan.Types[i],
			float64(units.Feet(start.X).Millimeters()), float64(units.Feet(start.Y).Millimeters()),
			float64(units.Feet(start.Z).Millimeters()), float64(units.Feet(end.Z).Millimeters()))
	}
	w.Flush()

	fmt.Println(diagram.DrawASCIIChainDiagram(diagram.ChainDiagramData{
		Title:   fmt.Sprintf("Layer %s, section along X", face),
		Bars:    diagram.ChainFromPaths(plan.Paths, plan.Types),
		Spacing: float64(lp.Spacing),
		Copies:  lp.Copies,
	}))
	return nil
}

func printLapChecks(p scenario.Params, face scenario.Face) {
	splices, err := scenario.CheckLaps(p, face)
	if err != nil || len(splices) == 0 {
		return
	}
	printSection(fmt.Sprintf("LAP CHECK (f'c = %.0f MPa, fy = %.0f MPa):", p.Materials.Fc, p.Materials.Fy))
	for _, s := range splices {
		fmt.Printf("  %s\n", s.Message())
	}
	fmt.Println()
}
