package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorebar/internal/bars"
	"github.com/alexiusacademia/gorebar/internal/diagram"
	"github.com/alexiusacademia/gorebar/internal/document"
	"github.com/alexiusacademia/gorebar/internal/scenario"
)

var (
	plotFace    string
	plotOutput  string
	plotView    string
	plotASCII   bool
	plotFromDoc bool
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Draw bar layouts",
	Long: `Draw the computed chain of a face, or every bar stored in the
document, as an ASCII section or an image (PNG, SVG or PDF).

Views:
  section    - Y across, Z up (shows splice staggers)
  elevation  - X across, Z up (shows layer copies)
  plan       - X across, Y up (shows EX-links)

Examples:
  gorebar plot --face B --ascii
  gorebar plot --face D --output layer-d.png
  gorebar plot --from-doc --view plan --output links.svg`,
	RunE: runPlot,
}

func init() {
	rootCmd.AddCommand(plotCmd)

	plotCmd.Flags().StringVarP(&plotFace, "face", "f", "B", "Wall face: B or D")
	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "", "Image file (.png, .svg, .pdf)")
	plotCmd.Flags().StringVar(&plotView, "view", "section", "section, elevation or plan")
	plotCmd.Flags().BoolVar(&plotASCII, "ascii", false, "Print an ASCII section of the chain")
	plotCmd.Flags().BoolVar(&plotFromDoc, "from-doc", false, "Plot every bar stored in the document")
}

func runPlot(cmd *cobra.Command, args []string) error {
	view, err := diagram.ParseView(plotView)
	if err != nil {
		return err
	}
	p, err := loadScenario()
	if err != nil {
		return err
	}

	data := diagram.PathDiagramData{View: view, Wall: p.Wall.Section()}

	if plotFromDoc {
		ctx := context.Background()
		doc, err := document.Open(ctx, cfg.Database, logger.Named("document"))
		if err != nil {
			return err
		}
		defer doc.Close()

		rebars, err := doc.Rebars(ctx)
		if err != nil {
			return err
		}
		data.Title = fmt.Sprintf("%s, %d bars", p.Wall.Name, len(rebars))
		for i, r := range rebars {
			data.Paths = append(data.Paths, diagram.PathSeries{
				Label: fmt.Sprintf("%d %s", i+1, r.TypeName),
				Path:  r.Path,
			})
		}
		data.Labelled = 8
	} else {
		face, err := scenario.ParseFace(plotFace)
		if err != nil {
			return err
		}
		entries, err := p.Layer(face).Entries()
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

		data.Title = fmt.Sprintf("Main layer %s", face)
		for i, path := range plan.Paths {
			data.Paths = append(data.Paths, diagram.PathSeries{
				Label: fmt.Sprintf("r%d %s", i+1, plan.Types[i]),
				Path:  path,
			})
		}

		if plotASCII || plotOutput == "" {
			fmt.Println(diagram.DrawASCIIChainDiagram(diagram.ChainDiagramData{
				Title: data.Title,
				Bars:  diagram.ChainFromPaths(plan.Paths, plan.Types),
			}))
		}
	}

	if plotOutput != "" {
		if len(data.Paths) == 0 {
			return fmt.Errorf("nothing to plot")
		}
		if err := diagram.ExportPathDiagram(data, plotOutput); err != nil {
			return fmt.Errorf("failed to export diagram: %w", err)
		}
		fmt.Printf("\n  Diagram exported to: %s\n", plotOutput)
	}
	return nil
}
