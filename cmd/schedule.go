package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorebar/internal/document"
	"github.com/alexiusacademia/gorebar/internal/host"
	"github.com/alexiusacademia/gorebar/internal/scenario"
	"github.com/alexiusacademia/gorebar/internal/schedule"
	"github.com/alexiusacademia/gorebar/internal/units"
)

var (
	scheduleOutput string
	scheduleList   bool
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print and export the bar schedule",
	Long: `List every bar of the document with its length and weight and
sum them by bar type. Unit weights come from the "Unit weight" type
parameter (see 'gorebar weights'), falling back to the scenario table.

Examples:
  gorebar schedule
  gorebar schedule --output schedule.xlsx
  gorebar schedule --output schedule.pdf --list`,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().StringVarP(&scheduleOutput, "output", "o", "", "Export to .xlsx or .pdf")
	scheduleCmd.Flags().BoolVar(&scheduleList, "list", false, "Print every bar, not only the totals")
}

// documentUnitWeights reads the unit weight parameter of every bar type, in
// kg/m, over the fallback table.
func documentUnitWeights(ctx context.Context, doc *document.Document, fallback map[string]units.KgPerMeter) (map[string]units.KgPerMeter, error) {
	weights := make(map[string]units.KgPerMeter, len(fallback))
	for k, v := range fallback {
		weights[k] = v
	}

	types, err := doc.ListByClass(ctx, host.ClassRebarBarType)
	if err != nil {
		return nil, err
	}
	for _, t := range types {
		v, ok, err := doc.Parameter(ctx, t.ID, scenario.UnitWeightParameter)
		if err != nil {
			return nil, err
		}
		if ok {
			weights[t.Name] = units.KgPerMeter(v / units.MMPerFoot * 1000)
		}
	}
	return weights, nil
}

func runSchedule(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	p, err := loadScenario()
	if err != nil {
		return err
	}
	doc, err := document.Open(ctx, cfg.Database, logger.Named("document"))
	if err != nil {
		return err
	}
	defer doc.Close()

	rebars, err := doc.Rebars(ctx)
	if err != nil {
		return err
	}
	weights, err := documentUnitWeights(ctx, doc, p.UnitWeights)
	if err != nil {
		return err
	}
	s := schedule.Build(p.Wall.Name, rebars, weights)

	printHeader("BAR SCHEDULE")

	if scheduleList {
		printSection("BARS:")
		w := newTable()
		fmt.Fprintf(w, "  Mark\tType\tLegs\tLength (mm)\tWeight (kg)\tCopy\n")
		for _, l := range s.Lines {
			copied := ""
			if l.Copy {
				copied = "yes"
			}
			fmt.Fprintf(w, "  %d\t%s\t%d\t%.0f\t%.2f\t%s\n", l.Mark, l.BarType, l.Segments, float64(l.Length), l.Weight, copied)
		}
		w.Flush()
		fmt.Println()
	}

	printSection("TOTALS:")
	w := newTable()
	fmt.Fprintf(w, "  Type\tCount\tLength (m)\tWeight (kg)\n")
	for _, t := range s.Totals {
		fmt.Fprintf(w, "  %s\t%d\t%.2f\t%.1f\n", t.BarType, t.Count, t.Length, t.Weight)
	}
	fmt.Fprintf(w, "  Total\t%d\t\t%.1f\n", len(s.Lines), s.TotalWeight())
	w.Flush()
	fmt.Println()

	if len(s.Missing) > 0 {
		fmt.Printf("  ⚠ No unit weight for: %v\n\n", s.Missing)
	}

	if scheduleOutput != "" {
		if err := schedule.Export(scheduleOutput, s); err != nil {
			return fmt.Errorf("failed to export schedule: %w", err)
		}
		fmt.Printf("  Schedule exported to: %s\n\n", scheduleOutput)
	}
	return nil
}
