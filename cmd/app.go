package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gorebar/internal/document"
	"github.com/alexiusacademia/gorebar/internal/layout"
	"github.com/alexiusacademia/gorebar/internal/scenario"
)

const rule = "───────────────────────────────────────────────────────────────"

// openSession opens the configured document and wires a layout session on
// it. The caller closes the document.
func openSession(ctx context.Context) (*layout.Session, *document.Document, error) {
	doc, err := document.Open(ctx, cfg.Database, logger.Named("document"))
	if err != nil {
		return nil, nil, err
	}
	return layout.NewSession(doc, logger, runMetrics), doc, nil
}

func loadScenario() (scenario.Params, error) {
	if cfg.Scenario == "" {
		return scenario.Default(), nil
	}
	return scenario.Load(cfg.Scenario)
}

func printHeader(title string) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     %s\n", title)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
}

func printSection(title string) {
	fmt.Println(title)
	fmt.Println(rule)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

func printReport(rep *scenario.Report) {
	if rep == nil {
		return
	}
	printSection("RESULT:")
	for _, line := range rep.Lines {
		fmt.Printf("  %s\n", line)
	}
	fmt.Println()

	w := newTable()
	fmt.Fprintf(w, "  Elements created:\t%d\n", len(rep.Created))
	fmt.Fprintf(w, "  Failed:\t%d\n", rep.Failed)
	fmt.Fprintf(w, "  Skipped:\t%d\n", rep.Skipped)
	w.Flush()

	fmt.Println()
	if rep.OK() {
		fmt.Println("  Status: ✓ completed")
	} else {
		fmt.Println("  Status: ⚠ completed with problems")
	}
	fmt.Println()
}

// runScenario opens the document, runs fn and prints its report.
func runScenario(title string, fn func(ctx context.Context, s *layout.Session, p scenario.Params) (*scenario.Report, error)) error {
	ctx := context.Background()

	p, err := loadScenario()
	if err != nil {
		return err
	}
	s, doc, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer doc.Close()

	printHeader(title)
	rep, err := fn(ctx, s, p)
	printReport(rep)
	return err
}
