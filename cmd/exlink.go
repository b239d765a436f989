package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorebar/internal/layout"
	"github.com/alexiusacademia/gorebar/internal/scenario"
	"github.com/alexiusacademia/gorebar/internal/units"
)

var (
	copyInstances int
	copySpacing   float64
)

var exlinkCmd = &cobra.Command{
	Use:   "exlink",
	Short: "Create, copy and mirror EX-links",
	Long: `Create, copy and mirror the horizontal EX-links of a wall panel.

Subcommands:
  create  - Create one five-leg EX-link
  copy    - Stack every EX-link downward at a fixed spacing
  mirror  - Mirror every EX-link across the wall thickness`,
}

var exlinkCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create one EX-link",
	Long: `Create a five-leg EX-link: a hook leg, a leg across the wall,
a run along the far face, an inclined return and a closing hook leg.

Examples:
  gorebar exlink create
  gorebar exlink create --scenario panel-p12.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScenario("EX-LINK", scenario.ExLink)
	},
}

var exlinkCopyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Copy every EX-link downward",
	Long: `Copy every bar of the EX-link type downward (-Z). Each copy step
is its own transaction; a failed step is reported and the rest continue.

Examples:
  # 243 links per original at 150 mm
  gorebar exlink copy

  gorebar exlink copy --instances 40 --spacing 200`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScenario("COPY EX-LINKS", func(ctx context.Context, s *layout.Session, p scenario.Params) (*scenario.Report, error) {
			if cmd.Flags().Changed("instances") {
				p.CopyExLinks.Instances = copyInstances
			}
			if cmd.Flags().Changed("spacing") {
				p.CopyExLinks.Spacing = units.Millimeters(copySpacing)
			}
			if err := p.Validate(); err != nil {
				return nil, err
			}
			return scenario.CopyExLinks(ctx, s, p)
		})
	},
}

var exlinkMirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Mirror every EX-link across the wall thickness",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScenario("MIRROR EX-LINKS", scenario.MirrorExLinks)
	},
}

func init() {
	rootCmd.AddCommand(exlinkCmd)
	exlinkCmd.AddCommand(exlinkCreateCmd)
	exlinkCmd.AddCommand(exlinkCopyCmd)
	exlinkCmd.AddCommand(exlinkMirrorCmd)

	exlinkCopyCmd.Flags().IntVar(&copyInstances, "instances", 243, "Links per original, the original included")
	exlinkCopyCmd.Flags().Float64Var(&copySpacing, "spacing", 150, "Vertical spacing (mm)")
}
