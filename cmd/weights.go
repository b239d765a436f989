package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorebar/internal/scenario"
)

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Set the unit weight parameter of bar types",
	Long: `Set the "Unit weight" parameter of every bar type listed in the
scenario's unit weight table (kg/m). All types are written in one
transaction; any failure leaves every type unchanged.

Examples:
  gorebar weights
  gorebar weights --scenario weights.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScenario("BAR UNIT WEIGHTS", scenario.UnitWeights)
	},
}

func init() {
	rootCmd.AddCommand(weightsCmd)
}
