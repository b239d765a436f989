package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorebar/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gorebar",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
		fmt.Println("D-wall Reinforcement Layout Tool")
		fmt.Printf("Built %s\n", version.BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
