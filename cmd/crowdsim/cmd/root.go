package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "crowdsim",
	Short: "drive the crowd simulation core from outside the process",
	Long: `crowdsim exercises the crowdcore simulation core the way a host
would: build a navmesh from triangulated OBJ geometry, run a scenario
headlessly and print the export buffer tick by tick, and round-trip a
simulation snapshot through YAML.`,
}

// Execute adds all child commands to the root command and runs it. Called
// once by main.main.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
