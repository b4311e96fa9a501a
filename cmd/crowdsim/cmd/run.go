package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/arl/crowdcore"
	"github.com/arl/crowdcore/navmesh"
	"github.com/arl/crowdcore/sim"
)

var scenarioPath string

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "tick a scenario headlessly and print the export buffer",
	Long: `Load a scenario from --scenario, add its agents to a fresh
Simulation, then tick once per entry in its ticks list, printing the
export buffer after each tick.`,
	RunE: doRun,
}

func init() {
	RootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "scenario.yml", "scenario file")
}

func doRun(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(scenarioPath)
	if err != nil {
		return err
	}
	var sc scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return err
	}

	var nav *navmesh.NavMesh
	if sc.Navmesh != "" {
		f, err := os.Open(sc.Navmesh)
		if err != nil {
			return err
		}
		nav, err = navmesh.FromOBJ(f)
		f.Close()
		if err != nil {
			return err
		}
	}

	s := sim.New(nav)
	for _, a := range sc.Agents {
		s.AddAgent(a.ID, crowdcore.Vec2{X: a.X, Y: a.Y}, a.Radius, a.MaxSpeed)
	}

	for i, tick := range sc.Ticks {
		s.Step([]byte(tick))
		fmt.Printf("tick %d: %v\n", i+1, s.Export())
	}

	if s.Log.Count() > 0 {
		s.Log.Dump("crowdsim run log:")
	}
	return nil
}
