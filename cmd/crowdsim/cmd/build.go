package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arl/crowdcore/navmesh"
)

// buildCmd represents the build command.
var buildCmd = &cobra.Command{
	Use:   "build INPUT.obj",
	Short: "build a navmesh from triangulated OBJ geometry",
	Long: `Build a navmesh from a triangulated OBJ file, deriving triangle
adjacency by matching shared edges, and print its triangle count and
neighbor wiring to standard output.`,
	Args: cobra.ExactArgs(1),
	RunE: doBuild,
}

func init() {
	RootCmd.AddCommand(buildCmd)
}

func doBuild(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := navmesh.FromOBJ(f)
	if err != nil {
		return err
	}

	fmt.Printf("%d triangles\n", len(m.Triangles))
	for _, t := range m.Triangles {
		fmt.Printf("triangle %d: neighbors %v\n", t.ID, t.Neighbors)
	}
	return nil
}
