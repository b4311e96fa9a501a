package main

import "github.com/arl/crowdcore/cmd/crowdsim/cmd"

func main() {
	cmd.Execute()
}
