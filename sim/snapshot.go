package sim

import (
	"github.com/arl/crowdcore"
	"github.com/arl/crowdcore/navmesh"
)

// SimSnapshot is a self-describing, deep-copied image of all simulation
// state: tick count, full agent list, full flow field and full navmesh.
// It is sufficient to resume execution bit-identically via Restore and
// round-trips through YAML for cmd/crowdsim's snapshot subcommand.
type SimSnapshot struct {
	Tick   uint64            `yaml:"tick"`
	Agents []crowdcore.Agent `yaml:"agents"`

	FlowWidth       int              `yaml:"flow_width"`
	FlowHeight      int              `yaml:"flow_height"`
	FlowCost        []uint8          `yaml:"flow_cost"`
	FlowIntegration []float64        `yaml:"flow_integration"`
	FlowVectors     []crowdcore.Vec2 `yaml:"flow_vectors"`

	NavTriangles []navmesh.Triangle `yaml:"nav_triangles"`
}

// Snapshot returns a deep copy of s's entire state: get_snapshot must
// never alias internal storage.
func (s *Simulation) Snapshot() SimSnapshot {
	snap := SimSnapshot{
		Tick:   s.Tick,
		Agents: append([]crowdcore.Agent(nil), s.Agents.All()...),
	}
	snap.FlowWidth, snap.FlowHeight, snap.FlowCost, snap.FlowIntegration, snap.FlowVectors = s.Flow.Snapshot()
	if s.Nav != nil {
		snap.NavTriangles = append([]navmesh.Triangle(nil), s.Nav.Triangles...)
	}
	return snap
}

// Restore installs snap as s's entire state and rebuilds the export
// buffer before returning, so the very next Export call reflects the
// restored state rather than a stale or empty region.
func (s *Simulation) Restore(snap SimSnapshot) {
	s.Tick = snap.Tick

	agents := crowdcore.NewAgentSet()
	for _, a := range snap.Agents {
		agents.Add(a.ID, a.Pos, a.Radius, a.MaxSpeed)
		restored, _ := agents.Get(a.ID)
		restored.Vel = a.Vel
		restored.PrefVel = a.PrefVel
	}
	s.Agents = agents

	s.Flow.Restore(snap.FlowWidth, snap.FlowHeight, snap.FlowCost, snap.FlowIntegration, snap.FlowVectors)

	if len(snap.NavTriangles) > 0 {
		s.Nav = navmesh.New(append([]navmesh.Triangle(nil), snap.NavTriangles...))
	} else {
		s.Nav = nil
	}

	s.rebuildExport()
}
