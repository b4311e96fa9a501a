// Package sim implements the simulation driver: the fixed-step tick loop
// that owns a flow field, a navmesh and an agent population, orchestrates
// the pathfinding and avoidance passes each tick, and maintains the
// host-facing export buffer.
package sim

import (
	"math"

	"github.com/arl/crowdcore"
	"github.com/arl/crowdcore/avoid"
	"github.com/arl/crowdcore/flowfield"
	"github.com/arl/crowdcore/hpa"
	"github.com/arl/crowdcore/navmesh"
)

const (
	flowWidth  = 100
	flowHeight = 100
)

// Simulation owns a flow field, a navmesh, the agent population and the
// host-facing export buffer, and advances them one tick at a time. It is
// single-threaded and non-suspending: every method runs to completion
// before returning, and callers must not overlap calls on one instance.
type Simulation struct {
	Tick   uint64
	Flow   *flowfield.FlowField
	Nav    *navmesh.NavMesh
	HPA    *hpa.HPAGrid
	Agents *crowdcore.AgentSet
	Log    *crowdcore.Log

	export []float64
}

// New returns a Simulation with a fresh 100x100 flow field and the given
// navmesh (nil is valid; navmesh queries are simply unavailable until one
// is installed via Restore).
func New(nav *navmesh.NavMesh) *Simulation {
	return &Simulation{
		Flow:   flowfield.New(flowWidth, flowHeight),
		Nav:    nav,
		Agents: crowdcore.NewAgentSet(),
		Log:    crowdcore.NewLog(),
	}
}

// AddAgent appends a new agent with zero velocity and zero preferred
// velocity and rebuilds the export buffer.
func (s *Simulation) AddAgent(id uint32, pos crowdcore.Vec2, radius, maxSpeed float64) {
	s.Agents.Add(id, pos, radius, maxSpeed)
	s.rebuildExport()
}

// Step parses raw as a JSON-encoded command stream, dispatches it,
// advances every agent by one unit timestep through the avoidance solver,
// and rebuilds the export buffer. Malformed input parses to an empty
// command list; the tick still advances.
func (s *Simulation) Step(raw []byte) {
	s.Tick++

	cmds := crowdcore.ParseCommands(raw)
	stopped := s.dispatch(cmds)

	agents := s.Agents.All()
	for i := range agents {
		a := &agents[i]
		if stopped[a.ID] {
			a.PrefVel = crowdcore.Vec2{}
			continue
		}
		dir := s.Flow.GetDirection(a.Pos.X, a.Pos.Y)
		a.PrefVel = dir.Scale(a.MaxSpeed)
	}

	newVel := avoid.Resolve(agents)
	for i := range agents {
		agents[i].Vel = newVel[i]
		agents[i].Pos = agents[i].Pos.Add(agents[i].Vel)
	}

	s.rebuildExport()
}

// dispatch applies every MOVE and STOP command in order, last writer
// wins per id, and returns the set of agent ids that should keep a zero
// preferred velocity for the rest of this tick because they were just
// told to stop. STOP's effect is not pinned down by any numbered step of
// the tick algorithm; it is treated here as an immediate, one-tick halt
// rather than a standing hold, since nothing else in the contract
// persists command effects across ticks. Commands addressing an id with
// no matching agent are logged and otherwise ignored.
func (s *Simulation) dispatch(cmds []crowdcore.Command) map[uint32]bool {
	stopped := make(map[uint32]bool)
	for _, c := range cmds {
		switch c.Action {
		case crowdcore.ActionMove:
			if c.Mode == crowdcore.ModeFlow {
				s.Flow.GenerateTarget(c.TargetX, c.TargetY)
				continue
			}
			a, ok := s.Agents.Get(c.ID)
			if !ok {
				s.Log.Warning("MOVE: unknown agent id %d ignored", c.ID)
				continue
			}
			if c.Mode == crowdcore.ModeNav {
				s.checkNavReachable(a.Pos, crowdcore.Vec2{X: c.TargetX, Y: c.TargetY})
			}
			// NAV, DIRECT and unset modes all fall back to the same
			// emergency relocation: teleport the addressed agent and
			// zero its velocity.
			a.Pos = crowdcore.Vec2{X: c.TargetX, Y: c.TargetY}
			a.Vel = crowdcore.Vec2{}
			delete(stopped, c.ID)
		case crowdcore.ActionStop:
			if _, ok := s.Agents.Get(c.ID); ok {
				stopped[c.ID] = true
			} else {
				s.Log.Warning("STOP: unknown agent id %d ignored", c.ID)
			}
		}
	}
	return stopped
}

// checkNavReachable runs a best-effort reachability query through
// whichever pathfinder is installed (the navmesh funnel pathfinder takes
// priority over the HPA grid pathfinder) and logs a warning when neither
// can confirm a path. It never blocks or alters the emergency relocation
// that a NAV-mode MOVE still performs per the tick contract; it only
// records the non-fatal anomaly of a requested move the installed
// pathfinders can't actually route.
func (s *Simulation) checkNavReachable(from, to crowdcore.Vec2) {
	if s.Nav != nil {
		if _, ok := s.Nav.FindPath(from, to); !ok {
			s.Log.Warning("NAV move: navmesh found no path from %v to %v", from, to)
		}
		return
	}
	if s.HPA != nil {
		start := hpa.GridPos{X: int(math.Round(from.X)), Y: int(math.Round(from.Y))}
		end := hpa.GridPos{X: int(math.Round(to.X)), Y: int(math.Round(to.Y))}
		if _, ok := s.HPA.FindPath(start, end); !ok {
			s.Log.Warning("NAV move: HPA grid found no path from %v to %v", start, end)
		}
	}
}

func (s *Simulation) rebuildExport() {
	agents := s.Agents.All()
	export := make([]float64, 0, 5*len(agents))
	for _, a := range agents {
		export = append(export, float64(a.ID), a.Pos.X, a.Pos.Y, a.Vel.X, a.Vel.Y)
	}
	s.export = export
}

// Export returns the current state-export buffer: repeating [id, x, y,
// vx, vy] tuples, one per agent in insertion order. The host must treat
// it as read-only and must not retain it across a call that can rebuild
// it (Step, Restore, RemapIDs, AddAgent).
func (s *Simulation) Export() []float64 { return s.export }

// RemapIDs rewrites agent ids per the oldIDs/newIDs mapping and rebuilds
// the export buffer. Mismatched-length inputs are a no-op.
func (s *Simulation) RemapIDs(oldIDs, newIDs []uint32) {
	s.Agents.RemapIDs(oldIDs, newIDs)
	s.rebuildExport()
}
