package avoid

import (
	"testing"

	"github.com/arl/crowdcore"
	"github.com/stretchr/testify/assert"
)

func headOnPair() []crowdcore.Agent {
	return []crowdcore.Agent{
		{ID: 1, Pos: crowdcore.Vec2{X: 0, Y: 0}, Radius: 0.5, MaxSpeed: 1, PrefVel: crowdcore.Vec2{X: 1, Y: 0}},
		{ID: 2, Pos: crowdcore.Vec2{X: 5, Y: 0}, Radius: 0.5, MaxSpeed: 1, PrefVel: crowdcore.Vec2{X: -1, Y: 0}},
	}
}

// runTicks advances agents one unit-timestep at a time, each tick
// computing new velocities from the positions and velocities recorded at
// the start of that tick (deferred write-back), then integrating
// position. It returns the per-tick new-velocity slices, one per tick.
func runTicks(agents []crowdcore.Agent, ticks int) [][]crowdcore.Vec2 {
	history := make([][]crowdcore.Vec2, ticks)
	for tick := 0; tick < ticks; tick++ {
		newVel := Resolve(agents)
		history[tick] = newVel
		for i := range agents {
			agents[i].Vel = newVel[i]
			agents[i].Pos = agents[i].Pos.Add(agents[i].Vel)
		}
	}
	return history
}

func TestHeadOnAgentsSteerLaterallyOnceInRange(t *testing.T) {
	agents := headOnPair()
	agents[0].Vel = agents[0].PrefVel
	agents[1].Vel = agents[1].PrefVel

	// starting 5 apart at combined radius 1, the pair is outside the
	// 2*combined_radius avoidance horizon until they close the gap; once
	// within range a lateral component must appear in at least one tick.
	history := runTicks(agents, 10)
	steered := false
	for _, newVel := range history {
		if newVel[0] != agents[0].PrefVel || newVel[1] != agents[1].PrefVel {
			steered = true
			break
		}
	}
	assert.True(t, steered, "expected a lateral steering component to appear within 10 ticks")
}

func TestHeadOnAgentsDoNotOverlapAfterTenTicks(t *testing.T) {
	agents := headOnPair()
	agents[0].Vel = agents[0].PrefVel
	agents[1].Vel = agents[1].PrefVel

	runTicks(agents, 10)

	dist := agents[0].Pos.Dist(agents[1].Pos)
	assert.GreaterOrEqual(t, dist, 1.0)
}

func TestNonOverlappingStationaryAgentsStayAtPreferredVelocity(t *testing.T) {
	agents := []crowdcore.Agent{
		{ID: 1, Pos: crowdcore.Vec2{X: 0, Y: 0}, Radius: 0.5, MaxSpeed: 1, PrefVel: crowdcore.Vec2{X: 1, Y: 0}},
		{ID: 2, Pos: crowdcore.Vec2{X: 100, Y: 100}, Radius: 0.5, MaxSpeed: 1, PrefVel: crowdcore.Vec2{X: -1, Y: 0}},
	}
	newVel := Resolve(agents)
	assert.Equal(t, agents[0].PrefVel, newVel[0])
	assert.Equal(t, agents[1].PrefVel, newVel[1])
}

func TestOverlappingAgentsSeparate(t *testing.T) {
	agents := []crowdcore.Agent{
		{ID: 1, Pos: crowdcore.Vec2{X: 0, Y: 0}, Radius: 1, MaxSpeed: 2, PrefVel: crowdcore.Vec2{}},
		{ID: 2, Pos: crowdcore.Vec2{X: 0.5, Y: 0}, Radius: 1, MaxSpeed: 2, PrefVel: crowdcore.Vec2{}},
	}
	newVel := Resolve(agents)
	assert.Less(t, newVel[0].X, 0.0)
	assert.Greater(t, newVel[1].X, 0.0)
	assert.InDelta(t, 2.0, newVel[0].Len(), 1e-9)
	assert.InDelta(t, 2.0, newVel[1].Len(), 1e-9)
}

func TestNewVelocityNeverExceedsMaxSpeed(t *testing.T) {
	agents := []crowdcore.Agent{
		{ID: 1, Pos: crowdcore.Vec2{X: 0, Y: 0}, Radius: 0.5, MaxSpeed: 1, Vel: crowdcore.Vec2{X: 1, Y: 0}, PrefVel: crowdcore.Vec2{X: 1, Y: 0}},
		{ID: 2, Pos: crowdcore.Vec2{X: 1.2, Y: 0}, Radius: 0.5, MaxSpeed: 1, Vel: crowdcore.Vec2{X: -1, Y: 0}, PrefVel: crowdcore.Vec2{X: -1, Y: 0}},
		{ID: 3, Pos: crowdcore.Vec2{X: 0.6, Y: 1}, Radius: 0.5, MaxSpeed: 1, Vel: crowdcore.Vec2{X: 0, Y: -1}, PrefVel: crowdcore.Vec2{X: 0, Y: -1}},
	}
	newVel := Resolve(agents)
	for i, v := range newVel {
		assert.LessOrEqual(t, v.Len(), agents[i].MaxSpeed+1e-9)
	}
}
