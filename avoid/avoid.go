// Package avoid implements per-agent pairwise local avoidance: each
// agent's preferred velocity is adjusted against every other agent's
// position and velocity to produce a collision-aware velocity for the
// tick.
package avoid

import (
	"math"

	"github.com/arl/crowdcore"
)

// Resolve computes, for every agent, a new velocity derived from its
// preferred velocity adjusted for pairwise interactions with every other
// agent in the set. It reads only the Pos, Vel, PrefVel, Radius and
// MaxSpeed fields recorded in agents before the call; the returned slice
// is parallel to agents and write-back is the caller's responsibility,
// so that every agent's adjustment sees the same start-of-tick state.
func Resolve(agents []crowdcore.Agent) []crowdcore.Vec2 {
	out := make([]crowdcore.Vec2, len(agents))
	for i := range agents {
		out[i] = resolveOne(agents, i)
	}
	return out
}

func resolveOne(agents []crowdcore.Agent, i int) crowdcore.Vec2 {
	self := agents[i]
	newVel := self.PrefVel

	for j := range agents {
		if j == i {
			continue
		}
		other := agents[j]

		relPos := other.Pos.Sub(self.Pos)
		relVel := self.Vel.Sub(other.Vel)
		combinedRadius := self.Radius + other.Radius
		distSqr := relPos.LenSqr()

		horizon := 2 * combinedRadius
		if distSqr > horizon*horizon {
			continue
		}
		dist := math.Sqrt(distSqr)

		switch {
		case dist < combinedRadius:
			newVel = newVel.Add(separationImpulse(self, other, dist, i < j))
		case relVel.Dot(relPos) > 0:
			newVel = newVel.Add(lateralImpulse(relPos, newVel, dist, combinedRadius))
		}
	}

	if newVel.Len() > self.MaxSpeed {
		newVel = newVel.Normalize().Scale(self.MaxSpeed)
	}
	return newVel
}

// separationImpulse pushes self directly away from an overlapping other,
// at self's own max speed. Coincident centers (dist == 0) have no defined
// direction; such agents push along the X axis rather than contribute the
// zero vector, in opposite directions (the agent earlier in the slice,
// selfFirst, toward -X), so that two perfectly stacked agents still
// separate.
func separationImpulse(self, other crowdcore.Agent, dist float64, selfFirst bool) crowdcore.Vec2 {
	away := self.Pos.Sub(other.Pos)
	if dist < 1e-9 {
		away = crowdcore.Vec2{X: 1, Y: 0}
		if selfFirst {
			away.X = -1
		}
	} else {
		away = away.Normalize()
	}
	return away.Scale(self.MaxSpeed)
}

// lateralImpulse steers around an approaching neighbor: it picks whichever
// perpendicular to relPos best aligns with the velocity accumulated so
// far (ties going to the positive, counter-clockwise, perpendicular) and
// scales it down as the neighbor's distance approaches the avoidance
// horizon.
func lateralImpulse(relPos, adjusted crowdcore.Vec2, dist, combinedRadius float64) crowdcore.Vec2 {
	perp := relPos.Perp().Normalize()
	if perp.Dot(adjusted) < 0 {
		perp = perp.Scale(-1)
	}
	scale := 2 * (1 - dist/(3*combinedRadius))
	return perp.Scale(scale)
}
