package crowdcore

import assert "github.com/arl/assertgo"

// Agent is a disk-shaped moving entity: a stable id, position, velocity,
// radius, max speed and a preferred velocity written by the pathfinding
// layer and consumed by the avoidance solver each tick.
type Agent struct {
	ID       uint32
	Pos      Vec2
	Vel      Vec2
	Radius   float64
	MaxSpeed float64
	PrefVel  Vec2
}

// AgentSet owns the population of agents in insertion order. The core never
// destroys an agent once added; removal is out of scope.
type AgentSet struct {
	agents []Agent
	byID   map[uint32]int
}

// NewAgentSet returns an empty agent set.
func NewAgentSet() *AgentSet {
	return &AgentSet{byID: make(map[uint32]int)}
}

// Add appends a new agent with zero velocity and zero preferred velocity.
func (s *AgentSet) Add(id uint32, pos Vec2, radius, maxSpeed float64) {
	assert.True(radius > 0, "agent %d: radius must be > 0, got %v", id, radius)
	if _, dup := s.byID[id]; dup {
		assert.True(false, "agent %d: id already present in the agent set", id)
		return
	}
	s.byID[id] = len(s.agents)
	s.agents = append(s.agents, Agent{ID: id, Pos: pos, Radius: radius, MaxSpeed: maxSpeed})
}

// Len returns the number of agents.
func (s *AgentSet) Len() int { return len(s.agents) }

// All returns the live agent slice, in insertion order. Callers may mutate
// fields of each element in place; they must not change the slice length.
func (s *AgentSet) All() []Agent { return s.agents }

// Get returns the agent with the given id and whether it was found.
func (s *AgentSet) Get(id uint32) (*Agent, bool) {
	i, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return &s.agents[i], true
}

// Index returns the slice index of id, or -1 if absent.
func (s *AgentSet) Index(id uint32) int {
	i, ok := s.byID[id]
	if !ok {
		return -1
	}
	return i
}

// RemapIDs rewrites every agent id that appears as a key in the mapping
// formed by zipping oldIDs and newIDs. Mismatched-length inputs are a
// no-op. No ordering guarantee is made beyond the existing agent order.
func (s *AgentSet) RemapIDs(oldIDs, newIDs []uint32) {
	if len(oldIDs) != len(newIDs) {
		return
	}
	mapping := make(map[uint32]uint32, len(oldIDs))
	for i, old := range oldIDs {
		mapping[old] = newIDs[i]
	}

	byID := make(map[uint32]int, len(s.agents))
	for i := range s.agents {
		a := &s.agents[i]
		if nv, ok := mapping[a.ID]; ok {
			a.ID = nv
		}
		byID[a.ID] = i
	}
	s.byID = byID
}

// Clone returns a deep copy of the agent set.
func (s *AgentSet) Clone() *AgentSet {
	out := &AgentSet{
		agents: make([]Agent, len(s.agents)),
		byID:   make(map[uint32]int, len(s.byID)),
	}
	copy(out.agents, s.agents)
	for k, v := range s.byID {
		out.byID[k] = v
	}
	return out
}
