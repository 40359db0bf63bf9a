// Package player holds the per-player planning state the world model
// carries between ticks: position, inventory, the currently cached path,
// and the oscillation-recovery bookkeeping the planner consults before
// handing out a new goal.
//
// Grounded on original_source/src/player_state.rs; GoalType/GoalSpec
// (model.GoalType) stand in for the Rust Goal enum to keep this package
// below internal/goal in the import graph.
package player

import (
	"sort"

	"github.com/rcaelers/swoqbot/internal/model"
)

// StartingHealth is the health every player begins a level with.
const StartingHealth = 10

// State is one player's full planning state.
type State struct {
	Position  model.Position
	Health    int
	Inventory model.Inventory
	HasSword  bool
	IsActive  bool

	CurrentGoal  model.GoalSpec
	HasGoal      bool
	PreviousGoal model.GoalSpec
	HasPrevGoal  bool

	CurrentDestination model.Position
	HasDestination     bool
	CurrentPath        []model.Position

	UnexploredFrontier map[model.Position]struct{}

	ForceRandomExploreTicks int
}

// New returns the initial state for a player spawning at pos.
func New(pos model.Position) *State {
	return &State{
		Position:           pos,
		Health:             StartingHealth,
		Inventory:          model.InventoryNone,
		HasSword:           false,
		IsActive:           true,
		UnexploredFrontier: make(map[model.Position]struct{}),
	}
}

// SetGoal records goal as the active goal, pushing whatever was active
// into PreviousGoal.
func (s *State) SetGoal(goal model.GoalSpec) {
	if s.HasGoal {
		s.PreviousGoal = s.CurrentGoal
		s.HasPrevGoal = true
	}
	s.CurrentGoal = goal
	s.HasGoal = true
}

// ClearGoal drops the active goal without promoting it to PreviousGoal.
func (s *State) ClearGoal() {
	s.HasGoal = false
}

// GoalChanged reports whether CurrentGoal differs from PreviousGoal,
// which the goal dispatcher uses to decide whether a cached path must be
// thrown away.
func (s *State) GoalChanged() bool {
	if s.HasGoal != s.HasPrevGoal {
		return true
	}
	if !s.HasGoal {
		return false
	}
	return !s.CurrentGoal.Equal(s.PreviousGoal)
}

// SetDestination records dest and path as the currently pursued route.
func (s *State) SetDestination(dest model.Position, path []model.Position) {
	s.CurrentDestination = dest
	s.HasDestination = true
	s.CurrentPath = path
}

// ClearDestination drops the cached destination and path.
func (s *State) ClearDestination() {
	s.HasDestination = false
	s.CurrentDestination = model.Position{}
	s.CurrentPath = nil
}

// SortedUnexplored returns the frontier cells this player knows about,
// nearest first by Manhattan distance from the player's current
// position.
func (s *State) SortedUnexplored() []model.Position {
	frontier := make([]model.Position, 0, len(s.UnexploredFrontier))
	for pos := range s.UnexploredFrontier {
		frontier = append(frontier, pos)
	}
	sort.Slice(frontier, func(i, j int) bool {
		return s.Position.Distance(frontier[i]) < s.Position.Distance(frontier[j])
	})
	return frontier
}
