// Package strategy implements the twelve-deep priority ladder that
// decides which goal each player attempts each tick, and the planner that
// walks that ladder in a fixed order with inter-tick continuity and
// oscillation recovery.
//
// Grounded on original_source/src/strategies/*.rs and strategies/planner.rs.
// Two strategies referenced by planner.rs's construction list —
// cooperative_door_passage.rs and use_pressure_plate_for_door.rs — were not
// present in the retrieval pack; both are authored directly from spec.md
// §4.7 items 6-7 instead, noted per-strategy below. planner.rs also
// constructs a `boulder_on_plate::BoulderOnPlateStrategy`, but the only
// retrieved file for this concern is drop_boulder_on_plate.rs (struct
// DropBoulderOnPlateStrategy); this package's boulderOnPlate strategy is
// grounded on that file's logic under spec.md's "BoulderOnPlate" name.
package strategy

import (
	"math/rand/v2"

	"github.com/rcaelers/swoqbot/internal/model"
	"github.com/rcaelers/swoqbot/internal/player"
	"github.com/rcaelers/swoqbot/internal/world"
)

// Strategy is the capability every entry in the priority ladder
// implements, independent of whether it assigns goals to one player at a
// time or coordinates the whole roster at once.
type Strategy interface {
	Name() string
	// IsEmergency strategies run first and may override a goal another
	// strategy already assigned this tick.
	IsEmergency() bool
	// Prioritize reports whether, given the current world, this strategy
	// is worth retrying early this tick for a player it assigned goals to
	// last tick.
	Prioritize(w *world.State) bool
}

// IndividualStrategy assigns a goal to one player at a time.
type IndividualStrategy interface {
	Strategy
	TrySelect(w *world.State, playerIndex int) (model.GoalSpec, bool)
}

// CoopStrategy assigns goals across the whole roster at once, since its
// decision for one player depends on another's state. assigned holds
// whatever every earlier strategy this tick already decided (nil where
// still unassigned); the returned slice has the same length as
// w.Players, nil for slots this strategy leaves untouched.
type CoopStrategy interface {
	Strategy
	TrySelectCoop(w *world.State, assigned []*model.GoalSpec) []*model.GoalSpec
}

// forcedExploreDuration is how many ticks a player forced into
// RandomExplore after an oscillation stays there, regardless of what the
// ladder would otherwise assign. Spec.md §4.7 calls for "a small positive
// value" without naming one; chosen here.
const forcedExploreDuration = 3

// Planner walks the fixed strategy ladder every tick and assigns exactly
// one goal per player.
type Planner struct {
	strategies            []Strategy
	lastStrategyPerPlayer []int
	positionHistory       [][2]model.Position
}

// NewPlanner returns a planner with the strategy ladder in its fixed,
// priority-descending order (spec.md §4.7).
func NewPlanner() *Planner {
	return &Planner{
		strategies: []Strategy{
			attackOrFleeEnemy{},
			pickupHealth{},
			pickupSword{},
			reachExit{},
			boulderOnPlate{},
			cooperativeDoorPassage{},
			usePressurePlateForDoor{},
			newKeyAndDoor(),
			moveUnexploredBoulder{},
			fallbackPressurePlate{},
			huntEnemyWithSword{},
			randomExploreStrategy{},
		},
	}
}

func (pl *Planner) ensureSized(n int) {
	for len(pl.lastStrategyPerPlayer) < n {
		pl.lastStrategyPerPlayer = append(pl.lastStrategyPerPlayer, -1)
	}
	for len(pl.positionHistory) < n {
		pl.positionHistory = append(pl.positionHistory, [2]model.Position{})
	}
}

// Select assigns a goal to every player in w via PlayerState.SetGoal,
// following spec.md §4.7's assignment semantics: forced random explore
// first, then emergencies, then each player's prioritized strategy from
// last tick, then the remaining ladder in order, defaulting to Explore.
func (pl *Planner) Select(w *world.State) {
	n := len(w.Players)
	pl.ensureSized(n)
	pl.detectOscillation(w)

	assigned := make([]*model.GoalSpec, n)
	locked := make([]bool, n)

	for i, p := range w.Players {
		if p.ForceRandomExploreTicks <= 0 {
			continue
		}
		target, ok := findRandomReachablePosition(w, p, i)
		if ok {
			spec := model.GoalSpec{Type: model.GoalRandomExplore, Target: target, HasTarget: true}
			assigned[i] = &spec
		}
		locked[i] = true
		p.ForceRandomExploreTicks--
	}

	for idx, s := range pl.strategies {
		if !s.IsEmergency() {
			continue
		}
		pl.apply(w, assigned, locked, idx, s, true)
	}

	for i := range w.Players {
		if assigned[i] != nil || locked[i] {
			continue
		}
		last := pl.lastStrategyPerPlayer[i]
		if last < 0 || last >= len(pl.strategies) {
			continue
		}
		s := pl.strategies[last]
		if s.IsEmergency() || !s.Prioritize(w) {
			continue
		}
		pl.applyToPlayer(w, assigned, i, last, s)
	}

	for idx, s := range pl.strategies {
		if allAssigned(assigned) {
			break
		}
		if s.IsEmergency() {
			continue
		}
		pl.apply(w, assigned, locked, idx, s, false)
	}

	for i, p := range w.Players {
		if assigned[i] == nil {
			spec := model.GoalSpec{Type: model.GoalExplore}
			assigned[i] = &spec
		}
		p.SetGoal(*assigned[i])
	}

	pl.recordPositions(w)
}

func (pl *Planner) apply(w *world.State, assigned []*model.GoalSpec, locked []bool, idx int, s Strategy, allowOverride bool) {
	switch st := s.(type) {
	case IndividualStrategy:
		for i, p := range w.Players {
			if locked[i] || !p.IsActive {
				continue
			}
			if assigned[i] != nil && !allowOverride {
				continue
			}
			spec, ok := st.TrySelect(w, i)
			if !ok {
				continue
			}
			assigned[i] = &spec
			pl.lastStrategyPerPlayer[i] = idx
		}
	case CoopStrategy:
		result := st.TrySelectCoop(w, assigned)
		for i := range w.Players {
			if locked[i] || i >= len(result) || result[i] == nil {
				continue
			}
			if assigned[i] != nil && !allowOverride {
				continue
			}
			assigned[i] = result[i]
			pl.lastStrategyPerPlayer[i] = idx
		}
	}
}

func (pl *Planner) applyToPlayer(w *world.State, assigned []*model.GoalSpec, playerIndex, idx int, s Strategy) {
	switch st := s.(type) {
	case IndividualStrategy:
		spec, ok := st.TrySelect(w, playerIndex)
		if !ok {
			return
		}
		assigned[playerIndex] = &spec
		pl.lastStrategyPerPlayer[playerIndex] = idx
	case CoopStrategy:
		result := st.TrySelectCoop(w, assigned)
		if playerIndex >= len(result) || result[playerIndex] == nil {
			return
		}
		assigned[playerIndex] = result[playerIndex]
		pl.lastStrategyPerPlayer[playerIndex] = idx
	}
}

func allAssigned(assigned []*model.GoalSpec) bool {
	for _, a := range assigned {
		if a == nil {
			return false
		}
	}
	return true
}

// detectOscillation sets ForceRandomExploreTicks for any player whose
// position has returned to where it was two ticks ago after moving away
// one tick ago — the back-and-forth signature of a planner deadlock.
func (pl *Planner) detectOscillation(w *world.State) {
	for i, p := range w.Players {
		hist := pl.positionHistory[i]
		if hist != ([2]model.Position{}) && p.Position == hist[0] && hist[1] != p.Position {
			if p.ForceRandomExploreTicks <= 0 {
				p.ForceRandomExploreTicks = forcedExploreDuration
			}
		}
	}
}

func (pl *Planner) recordPositions(w *world.State) {
	for i, p := range w.Players {
		pl.positionHistory[i] = [2]model.Position{pl.positionHistory[i][1], p.Position}
	}
}

func closestPosition(from model.Position, positions []model.Position) (model.Position, bool) {
	if len(positions) == 0 {
		return model.Position{}, false
	}
	best := positions[0]
	bestDist := from.Distance(best)
	for _, pos := range positions[1:] {
		if d := from.Distance(pos); d < bestDist {
			best, bestDist = pos, d
		}
	}
	return best, true
}

// findRandomReachablePosition picks a random Empty cell more than 5 cells
// away from p and verifies a path exists, retrying up to 10 times. The
// seed is derived from the tick and player index rather than wall-clock
// time, keeping a run reproducible given the same server seed.
func findRandomReachablePosition(w *world.State, p *player.State, playerIndex int) (model.Position, bool) {
	var candidates []model.Position
	w.Map.Iter(func(pos model.Position, t model.Tile) {
		if t == model.Empty && p.Position.Distance(pos) > 5 {
			candidates = append(candidates, pos)
		}
	})
	if len(candidates) == 0 {
		return model.Position{}, false
	}

	seed := uint64(w.Tick)*1000 + uint64(playerIndex)*31 + 1
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for attempt := 0; attempt < 10; attempt++ {
		candidate := candidates[rng.IntN(len(candidates))]
		if w.FindPathForPlayer(playerIndex, p.Position, candidate) != nil {
			return candidate, true
		}
	}
	return model.Position{}, false
}
