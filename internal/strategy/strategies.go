package strategy

import (
	"math"

	"github.com/rcaelers/swoqbot/internal/model"
	"github.com/rcaelers/swoqbot/internal/world"
)

// attackOrFleeEnemy is grounded on
// original_source/src/strategies/attack_or_flee_enemy.rs.
type attackOrFleeEnemy struct{}

func (attackOrFleeEnemy) Name() string             { return "AttackOrFleeEnemy" }
func (attackOrFleeEnemy) IsEmergency() bool         { return true }
func (attackOrFleeEnemy) Prioritize(*world.State) bool { return true }

func (attackOrFleeEnemy) TrySelect(w *world.State, i int) (model.GoalSpec, bool) {
	if w.Level < 8 {
		return model.GoalSpec{}, false
	}
	p := w.Players[i]
	if !p.IsActive {
		return model.GoalSpec{}, false
	}
	enemy, ok := w.ClosestEnemy(p)
	if !ok {
		return model.GoalSpec{}, false
	}
	dist := w.PathDistanceToEnemy(p.Position, enemy)
	if dist <= 2 && p.HasSword {
		return model.GoalSpec{Type: model.GoalKillEnemy, Target: enemy, HasTarget: true}, true
	}
	if dist <= 3 && !p.HasSword {
		return model.GoalSpec{Type: model.GoalAvoidEnemy, Target: enemy, HasTarget: true}, true
	}
	return model.GoalSpec{}, false
}

// pickupHealth is grounded on
// original_source/src/strategies/pickup_health.rs.
type pickupHealth struct{}

func (pickupHealth) Name() string             { return "PickupHealth" }
func (pickupHealth) IsEmergency() bool         { return false }
func (pickupHealth) Prioritize(*world.State) bool { return true }

func (pickupHealth) TrySelect(w *world.State, i int) (model.GoalSpec, bool) {
	if w.Level < 10 || w.Health.IsEmpty() {
		return model.GoalSpec{}, false
	}
	best, pos, found := bestHealthCandidate(w)
	if !found || best != i {
		return model.GoalSpec{}, false
	}
	return model.GoalSpec{Type: model.GoalPickupHealth, Target: pos, HasTarget: true}, true
}

func bestHealthCandidate(w *world.State) (idx int, pos model.Position, found bool) {
	bestHealth := math.MaxInt
	bestDist := math.MaxInt
	for i, p := range w.Players {
		if !p.IsActive {
			continue
		}
		if enemy, ok := w.ClosestEnemy(p); ok && w.PathDistanceToEnemy(p.Position, enemy) <= 2 {
			continue
		}
		target, ok := w.Health.ClosestTo(p.Position)
		if !ok {
			continue
		}
		d, ok := w.PathDistance(p.Position, target)
		if !ok {
			continue
		}
		if p.Health < bestHealth || (p.Health == bestHealth && d < bestDist) {
			bestHealth, bestDist, idx, pos, found = p.Health, d, i, target, true
		}
	}
	return idx, pos, found
}

// pickupSword is grounded on
// original_source/src/strategies/pickup_sword.rs.
type pickupSword struct{}

func (pickupSword) Name() string             { return "PickupSword" }
func (pickupSword) IsEmergency() bool         { return false }
func (pickupSword) Prioritize(*world.State) bool { return true }

func (pickupSword) TrySelect(w *world.State, i int) (model.GoalSpec, bool) {
	if w.Level < 10 || w.Swords.IsEmpty() {
		return model.GoalSpec{}, false
	}
	best, found := bestSwordCandidate(w)
	if !found || best != i {
		return model.GoalSpec{}, false
	}
	return model.GoalSpec{Type: model.GoalPickupSword}, true
}

func bestSwordCandidate(w *world.State) (idx int, found bool) {
	bestDist := math.MaxInt
	idx = -1
	for i, p := range w.Players {
		if !p.IsActive || p.HasSword {
			continue
		}
		target, ok := w.ClosestSword(p)
		if !ok {
			continue
		}
		d, ok := w.PathDistance(p.Position, target)
		if !ok {
			continue
		}
		if d < bestDist {
			bestDist, idx = d, i
		}
	}
	return idx, idx >= 0
}

// reachExit is grounded on original_source/src/strategies/reach_exit.rs.
// It is Coop rather than Individual because, in two-player games, whether
// any player is assigned ReachExit depends on every active player's
// reachability, not just the one being considered.
type reachExit struct{}

func (reachExit) Name() string             { return "ReachExit" }
func (reachExit) IsEmergency() bool         { return false }
func (reachExit) Prioritize(*world.State) bool { return true }

func (reachExit) TrySelectCoop(w *world.State, _ []*model.GoalSpec) []*model.GoalSpec {
	out := make([]*model.GoalSpec, len(w.Players))
	if !w.HasExit {
		return out
	}
	if w.IsTwoPlayerMode() {
		for _, p := range w.ActivePlayers() {
			if p.Inventory == model.InventoryBoulder {
				continue
			}
			if _, ok := w.PathDistance(p.Position, w.ExitPosition); !ok {
				return out
			}
		}
	}
	for i, p := range w.Players {
		if !p.IsActive {
			continue
		}
		if p.Inventory == model.InventoryBoulder {
			spec := model.GoalSpec{Type: model.GoalDropBoulder}
			out[i] = &spec
			continue
		}
		if _, ok := w.PathDistance(p.Position, w.ExitPosition); !ok {
			continue
		}
		spec := model.GoalSpec{Type: model.GoalReachExit}
		out[i] = &spec
	}
	return out
}

// boulderOnPlate is grounded on
// original_source/src/strategies/drop_boulder_on_plate.rs (struct
// DropBoulderOnPlateStrategy there; named BoulderOnPlate per spec.md
// §4.7 item 5 — see this package's doc comment).
type boulderOnPlate struct{}

func (boulderOnPlate) Name() string             { return "BoulderOnPlate" }
func (boulderOnPlate) IsEmergency() bool         { return false }
func (boulderOnPlate) Prioritize(*world.State) bool { return true }

func (boulderOnPlate) TrySelect(w *world.State, i int) (model.GoalSpec, bool) {
	idx, plate, color, found := bestBoulderOnPlateCandidate(w)
	if !found || idx != i {
		return model.GoalSpec{}, false
	}
	return model.GoalSpec{Type: model.GoalDropBoulderOnPlate, Color: color, HasColor: true, Target: plate, HasTarget: true}, true
}

func bestBoulderOnPlateCandidate(w *world.State) (idx int, plate model.Position, color model.Color, found bool) {
	bestDist := math.MaxInt
	for i, p := range w.Players {
		if !p.IsActive || p.Inventory != model.InventoryBoulder {
			continue
		}
		for _, c := range w.Plates.Colors() {
			if len(w.Doors.GetPositions(c)) == 0 {
				continue
			}
			for _, plt := range w.Plates.GetPositions(c) {
				d, ok := w.PathDistance(p.Position, plt)
				if !ok {
					continue
				}
				if d < bestDist {
					bestDist, idx, plate, color, found = d, i, plt, c, true
				}
			}
		}
	}
	return idx, plate, color, found
}

// cooperativeDoorPassage has no source file in the retrieval pack
// (strategies/mod.rs references cooperative_door_passage.rs, which was
// not retrieved); authored from spec.md §4.7 item 6. It assigns
// PassThroughDoor to any active player whose partner is standing on a
// plate of a door's color, targeting the neighbour of the nearest such
// door that lies farthest from the player.
type cooperativeDoorPassage struct{}

func (cooperativeDoorPassage) Name() string             { return "CooperativeDoorPassage" }
func (cooperativeDoorPassage) IsEmergency() bool         { return false }
func (cooperativeDoorPassage) Prioritize(*world.State) bool { return true }

func (cooperativeDoorPassage) TrySelectCoop(w *world.State, _ []*model.GoalSpec) []*model.GoalSpec {
	out := make([]*model.GoalSpec, len(w.Players))
	if !w.IsTwoPlayerMode() {
		return out
	}
	for _, c := range w.Doors.Colors() {
		doors := w.Doors.GetPositions(c)
		plates := w.Plates.GetPositions(c)
		if len(doors) == 0 || len(plates) == 0 {
			continue
		}
		for i, p := range w.Players {
			if !p.IsActive || out[i] != nil {
				continue
			}
			partner := w.Players[1-i]
			onPlate := false
			for _, plt := range plates {
				if partner.Position == plt {
					onPlate = true
					break
				}
			}
			if !onPlate {
				continue
			}
			door, ok := closestPosition(p.Position, doors)
			if !ok {
				continue
			}
			beyond, ok := farthestNeighbor(w, p.Position, door)
			if !ok {
				continue
			}
			spec := model.GoalSpec{Type: model.GoalPassThroughDoor, Color: c, HasColor: true, Door: door, HasDoor: true, Target: beyond, HasTarget: true}
			out[i] = &spec
		}
	}
	return out
}

func farthestNeighbor(w *world.State, from, around model.Position) (model.Position, bool) {
	var best model.Position
	bestDist := -1
	for _, n := range around.Neighbors() {
		if !w.Map.InBounds(n) {
			continue
		}
		if d := from.Distance(n); d > bestDist {
			bestDist, best = d, n
		}
	}
	return best, bestDist >= 0
}

// usePressurePlateForDoor has no source file in the retrieval pack
// (strategies/mod.rs references use_pressure_plate_for_door.rs, which was
// not retrieved); authored from spec.md §4.7 item 7. It assigns
// WaitOnTile to the player who should hold a plate down so the partner,
// stuck at the matching door without a key, can cross.
type usePressurePlateForDoor struct{}

func (usePressurePlateForDoor) Name() string             { return "UsePressurePlateForDoor" }
func (usePressurePlateForDoor) IsEmergency() bool         { return false }
func (usePressurePlateForDoor) Prioritize(*world.State) bool { return true }

func (usePressurePlateForDoor) TrySelect(w *world.State, i int) (model.GoalSpec, bool) {
	if !w.IsTwoPlayerMode() {
		return model.GoalSpec{}, false
	}
	p := w.Players[i]
	if !p.IsActive {
		return model.GoalSpec{}, false
	}
	partner := w.Players[1-i]
	if !partner.IsActive {
		return model.GoalSpec{}, false
	}
	for _, c := range w.Doors.Colors() {
		doors := w.Doors.GetPositions(c)
		plates := w.Plates.GetPositions(c)
		if len(doors) == 0 || len(plates) == 0 {
			continue
		}
		if world.HasKey(partner, c) {
			continue
		}
		door, ok := closestPosition(partner.Position, doors)
		if !ok || partner.Position.Distance(door) > 6 {
			continue
		}
		plate, ok := closestPosition(p.Position, plates)
		if !ok {
			continue
		}
		return model.GoalSpec{Type: model.GoalWaitOnTile, Color: c, HasColor: true, Target: plate, HasTarget: true}, true
	}
	return model.GoalSpec{}, false
}

// keyDoorPhase is a per-colour assignment's progress: fetch the key, then
// use it on the door.
type keyDoorPhase int

const (
	phaseFetchKey keyDoorPhase = iota
	phaseOpenDoor
)

type keyAndDoorAssignment struct {
	playerIndex int
	phase       keyDoorPhase
}

// keyAndDoor is grounded on original_source/src/strategies/key_and_door.rs,
// the stateful colour->assignment design (rather than the separate
// get_key_for_door.rs/open_door_with_key.rs pair, an earlier variant also
// present in the pack but superseded by key_and_door.rs's single
// FetchKey->OpenDoor phase machine).
type keyAndDoor struct {
	assignments map[model.Color]keyAndDoorAssignment
}

func newKeyAndDoor() *keyAndDoor {
	return &keyAndDoor{assignments: make(map[model.Color]keyAndDoorAssignment)}
}

func (*keyAndDoor) Name() string             { return "KeyAndDoor" }
func (*keyAndDoor) IsEmergency() bool         { return false }
func (*keyAndDoor) Prioritize(*world.State) bool { return true }

func (s *keyAndDoor) TrySelectCoop(w *world.State, assigned []*model.GoalSpec) []*model.GoalSpec {
	out := make([]*model.GoalSpec, len(w.Players))

	for c, a := range s.assignments {
		if a.playerIndex >= len(w.Players) || !w.Players[a.playerIndex].IsActive || w.HasDoorBeenOpened(c) {
			delete(s.assignments, c)
			continue
		}
		p := w.Players[a.playerIndex]
		if a.phase == phaseFetchKey && world.HasKey(p, c) {
			a.phase = phaseOpenDoor
			s.assignments[c] = a
		}
		if a.phase == phaseFetchKey {
			if _, ok := w.ClosestKey(p, c); !ok {
				delete(s.assignments, c)
				continue
			}
			out[a.playerIndex] = &model.GoalSpec{Type: model.GoalGetKey, Color: c, HasColor: true}
		} else {
			if len(w.Doors.GetPositions(c)) == 0 {
				delete(s.assignments, c)
				continue
			}
			out[a.playerIndex] = &model.GoalSpec{Type: model.GoalOpenDoor, Color: c, HasColor: true}
		}
	}

	for _, c := range w.Doors.Colors() {
		if len(w.Doors.GetPositions(c)) == 0 || w.HasDoorBeenOpened(c) {
			continue
		}
		if _, exists := s.assignments[c]; exists {
			continue
		}
		best, found := bestKeyAndDoorCandidate(w, assigned, out, c)
		if !found {
			continue
		}
		phase := phaseFetchKey
		if world.HasKey(w.Players[best], c) {
			phase = phaseOpenDoor
		}
		s.assignments[c] = keyAndDoorAssignment{playerIndex: best, phase: phase}
		if phase == phaseFetchKey {
			out[best] = &model.GoalSpec{Type: model.GoalGetKey, Color: c, HasColor: true}
		} else {
			out[best] = &model.GoalSpec{Type: model.GoalOpenDoor, Color: c, HasColor: true}
		}
	}
	return out
}

func bestKeyAndDoorCandidate(w *world.State, assigned, out []*model.GoalSpec, c model.Color) (int, bool) {
	best := -1
	bestDist := math.MaxInt
	for i, p := range w.Players {
		if !p.IsActive || assigned[i] != nil || out[i] != nil {
			continue
		}
		target, ok := w.ClosestKey(p, c)
		if !ok {
			continue
		}
		d, ok := w.PathDistance(p.Position, target)
		if !ok {
			continue
		}
		if d < bestDist {
			bestDist, best = d, i
		}
	}
	return best, best >= 0
}

// moveUnexploredBoulder is grounded on
// original_source/src/strategies/move_unexplored_boulder.rs.
type moveUnexploredBoulder struct{}

func (moveUnexploredBoulder) Name() string             { return "MoveUnexploredBoulder" }
func (moveUnexploredBoulder) IsEmergency() bool         { return false }
func (moveUnexploredBoulder) Prioritize(*world.State) bool { return true }

func (moveUnexploredBoulder) TrySelect(w *world.State, i int) (model.GoalSpec, bool) {
	if w.Level < 6 {
		return model.GoalSpec{}, false
	}
	p := w.Players[i]
	if !p.IsActive || p.Inventory == model.InventoryBoulder {
		return model.GoalSpec{}, false
	}
	unmoved := w.Boulders.OriginalPositions()
	if len(unmoved) == 0 {
		return model.GoalSpec{}, false
	}
	target, ok := closestPosition(p.Position, unmoved)
	if !ok {
		return model.GoalSpec{}, false
	}
	return model.GoalSpec{Type: model.GoalFetchBoulder, Target: target, HasTarget: true}, true
}

// fallbackPressurePlate is grounded on
// original_source/src/strategies/fallback_pressure_plate.rs.
type fallbackPressurePlate struct{}

func (fallbackPressurePlate) Name() string             { return "FallbackPressurePlate" }
func (fallbackPressurePlate) IsEmergency() bool         { return false }
func (fallbackPressurePlate) Prioritize(*world.State) bool { return true }

func (fallbackPressurePlate) TrySelect(w *world.State, i int) (model.GoalSpec, bool) {
	p := w.Players[i]
	if !p.IsActive || len(p.UnexploredFrontier) != 0 {
		return model.GoalSpec{}, false
	}
	for _, c := range w.Plates.Colors() {
		doors := w.Doors.GetPositions(c)
		if len(doors) == 0 {
			continue
		}
		for _, plt := range w.Plates.GetPositions(c) {
			for _, d := range doors {
				if plt.Distance(d) <= 4 {
					return model.GoalSpec{Type: model.GoalWaitOnTile, Color: c, HasColor: true, Target: plt, HasTarget: true}, true
				}
			}
		}
	}
	return model.GoalSpec{}, false
}

// huntEnemyWithSword is grounded on
// original_source/src/strategies/hunt_enemy_with_sword.rs.
type huntEnemyWithSword struct{}

func (huntEnemyWithSword) Name() string             { return "HuntEnemyWithSword" }
func (huntEnemyWithSword) IsEmergency() bool         { return false }
func (huntEnemyWithSword) Prioritize(*world.State) bool { return true }

func (huntEnemyWithSword) TrySelect(w *world.State, i int) (model.GoalSpec, bool) {
	p := w.Players[i]
	if !p.IsActive || !p.HasSword || len(p.UnexploredFrontier) != 0 {
		return model.GoalSpec{}, false
	}
	if enemy, ok := w.ClosestEnemy(p); ok {
		return model.GoalSpec{Type: model.GoalKillEnemy, Target: enemy, HasTarget: true}, true
	}
	if enemy, ok := w.ClosestPotentialEnemy(p); ok {
		return model.GoalSpec{Type: model.GoalKillEnemy, Target: enemy, HasTarget: true}, true
	}
	return model.GoalSpec{}, false
}

// randomExploreStrategy is grounded on
// original_source/src/strategies/random_explore.rs.
type randomExploreStrategy struct{}

func (randomExploreStrategy) Name() string             { return "RandomExplore" }
func (randomExploreStrategy) IsEmergency() bool         { return false }
func (randomExploreStrategy) Prioritize(*world.State) bool { return true }

func (randomExploreStrategy) TrySelect(w *world.State, i int) (model.GoalSpec, bool) {
	p := w.Players[i]
	if !p.IsActive || len(p.UnexploredFrontier) != 0 {
		return model.GoalSpec{}, false
	}
	target, ok := findRandomReachablePosition(w, p, i)
	if !ok {
		return model.GoalSpec{}, false
	}
	return model.GoalSpec{Type: model.GoalRandomExplore, Target: target, HasTarget: true}, true
}
