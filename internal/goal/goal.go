// Package goal implements the fixed catalogue of parameterised goals: each
// one turns a world state and a player index into a single action for that
// player, or reports that it currently has nothing actionable to do.
//
// Grounded on original_source/src/goals/*.rs, one file per goal. Two goal
// types referenced by strategies/mod.rs — PassThroughDoor's exact shape —
// were not present in the retrieved pack; PassThroughDoor is authored
// directly from spec.md §4.6's one-line description instead. The shared
// helpers (path caching, Use-direction derivation) have no single source
// file either: every goal file calls them, but their own definitions were
// never retrieved, so they are authored from the calling contract visible
// across all of the goal files plus spec.md §4.6 and §9.
package goal

import (
	"github.com/rcaelers/swoqbot/internal/model"
	"github.com/rcaelers/swoqbot/internal/player"
	"github.com/rcaelers/swoqbot/internal/world"
)

// Execute dispatches spec to its concrete goal logic for the player at
// playerIndex. It first clears any cached destination if the goal changed
// since last tick, matching the Rust dispatcher's clear_path_on_goal_change
// call ahead of its match.
func Execute(w *world.State, playerIndex int, spec model.GoalSpec) (model.Action, bool) {
	p := w.Players[playerIndex]
	if p.GoalChanged() {
		p.ClearDestination()
	}

	switch spec.Type {
	case model.GoalExplore:
		return executeExplore(w, playerIndex, p)
	case model.GoalGetKey:
		return executeGetKey(w, playerIndex, p, spec.Color)
	case model.GoalOpenDoor:
		return executeOpenDoor(w, playerIndex, p, spec.Color)
	case model.GoalWaitOnTile:
		return executeWaitOnTile(w, playerIndex, p, spec.Target)
	case model.GoalPassThroughDoor:
		return executePassThroughDoor(w, playerIndex, p, spec.Color, spec.Target)
	case model.GoalPickupSword:
		return executePickupSword(w, playerIndex, p)
	case model.GoalPickupHealth:
		return executePickupHealth(w, playerIndex, p, spec.Target)
	case model.GoalAvoidEnemy:
		return executeAvoidEnemy(w, p, spec.Target)
	case model.GoalKillEnemy:
		return executeKillEnemy(w, playerIndex, p, spec.Target)
	case model.GoalFetchBoulder:
		return executeFetchBoulder(w, playerIndex, p, spec.Target)
	case model.GoalDropBoulder:
		return executeDropBoulder(w, p)
	case model.GoalDropBoulderOnPlate:
		return executeDropBoulderOnPlate(w, playerIndex, p, spec.Target)
	case model.GoalReachExit:
		return executeReachExit(w, playerIndex, p)
	case model.GoalRandomExplore:
		return executeRandomExplore(w, playerIndex, p, spec.Target)
	default:
		return model.ActionNone, false
	}
}

// moveAlongPath converts the next step of a player's cached path into a
// move action, trimming the consumed step off the front of the cache.
func moveAlongPath(p *player.State) (model.Action, bool) {
	if len(p.CurrentPath) < 2 {
		return model.ActionNone, false
	}
	action, ok := model.MoveTowards(p.Position, p.CurrentPath[1])
	if !ok {
		return model.ActionNone, false
	}
	p.CurrentPath = p.CurrentPath[1:]
	return action, true
}

// useAdjacent derives the Use<Direction> action pointing from p towards an
// adjacent target cell.
func useAdjacent(p *player.State, target model.Position) (model.Action, bool) {
	return model.UseTowards(p.Position, target)
}

// validateDestination reports whether p's cached destination still matches
// dest and every remaining cell of its cached path is still walkable
// towards it.
func validateDestination(w *world.State, p *player.State, dest model.Position) bool {
	if !p.HasDestination || p.CurrentDestination != dest {
		return false
	}
	if len(p.CurrentPath) == 0 {
		return false
	}
	for _, step := range p.CurrentPath {
		if !w.IsWalkable(step, dest) {
			return false
		}
	}
	return true
}

// advanceTowards reuses a still-valid cached path to dest, or calls
// findPath to compute a fresh one and caches it, then converts the next
// step into a move. Returns false if no path exists.
func advanceTowards(w *world.State, p *player.State, dest model.Position, findPath func() []model.Position) (model.Action, bool) {
	if !validateDestination(w, p, dest) {
		path := findPath()
		if path == nil {
			p.ClearDestination()
			return model.ActionNone, false
		}
		p.SetDestination(dest, path)
	}
	return moveAlongPath(p)
}

// closestWalkableNeighbor finds, among the 4-neighbours of every position
// in targets, the one with the shortest path from p's position, returning
// the target it borders and that neighbour cell. Used by goals that act on
// a tile from adjacency rather than by stepping onto it (doors, enemies,
// boulders).
func closestWalkableNeighbor(w *world.State, playerIndex int, p *player.State, targets []model.Position) (target, neighbor model.Position, ok bool) {
	bestLen := -1
	for _, t := range targets {
		for _, n := range t.Neighbors() {
			if !w.Map.InBounds(n) || (n != p.Position && w.Map.TileAt(n) != model.Empty) {
				continue
			}
			path := w.FindPathForPlayer(playerIndex, p.Position, n)
			if path == nil {
				continue
			}
			if bestLen == -1 || len(path) < bestLen {
				bestLen = len(path)
				target, neighbor, ok = t, n, true
			}
		}
	}
	return target, neighbor, ok
}

func executeExplore(w *world.State, playerIndex int, p *player.State) (model.Action, bool) {
	if p.HasDestination && validateDestination(w, p, p.CurrentDestination) {
		return moveAlongPath(p)
	}
	for _, candidate := range p.SortedUnexplored() {
		path := w.FindPathForPlayer(playerIndex, p.Position, candidate)
		if path == nil {
			continue
		}
		p.SetDestination(candidate, path)
		return moveAlongPath(p)
	}
	p.ClearDestination()
	return model.ActionNone, false
}

func executeGetKey(w *world.State, playerIndex int, p *player.State, color model.Color) (model.Action, bool) {
	target, ok := w.ClosestKey(p, color)
	if !ok {
		return model.ActionNone, false
	}
	if p.Position.IsAdjacent(target) {
		return useAdjacent(p, target)
	}
	return advanceTowards(w, p, target, func() []model.Position {
		return w.FindPathForPlayer(playerIndex, p.Position, target)
	})
}

func executeOpenDoor(w *world.State, playerIndex int, p *player.State, color model.Color) (model.Action, bool) {
	if !world.HasKey(p, color) {
		return model.ActionNone, false
	}
	doorPositions := w.Doors.GetPositions(color)
	if len(doorPositions) == 0 {
		return model.ActionNone, false
	}
	doorPos, neighbor, ok := closestWalkableNeighbor(w, playerIndex, p, doorPositions)
	if !ok {
		return model.ActionNone, false
	}
	if p.Position.IsAdjacent(doorPos) {
		return useAdjacent(p, doorPos)
	}
	return advanceTowards(w, p, neighbor, func() []model.Position {
		return w.FindPathForPlayer(playerIndex, p.Position, neighbor)
	})
}

func executeWaitOnTile(w *world.State, playerIndex int, p *player.State, target model.Position) (model.Action, bool) {
	if p.Position == target {
		return model.ActionNone, true
	}
	return advanceTowards(w, p, target, func() []model.Position {
		return w.FindPathForPlayer(playerIndex, p.Position, target)
	})
}

// executePassThroughDoor paths to target, treating a door of color as
// walkable even before the key is fetched or the plate is pressed — the
// planner only assigns this goal once the door is known to already be
// passable (opened, keyed, or held by a partner on its plate).
func executePassThroughDoor(w *world.State, playerIndex int, p *player.State, color model.Color, target model.Position) (model.Action, bool) {
	return advanceTowards(w, p, target, func() []model.Position {
		if path := w.FindPathTreatingDoorWalkable(p.Position, target, color); path != nil {
			return path
		}
		return w.FindPathForPlayer(playerIndex, p.Position, target)
	})
}

func executePickupSword(w *world.State, playerIndex int, p *player.State) (model.Action, bool) {
	target, ok := w.ClosestSword(p)
	if !ok {
		return model.ActionNone, false
	}
	return advanceTowards(w, p, target, func() []model.Position {
		return w.FindPathForPlayer(playerIndex, p.Position, target)
	})
}

func executePickupHealth(w *world.State, playerIndex int, p *player.State, target model.Position) (model.Action, bool) {
	return advanceTowards(w, p, target, func() []model.Position {
		return w.FindPathForPlayer(playerIndex, p.Position, target)
	})
}

// executeAvoidEnemy steps to whichever walkable neighbour increases
// distance from enemy the most; if none do, it holds position.
func executeAvoidEnemy(w *world.State, p *player.State, enemy model.Position) (model.Action, bool) {
	currentDist := p.Position.Distance(enemy)
	bestDist := currentDist
	var bestNeighbor model.Position
	found := false

	for _, n := range p.Position.Neighbors() {
		if !w.Map.InBounds(n) || w.Map.TileAt(n) != model.Empty {
			continue
		}
		if d := n.Distance(enemy); d > bestDist {
			bestDist, bestNeighbor, found = d, n, true
		}
	}
	if !found {
		return model.ActionNone, true
	}
	action, ok := model.MoveTowards(p.Position, bestNeighbor)
	if !ok {
		return model.ActionNone, true
	}
	return action, true
}

func executeKillEnemy(w *world.State, playerIndex int, p *player.State, enemy model.Position) (model.Action, bool) {
	if p.Position.IsAdjacent(enemy) {
		return useAdjacent(p, enemy)
	}
	_, neighbor, ok := closestWalkableNeighbor(w, playerIndex, p, []model.Position{enemy})
	if !ok {
		return model.ActionNone, false
	}
	return advanceTowards(w, p, neighbor, func() []model.Position {
		return w.FindPathForPlayer(playerIndex, p.Position, neighbor)
	})
}

func executeFetchBoulder(w *world.State, playerIndex int, p *player.State, boulder model.Position) (model.Action, bool) {
	if p.Position.IsAdjacent(boulder) {
		return useAdjacent(p, boulder)
	}
	_, neighbor, ok := closestWalkableNeighbor(w, playerIndex, p, []model.Position{boulder})
	if !ok {
		return model.ActionNone, false
	}
	return advanceTowards(w, p, neighbor, func() []model.Position {
		return w.FindPathForPlayer(playerIndex, p.Position, neighbor)
	})
}

func executeDropBoulder(w *world.State, p *player.State) (model.Action, bool) {
	for _, n := range p.Position.Neighbors() {
		if w.Map.InBounds(n) && w.Map.TileAt(n) == model.Empty {
			return useAdjacent(p, n)
		}
	}
	for _, n := range p.Position.Neighbors() {
		if !w.Map.InBounds(n) || w.Map.TileAt(n) != model.Empty {
			continue
		}
		if action, ok := model.MoveTowards(p.Position, n); ok {
			return action, true
		}
	}
	return model.ActionNone, true
}

func executeDropBoulderOnPlate(w *world.State, playerIndex int, p *player.State, plate model.Position) (model.Action, bool) {
	if p.Position.IsAdjacent(plate) {
		return useAdjacent(p, plate)
	}
	return advanceTowards(w, p, plate, func() []model.Position {
		return w.FindPathForPlayer(playerIndex, p.Position, plate)
	})
}

func executeReachExit(w *world.State, playerIndex int, p *player.State) (model.Action, bool) {
	if !w.HasExit {
		return model.ActionNone, false
	}
	return advanceTowards(w, p, w.ExitPosition, func() []model.Position {
		return w.FindPathForPlayer(playerIndex, p.Position, w.ExitPosition)
	})
}

func executeRandomExplore(w *world.State, playerIndex int, p *player.State, target model.Position) (model.Action, bool) {
	return advanceTowards(w, p, target, func() []model.Position {
		return w.FindPathForPlayer(playerIndex, p.Position, target)
	})
}
