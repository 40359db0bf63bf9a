// Package world implements the aggregate world model: the partial map,
// every item tracker, and the per-player planning state, ingested fresh
// each tick and queried by the goal and strategy packages.
//
// Grounded on turnforge-weewar's lib/game.go (central aggregate owning a
// tile store plus actor list, with an Update-style ingest entrypoint) and
// original_source/src/game.rs's tick loop for the order of operations
// inside Update. The exact field/tracker layout follows spec.md §3-§4;
// world_state.rs itself was not part of the retrieval pack, so Update's
// internals are authored directly from spec.md §4.4-§4.5.
package world

import (
	"math"

	"github.com/rcaelers/swoqbot/internal/model"
	"github.com/rcaelers/swoqbot/internal/pathfind"
	"github.com/rcaelers/swoqbot/internal/player"
	"github.com/rcaelers/swoqbot/internal/tracker"
	"github.com/rcaelers/swoqbot/internal/worldmap"
)

// PlayerObservation is one player's slice of a single tick's server
// state: its own fields plus the visibility window around it. Tiles are
// listed row-major, y outermost, over a (2*visibilityRange+1)^2 grid
// centred on Position.
type PlayerObservation struct {
	Position     model.Position
	Health       int
	Inventory    model.Inventory
	HasSword     bool
	IsActive     bool
	Surroundings []model.Tile
}

// Observation is the ingest contract for one tick, translated by
// internal/transport from the wire message into domain types so this
// package never depends on the wire schema.
type Observation struct {
	Tick    int
	Level   int
	Players []PlayerObservation
}

// State is the full world model: one game's map, trackers and players,
// alive for as long as the current game runs.
type State struct {
	Map      *worldmap.Map
	Swords   *tracker.ItemTracker
	Health   *tracker.ItemTracker
	Enemies  *tracker.ItemTracker
	Keys     *tracker.ColoredItemTracker
	Doors    *tracker.ColoredItemTracker
	Plates   *tracker.ColoredItemTracker
	Boulders *tracker.BoulderTracker

	Players []*player.State

	ExitPosition model.Position
	HasExit      bool

	Level int
	Tick  int

	VisibilityRange int

	// PotentialEnemyLocations holds the last known position of an enemy
	// that has since left every player's visibility window. Distinct
	// from Enemies, which only holds currently-believed-valid sightings.
	PotentialEnemyLocations map[model.Position]struct{}

	openedDoors map[model.Color]bool
}

// New returns an empty world for a level of the given dimensions.
func New(width, height, visibilityRange int) *State {
	return &State{
		Map:                     worldmap.New(width, height),
		Swords:                  tracker.NewItemTracker(),
		Health:                  tracker.NewItemTracker(),
		Enemies:                 tracker.NewItemTracker(),
		Keys:                    tracker.NewColoredItemTracker(),
		Doors:                   tracker.NewColoredItemTracker(),
		Plates:                  tracker.NewColoredItemTracker(),
		Boulders:                tracker.NewBoulderTracker(),
		VisibilityRange:         visibilityRange,
		PotentialEnemyLocations: make(map[model.Position]struct{}),
		openedDoors:             make(map[model.Color]bool),
	}
}

// ResetForNewLevel clears the map and every tracker for a fresh level,
// but preserves the players slice (repositioned on the next Update) and
// the run-scoped Tick counter.
func (s *State) ResetForNewLevel() {
	width, height := s.Map.Width(), s.Map.Height()
	s.Map = worldmap.New(width, height)
	s.Swords = tracker.NewItemTracker()
	s.Health = tracker.NewItemTracker()
	s.Enemies = tracker.NewItemTracker()
	s.Keys = tracker.NewColoredItemTracker()
	s.Doors = tracker.NewColoredItemTracker()
	s.Plates = tracker.NewColoredItemTracker()
	s.Boulders = tracker.NewBoulderTracker()
	s.ExitPosition = model.Position{}
	s.HasExit = false
	s.PotentialEnemyLocations = make(map[model.Position]struct{})
	s.openedDoors = make(map[model.Color]bool)

	for _, p := range s.Players {
		p.ClearDestination()
		p.HasGoal = false
		p.HasPrevGoal = false
		p.ForceRandomExploreTicks = 0
		p.UnexploredFrontier = make(map[model.Position]struct{})
	}
}

// Update ingests one tick's observation: refreshes player fields, feeds
// every tracker from the visibility windows, writes observed tiles into
// the map, recomputes each player's frontier, and maintains the
// out-of-sight enemy and door-opened history. Step order follows
// spec.md §4.4, except the map write happens before the tracker updates
// rather than after: a tracker's "is the item still there" check reads
// the map, so the map must already reflect this tick's observation for
// that check to see current data, not last tick's.
func (s *State) Update(obs Observation) {
	s.Tick = obs.Tick
	s.Level = obs.Level

	if len(s.Players) != len(obs.Players) {
		s.Players = make([]*player.State, len(obs.Players))
		for i, po := range obs.Players {
			s.Players[i] = player.New(po.Position)
		}
	}

	for i, po := range obs.Players {
		ps := s.Players[i]
		ps.Position = po.Position
		ps.Health = po.Health
		ps.Inventory = po.Inventory
		ps.HasSword = po.HasSword
		ps.IsActive = po.IsActive
	}

	bounds := make([]model.Bounds, len(obs.Players))
	for i, po := range obs.Players {
		bounds[i] = model.VisibilityBounds(po.Position, s.VisibilityRange, s.Map.Width(), s.Map.Height())
	}

	seen := s.writeObservedTiles(obs, bounds)

	s.Swords.Update(seen.swords, s.Map, isStillPresent, bounds)
	s.Health.Update(seen.health, s.Map, isStillPresent, bounds)
	s.Enemies.Update(seen.enemies, s.Map, func(t model.Tile) bool { return t == model.Enemy }, bounds)

	s.recordOpenedDoors(bounds)
	s.Keys.Update(seen.keys, s.Map, isStillPresent, bounds)
	s.Doors.Update(seen.doors, s.Map, isStillPresent, bounds)
	s.Plates.UpdateWithPositions(seen.plates, s.Map, s.plateStillPresent, bounds)

	s.Boulders.Update(seen.boulders, s.Map, s.isAdjacentToAnyPlayer)

	s.recomputeFrontiers()
	s.updatePotentialEnemyLocations(bounds)
}

// isStillPresent is the generic validator shared by every simple and
// colored item tracker: once an item is picked up, opened, or released,
// its tile reads back as Empty regardless of the item's original kind
// or color, so a single coarse check suffices.
func isStillPresent(t model.Tile) bool {
	return t != model.Empty
}

func (s *State) plateStillPresent(t model.Tile, pos model.Position) bool {
	if t != model.Empty {
		return true
	}
	return s.isPlayerAt(pos)
}

func (s *State) isPlayerAt(pos model.Position) bool {
	for _, p := range s.Players {
		if p.Position == pos {
			return true
		}
	}
	return false
}

func (s *State) isAdjacentToAnyPlayer(pos model.Position) bool {
	for _, p := range s.Players {
		if p.Position.IsAdjacent(pos) {
			return true
		}
	}
	return false
}

type seenPositions struct {
	swords, health, enemies, boulders []model.Position
	keys, doors, plates               map[model.Color][]model.Position
}

// writeObservedTiles copies every player's visibility window into the
// map and collects the positions of each kind of item seen this tick.
func (s *State) writeObservedTiles(obs Observation, bounds []model.Bounds) seenPositions {
	seen := seenPositions{
		keys:   make(map[model.Color][]model.Position),
		doors:  make(map[model.Color][]model.Position),
		plates: make(map[model.Color][]model.Position),
	}

	side := 2*s.VisibilityRange + 1
	for _, po := range obs.Players {
		if len(po.Surroundings) != side*side {
			continue
		}
		idx := 0
		for dy := -s.VisibilityRange; dy <= s.VisibilityRange; dy++ {
			for dx := -s.VisibilityRange; dx <= s.VisibilityRange; dx++ {
				pos := model.NewPosition(po.Position.X+dx, po.Position.Y+dy)
				tile := po.Surroundings[idx]
				idx++

				if !pos.InBounds(s.Map.Width(), s.Map.Height()) {
					continue
				}
				s.Map.Set(pos, tile)

				switch tile {
				case model.Sword:
					seen.swords = append(seen.swords, pos)
				case model.Health:
					seen.health = append(seen.health, pos)
				case model.Enemy:
					seen.enemies = append(seen.enemies, pos)
				case model.Boulder:
					seen.boulders = append(seen.boulders, pos)
				case model.Exit:
					s.ExitPosition = pos
					s.HasExit = true
				case model.KeyRed:
					seen.keys[model.Red] = append(seen.keys[model.Red], pos)
				case model.KeyGreen:
					seen.keys[model.Green] = append(seen.keys[model.Green], pos)
				case model.KeyBlue:
					seen.keys[model.Blue] = append(seen.keys[model.Blue], pos)
				case model.DoorRed:
					seen.doors[model.Red] = append(seen.doors[model.Red], pos)
				case model.DoorGreen:
					seen.doors[model.Green] = append(seen.doors[model.Green], pos)
				case model.DoorBlue:
					seen.doors[model.Blue] = append(seen.doors[model.Blue], pos)
				case model.PlateRed:
					seen.plates[model.Red] = append(seen.plates[model.Red], pos)
				case model.PlateGreen:
					seen.plates[model.Green] = append(seen.plates[model.Green], pos)
				case model.PlateBlue:
					seen.plates[model.Blue] = append(seen.plates[model.Blue], pos)
				}
			}
		}
	}
	return seen
}

// recordOpenedDoors marks a color as opened the first time any tracked
// door of that color is observed to have become Empty. Must run before
// Doors.Update prunes the now-Empty position away.
func (s *State) recordOpenedDoors(bounds []model.Bounds) {
	for _, color := range model.Colors {
		for _, pos := range s.Doors.GetPositions(color) {
			if model.ContainsAny(bounds, pos) && s.Map.TileAt(pos) == model.Empty {
				s.openedDoors[color] = true
			}
		}
	}
}

func (s *State) recomputeFrontiers() {
	for _, p := range s.Players {
		p.UnexploredFrontier = s.Map.ComputeReachablePositions(p.Position, s.isWalkableForExploration)
	}
}

// isWalkableForExploration is the reachability-sweep predicate: unlike
// IsWalkable (used for A*), it admits Unknown cells too, since the
// frontier sweep must continue expanding through unexplored-but-open
// territory to discover how far current knowledge reaches (spec.md
// §4.1).
func (s *State) isWalkableForExploration(pos model.Position) bool {
	t := s.Map.TileAt(pos)
	return t == model.Empty || t == model.Unknown
}

func (s *State) updatePotentialEnemyLocations(bounds []model.Bounds) {
	for _, pos := range s.Enemies.Positions() {
		if !model.ContainsAny(bounds, pos) {
			s.PotentialEnemyLocations[pos] = struct{}{}
		}
	}
	for pos := range s.PotentialEnemyLocations {
		if model.ContainsAny(bounds, pos) && s.Map.TileAt(pos) == model.Empty {
			delete(s.PotentialEnemyLocations, pos)
		}
	}
}

// IsWalkable is the generic A* navigation predicate (spec.md §4.5): a
// cell is walkable if it is Empty, or if it is exactly the cell the
// search is trying to reach — admitting the goal's own tile (a door,
// plate, boulder, sword, health, key or exit) lets a path terminate on
// it without making that tile generally traversable.
func (s *State) IsWalkable(pos, goal model.Position) bool {
	if !s.Map.InBounds(pos) {
		return false
	}
	if pos == goal {
		return true
	}
	return s.Map.TileAt(pos) == model.Empty
}

// FindPath runs A* from start to goal using the generic walkability
// predicate.
func (s *State) FindPath(start, goal model.Position) []model.Position {
	return pathfind.FindPath(s.Map, start, goal, s.IsWalkable)
}

// FindPathForPlayer is FindPath with two-player collision avoidance: in
// two-player games, if the other player has a cached path, the search
// additionally rejects stepping onto a cell the other player's path
// occupies at the matching tick. Falls back to the plain path if the
// tick-aware search fails, since this is best-effort (spec.md §5).
func (s *State) FindPathForPlayer(playerIndex int, start, goal model.Position) []model.Position {
	if len(s.Players) < 2 {
		return s.FindPath(start, goal)
	}
	other := s.Players[1-playerIndex]
	if len(other.CurrentPath) == 0 {
		return s.FindPath(start, goal)
	}

	isWalkableAtTick := func(neighbor, g model.Position, tick int) bool {
		if !s.IsWalkable(neighbor, g) {
			return false
		}
		return tick >= len(other.CurrentPath) || other.CurrentPath[tick] != neighbor
	}

	if path := pathfind.FindPathWithTick(s.Map, start, goal, isWalkableAtTick); path != nil {
		return path
	}
	return s.FindPath(start, goal)
}

// FindPathTreatingDoorWalkable is the A* variant the PassThroughDoor
// goal uses: every door of color is treated as an intermediate walkable
// tile, whatever the key or plate state. It does not check itself that
// the door is passable; that is left to the caller.
func (s *State) FindPathTreatingDoorWalkable(start, goal model.Position, color model.Color) []model.Position {
	door := model.DoorForColor(color)
	pred := func(pos, g model.Position) bool {
		if s.Map.TileAt(pos) == door {
			return true
		}
		return s.IsWalkable(pos, g)
	}
	return pathfind.FindPath(s.Map, start, goal, pred)
}

// PathDistance returns the A* path length in edges (moves, not cells)
// from from to to, and false if unreachable.
func (s *State) PathDistance(from, to model.Position) (int, bool) {
	path := s.FindPath(from, to)
	if path == nil {
		return 0, false
	}
	return len(path) - 1, true
}

// PathDistanceToEnemy returns the path-distance to an enemy, or a large
// sentinel if no path exists — treated as "far away" by every strategy
// threshold that consults it.
func (s *State) PathDistanceToEnemy(from, enemyPos model.Position) int {
	if d, ok := s.PathDistance(from, enemyPos); ok {
		return d
	}
	return math.MaxInt32 / 2
}

// ClosestKey returns the closest known key of color reachable-or-not to
// player's position.
func (s *State) ClosestKey(p *player.State, color model.Color) (model.Position, bool) {
	return s.Keys.ClosestTo(color, p.Position)
}

// ClosestSword returns the closest known sword to player's position.
func (s *State) ClosestSword(p *player.State) (model.Position, bool) {
	return s.Swords.ClosestTo(p.Position)
}

// ClosestEnemy returns the closest currently-believed enemy position.
func (s *State) ClosestEnemy(p *player.State) (model.Position, bool) {
	return s.Enemies.ClosestTo(p.Position)
}

// ClosestPotentialEnemy returns the closest last-known enemy location
// among positions that have since left view.
func (s *State) ClosestPotentialEnemy(p *player.State) (model.Position, bool) {
	var best model.Position
	found := false
	bestDist := 0
	for pos := range s.PotentialEnemyLocations {
		d := p.Position.Distance(pos)
		if !found || d < bestDist {
			best, bestDist, found = pos, d, true
		}
	}
	return best, found
}

// HasKey reports whether p's inventory is the key for color.
func HasKey(p *player.State, color model.Color) bool {
	c, ok := p.Inventory.IsKey()
	return ok && c == color
}

// DoorsWithoutKeys returns every color with at least one known door
// that p does not currently hold the key for.
func (s *State) DoorsWithoutKeys(p *player.State) []model.Color {
	var colors []model.Color
	for _, c := range model.Colors {
		if len(s.Doors.GetPositions(c)) == 0 {
			continue
		}
		if !HasKey(p, c) {
			colors = append(colors, c)
		}
	}
	return colors
}

// HasDoorBeenOpened reports whether a door of color has ever transitioned
// to Empty this level.
func (s *State) HasDoorBeenOpened(color model.Color) bool {
	return s.openedDoors[color]
}

// KnowsKeyLocation reports whether any key of color has ever been seen.
func (s *State) KnowsKeyLocation(color model.Color) bool {
	return s.Keys.HasColor(color)
}

// IsTwoPlayerMode reports whether the server is controlling two players.
func (s *State) IsTwoPlayerMode() bool {
	return len(s.Players) > 1
}

// DoorHasReachablePlate reports whether, in two-player mode, some player
// can currently reach a pressure plate matching color.
func (s *State) DoorHasReachablePlate(color model.Color) bool {
	if !s.IsTwoPlayerMode() {
		return false
	}
	plates := s.Plates.GetPositions(color)
	if len(plates) == 0 {
		return false
	}
	for _, p := range s.Players {
		for _, plate := range plates {
			if s.FindPath(p.Position, plate) != nil {
				return true
			}
		}
	}
	return false
}

// ActivePlayers returns the players currently reported active by the
// server.
func (s *State) ActivePlayers() []*player.State {
	var active []*player.State
	for _, p := range s.Players {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active
}
