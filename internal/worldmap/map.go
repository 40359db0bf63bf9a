// Package worldmap implements the partial map each agent builds up as it
// explores: a (x,y) -> Tile store plus the BFS sweep that drives both
// reachability checks and frontier (unexplored-edge) detection.
//
// Grounded on turnforge-weewar's lib/map.go (coordinate-keyed tile store,
// NewMap/AddTile shape) and original_source/src/map.rs for the
// reachability/frontier sweep itself, which this package follows closely.
package worldmap

import "github.com/rcaelers/swoqbot/internal/model"

// Map is the set of tiles observed so far, keyed by position. Positions
// never observed are absent from the underlying store and read back as
// model.Unknown.
type Map struct {
	width, height int
	tiles         map[model.Position]model.Tile
}

// New returns an empty map of the given dimensions.
func New(width, height int) *Map {
	return &Map{
		width:  width,
		height: height,
		tiles:  make(map[model.Position]model.Tile),
	}
}

// Width returns the map's width in cells.
func (m *Map) Width() int { return m.width }

// Height returns the map's height in cells.
func (m *Map) Height() int { return m.height }

// InBounds reports whether pos lies within the map's dimensions.
func (m *Map) InBounds(pos model.Position) bool {
	return pos.InBounds(m.width, m.height)
}

// Get returns the tile at pos and whether it has ever been observed.
func (m *Map) Get(pos model.Position) (model.Tile, bool) {
	t, ok := m.tiles[pos]
	return t, ok
}

// TileAt returns the tile at pos, or model.Unknown if it has never been
// observed. Out-of-bounds positions also read back as Unknown.
func (m *Map) TileAt(pos model.Position) model.Tile {
	if !m.InBounds(pos) {
		return model.Unknown
	}
	return m.tiles[pos]
}

// Set records an observation of tile at pos. Out-of-bounds positions are
// silently ignored (the invariant is: cells outside the grid are never
// stored). Once a cell has been observed as something other than
// Unknown, a later Unknown observation does not erase it — an already
// explored cell is never forgotten.
func (m *Map) Set(pos model.Position, tile model.Tile) {
	if !m.InBounds(pos) {
		return
	}
	if tile == model.Unknown {
		if _, known := m.tiles[pos]; known {
			return
		}
	}
	m.tiles[pos] = tile
}

// Len returns the number of positions ever observed.
func (m *Map) Len() int { return len(m.tiles) }

// Iter calls fn for every observed (position, tile) pair. Iteration order
// is unspecified.
func (m *Map) Iter(fn func(model.Position, model.Tile)) {
	for pos, tile := range m.tiles {
		fn(pos, tile)
	}
}

// HasBoulders reports whether any tile currently on the map is a Boulder.
func (m *Map) HasBoulders() bool {
	for _, t := range m.tiles {
		if t == model.Boulder {
			return true
		}
	}
	return false
}

// ComputeReachablePositions performs a BFS from start, expanding
// 4-neighbours that lie in bounds and satisfy isWalkable. It returns the
// frontier: the set of reachable cells whose tile is Unknown (or never
// observed) and which were reached directly from an already-explored
// cell. The BFS itself continues through frontier cells too, so a chain
// of adjacent unknown-but-walkable cells all get examined; only the ones
// adjacent to an explored cell count as frontier.
func (m *Map) ComputeReachablePositions(start model.Position, isWalkable func(model.Position) bool) map[model.Position]struct{} {
	reachable := map[model.Position]struct{}{start: {}}
	frontier := make(map[model.Position]struct{})
	queue := []model.Position{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		currentExplored := m.TileAt(current) != model.Unknown

		for _, neighbor := range current.Neighbors() {
			if _, seen := reachable[neighbor]; seen {
				continue
			}
			if !m.InBounds(neighbor) {
				continue
			}
			if !isWalkable(neighbor) {
				continue
			}

			reachable[neighbor] = struct{}{}
			queue = append(queue, neighbor)

			if m.TileAt(neighbor) == model.Unknown && currentExplored {
				frontier[neighbor] = struct{}{}
			}
		}
	}

	return frontier
}
