// Package tracker holds the set-valued trackers the world model keeps for
// things that can appear, disappear or move out of sight: plain items
// (swords, health, the exit), colored items (keys, doors, pressure
// plates) and boulders.
//
// Grounded on original_source/src/item_tracker.rs and
// original_source/src/boulder_info.rs. The dedupe-while-preserving-order
// plus visibility-gated retain/validate pattern is carried over verbatim;
// only the HashMap storage becomes a Go map.
package tracker

import "github.com/rcaelers/swoqbot/internal/model"

// ItemTracker remembers the positions of a single kind of uncolored item.
// A position is dropped once it becomes visible and the validator no
// longer accepts the tile found there; positions outside every current
// visibility bound are left untouched, since items never move or vanish
// unobserved.
type ItemTracker struct {
	positions []model.Position
}

// NewItemTracker returns an empty tracker.
func NewItemTracker() *ItemTracker {
	return &ItemTracker{}
}

// TileAt looks up the tile for a position; implemented by worldmap.Map.
type TileAt interface {
	TileAt(model.Position) model.Tile
}

// Update merges newly seen positions into the tracker, deduplicates, and
// drops any previously tracked position that lies within one of
// visibility and whose tile no longer satisfies validator.
func (t *ItemTracker) Update(seen []model.Position, m TileAt, validator func(model.Tile) bool, visibility []model.Bounds) {
	t.positions = append(t.positions, seen...)
	t.positions = dedupe(t.positions)

	kept := t.positions[:0:0]
	for _, pos := range t.positions {
		if !model.ContainsAny(visibility, pos) {
			kept = append(kept, pos)
			continue
		}
		if validator(m.TileAt(pos)) {
			kept = append(kept, pos)
		}
	}
	t.positions = kept
}

// Positions returns the currently tracked positions.
func (t *ItemTracker) Positions() []model.Position {
	return t.positions
}

// ClosestTo returns the tracked position nearest to reference, and false
// if nothing is tracked.
func (t *ItemTracker) ClosestTo(reference model.Position) (model.Position, bool) {
	return closestTo(t.positions, reference)
}

// IsEmpty reports whether nothing is currently tracked.
func (t *ItemTracker) IsEmpty() bool {
	return len(t.positions) == 0
}

func dedupe(positions []model.Position) []model.Position {
	seen := make(map[model.Position]struct{}, len(positions))
	unique := make([]model.Position, 0, len(positions))
	for _, pos := range positions {
		if _, ok := seen[pos]; ok {
			continue
		}
		seen[pos] = struct{}{}
		unique = append(unique, pos)
	}
	return unique
}

func closestTo(positions []model.Position, reference model.Position) (model.Position, bool) {
	if len(positions) == 0 {
		return model.Position{}, false
	}
	best := positions[0]
	bestDist := reference.Distance(best)
	for _, pos := range positions[1:] {
		if d := reference.Distance(pos); d < bestDist {
			best, bestDist = pos, d
		}
	}
	return best, true
}
