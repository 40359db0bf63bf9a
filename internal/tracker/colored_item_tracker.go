package tracker

import "github.com/rcaelers/swoqbot/internal/model"

// ColoredItemTracker is the per-color counterpart of ItemTracker, used for
// keys, doors and pressure plates.
type ColoredItemTracker struct {
	positions map[model.Color][]model.Position
}

// NewColoredItemTracker returns an empty tracker.
func NewColoredItemTracker() *ColoredItemTracker {
	return &ColoredItemTracker{positions: make(map[model.Color][]model.Position)}
}

// Update merges newly seen positions into the tracker, deduplicates, and
// drops any previously tracked position that lies within visibility and
// whose tile no longer satisfies validator. validator only sees the
// tile.
func (t *ColoredItemTracker) Update(seen map[model.Color][]model.Position, m TileAt, validator func(model.Tile) bool, visibility []model.Bounds) {
	t.UpdateWithPositions(seen, m, func(tile model.Tile, _ model.Position) bool {
		return validator(tile)
	}, visibility)
}

// UpdateWithPositions is like Update but the validator also receives the
// position being checked, which pressure plates need: a plate a player is
// currently standing on must not be dropped just because the tile
// underneath now reads as occupied by that player.
func (t *ColoredItemTracker) UpdateWithPositions(seen map[model.Color][]model.Position, m TileAt, validator func(model.Tile, model.Position) bool, visibility []model.Bounds) {
	for color, newPositions := range seen {
		t.positions[color] = append(t.positions[color], newPositions...)
	}

	for color, positions := range t.positions {
		positions = dedupe(positions)

		kept := positions[:0:0]
		for _, pos := range positions {
			if !model.ContainsAny(visibility, pos) {
				kept = append(kept, pos)
				continue
			}
			if validator(m.TileAt(pos), pos) {
				kept = append(kept, pos)
			}
		}
		t.positions[color] = kept
	}
}

// GetPositions returns the tracked positions for color.
func (t *ColoredItemTracker) GetPositions(color model.Color) []model.Position {
	return t.positions[color]
}

// HasColor reports whether any position is currently tracked for color.
func (t *ColoredItemTracker) HasColor(color model.Color) bool {
	return len(t.positions[color]) > 0
}

// ClosestTo returns the tracked position of color nearest to reference.
func (t *ColoredItemTracker) ClosestTo(color model.Color, reference model.Position) (model.Position, bool) {
	return closestTo(t.positions[color], reference)
}

// Colors returns every color that has had a position tracked at some
// point, including colors whose slice has since been emptied out by
// Update.
func (t *ColoredItemTracker) Colors() []model.Color {
	colors := make([]model.Color, 0, len(t.positions))
	for c := range t.positions {
		colors = append(colors, c)
	}
	return colors
}
