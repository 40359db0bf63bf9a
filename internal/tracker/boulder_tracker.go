package tracker

import "github.com/rcaelers/swoqbot/internal/model"

// Boulder is a single tracked boulder. HasMoved distinguishes a boulder
// that started at this position on level load from one that a player
// pushed or carried there during play.
type Boulder struct {
	Pos      model.Position
	HasMoved bool
}

// BoulderTracker tracks every boulder position currently known on the
// map, plus whether each one has been moved from its original spot.
type BoulderTracker struct {
	boulders map[model.Position]Boulder
}

// NewBoulderTracker returns an empty tracker.
func NewBoulderTracker() *BoulderTracker {
	return &BoulderTracker{boulders: make(map[model.Position]Boulder)}
}

// Add records a boulder at pos with the given moved state, overwriting
// any previous entry for that position.
func (t *BoulderTracker) Add(pos model.Position, hasMoved bool) {
	t.boulders[pos] = Boulder{Pos: pos, HasMoved: hasMoved}
}

// Remove deletes the boulder at pos, returning it and whether one was
// present.
func (t *BoulderTracker) Remove(pos model.Position) (Boulder, bool) {
	b, ok := t.boulders[pos]
	if ok {
		delete(t.boulders, pos)
	}
	return b, ok
}

// AllPositions returns every currently tracked boulder position.
func (t *BoulderTracker) AllPositions() []model.Position {
	positions := make([]model.Position, 0, len(t.boulders))
	for pos := range t.boulders {
		positions = append(positions, pos)
	}
	return positions
}

// OriginalPositions returns the positions of boulders that have not been
// moved since level load.
func (t *BoulderTracker) OriginalPositions() []model.Position {
	positions := make([]model.Position, 0, len(t.boulders))
	for pos, b := range t.boulders {
		if !b.HasMoved {
			positions = append(positions, pos)
		}
	}
	return positions
}

// Update merges newly seen boulder positions into the tracker and drops
// any tracked boulder whose tile no longer reads as Boulder (picked up
// or destroyed). A newly discovered boulder is assumed to already have
// been there (has_moved = false) unless isAdjacent reports it borders a
// player, in which case it is assumed to have just been dropped.
func (t *BoulderTracker) Update(seen []model.Position, m TileAt, isAdjacent func(model.Position) bool) {
	for _, pos := range seen {
		if t.Contains(pos) {
			continue
		}
		t.Add(pos, isAdjacent(pos))
	}

	for _, pos := range t.AllPositions() {
		if m.TileAt(pos) != model.Boulder {
			t.Remove(pos)
		}
	}
}

// Contains reports whether a boulder is currently tracked at pos.
func (t *BoulderTracker) Contains(pos model.Position) bool {
	_, ok := t.boulders[pos]
	return ok
}

// HasMoved reports whether the boulder at pos has moved from its
// original position. Returns false if no boulder is tracked there.
func (t *BoulderTracker) HasMoved(pos model.Position) bool {
	return t.boulders[pos].HasMoved
}

// Clear removes every tracked boulder, used on level transition.
func (t *BoulderTracker) Clear() {
	t.boulders = make(map[model.Position]Boulder)
}

// Len returns the number of tracked boulders.
func (t *BoulderTracker) Len() int {
	return len(t.boulders)
}

// IsEmpty reports whether no boulders are currently tracked.
func (t *BoulderTracker) IsEmpty() bool {
	return len(t.boulders) == 0
}
