package world

import (
	"testing"

	"github.com/rcaelers/swoqbot/internal/model"
)

func surroundings(center model.Position, radius int, tileAt func(model.Position) model.Tile) []model.Tile {
	var out []model.Tile
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			out = append(out, tileAt(model.NewPosition(center.X+dx, center.Y+dy)))
		}
	}
	return out
}

func TestUpdateTracksKeyPickup(t *testing.T) {
	s := New(10, 10, 1)
	keyPos := model.NewPosition(5, 5)
	start := model.NewPosition(5, 4)

	grid := map[model.Position]model.Tile{keyPos: model.KeyRed}
	tileAt := func(p model.Position) model.Tile {
		if t, ok := grid[p]; ok {
			return t
		}
		return model.Empty
	}

	obs := Observation{
		Tick:  1,
		Level: 1,
		Players: []PlayerObservation{
			{Position: start, Health: 10, Surroundings: surroundings(start, 1, tileAt)},
		},
	}
	s.Update(obs)

	if !s.Keys.HasColor(model.Red) {
		t.Fatalf("expected red key to be tracked after first observation")
	}

	// second tick: player stands on the key tile, now showing Player1 and
	// empty where the key used to be.
	grid2 := map[model.Position]model.Tile{}
	tileAt2 := func(p model.Position) model.Tile {
		if t, ok := grid2[p]; ok {
			return t
		}
		return model.Empty
	}
	obs2 := Observation{
		Tick:  2,
		Level: 1,
		Players: []PlayerObservation{
			{Position: keyPos, Health: 10, Inventory: model.InventoryKeyRed, Surroundings: surroundings(keyPos, 1, tileAt2)},
		},
	}
	s.Update(obs2)

	if s.Keys.HasColor(model.Red) {
		t.Errorf("expected red key to be dropped from tracker once picked up")
	}
	if !HasKey(s.Players[0], model.Red) {
		t.Errorf("expected player inventory to report holding the red key")
	}
}

func TestDoorOpenedHistoryRecorded(t *testing.T) {
	s := New(5, 5, 1)
	doorPos := model.NewPosition(2, 2)
	start := model.NewPosition(2, 1)

	seenDoor := map[model.Position]model.Tile{doorPos: model.DoorRed}
	tileAt := func(p model.Position) model.Tile {
		if t, ok := seenDoor[p]; ok {
			return t
		}
		return model.Empty
	}
	s.Update(Observation{Tick: 1, Players: []PlayerObservation{
		{Position: start, Surroundings: surroundings(start, 1, tileAt)},
	}})

	if s.HasDoorBeenOpened(model.Red) {
		t.Fatalf("door should not be recorded opened before it is seen empty")
	}

	tileAtOpen := func(p model.Position) model.Tile { return model.Empty }
	s.Update(Observation{Tick: 2, Players: []PlayerObservation{
		{Position: start, Surroundings: surroundings(start, 1, tileAtOpen)},
	}})

	if !s.HasDoorBeenOpened(model.Red) {
		t.Errorf("expected door to be recorded as opened once observed empty")
	}
}

func TestIsWalkableAdmitsGoalTileOnly(t *testing.T) {
	s := New(5, 5, 1)
	s.Map.Set(model.NewPosition(1, 1), model.DoorRed)
	s.Map.Set(model.NewPosition(2, 1), model.Empty)

	if s.IsWalkable(model.NewPosition(1, 1), model.NewPosition(2, 2)) {
		t.Errorf("a door should not be walkable as an intermediate cell")
	}
	if !s.IsWalkable(model.NewPosition(1, 1), model.NewPosition(1, 1)) {
		t.Errorf("a door should be walkable when it is exactly the goal cell")
	}
	if !s.IsWalkable(model.NewPosition(2, 1), model.NewPosition(9, 9)) {
		t.Errorf("an empty cell should always be walkable")
	}
}

func TestPotentialEnemyLocationsTracksOutOfView(t *testing.T) {
	s := New(10, 10, 1)
	enemyPos := model.NewPosition(5, 5)
	start := model.NewPosition(5, 4)

	seen := map[model.Position]model.Tile{enemyPos: model.Enemy}
	tileAt := func(p model.Position) model.Tile {
		if t, ok := seen[p]; ok {
			return t
		}
		return model.Empty
	}
	s.Update(Observation{Tick: 1, Players: []PlayerObservation{
		{Position: start, Surroundings: surroundings(start, 1, tileAt)},
	}})
	if s.Enemies.IsEmpty() {
		t.Fatalf("expected enemy to be tracked after first sighting")
	}

	far := model.NewPosition(0, 0)
	tileAtFar := func(p model.Position) model.Tile { return model.Empty }
	s.Update(Observation{Tick: 2, Players: []PlayerObservation{
		{Position: far, Surroundings: surroundings(far, 1, tileAtFar)},
	}})

	if len(s.PotentialEnemyLocations) != 1 {
		t.Fatalf("expected last known enemy position to move to PotentialEnemyLocations, got %d", len(s.PotentialEnemyLocations))
	}
	if _, ok := s.PotentialEnemyLocations[enemyPos]; !ok {
		t.Errorf("expected %v in PotentialEnemyLocations", enemyPos)
	}
}
