package goal

import (
	"testing"

	"github.com/rcaelers/swoqbot/internal/model"
	"github.com/rcaelers/swoqbot/internal/player"
	"github.com/rcaelers/swoqbot/internal/world"
)

func emptyWorld(width, height int) *world.State {
	w := world.New(width, height, 3)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			w.Map.Set(model.NewPosition(x, y), model.Empty)
		}
	}
	return w
}

func alwaysPresent(model.Tile) bool { return true }

func TestGetKeyMovesTowardsKey(t *testing.T) {
	w := emptyWorld(5, 5)
	key := model.NewPosition(2, 0)
	w.Map.Set(key, model.KeyRed)
	w.Keys.Update(map[model.Color][]model.Position{model.Red: {key}}, w.Map, alwaysPresent, nil)

	p := player.New(model.NewPosition(0, 0))
	w.Players = []*player.State{p}

	action, ok := Execute(w, 0, model.GoalSpec{Type: model.GoalGetKey, Color: model.Red, HasColor: true})
	if !ok {
		t.Fatalf("expected GetKey to produce an action")
	}
	if action != model.MoveEast {
		t.Errorf("action = %v, want MoveEast", action)
	}
}

func TestGetKeyUsesWhenAdjacent(t *testing.T) {
	w := emptyWorld(5, 5)
	key := model.NewPosition(2, 0)
	w.Map.Set(key, model.KeyRed)
	w.Keys.Update(map[model.Color][]model.Position{model.Red: {key}}, w.Map, alwaysPresent, nil)

	p := player.New(model.NewPosition(1, 0))
	w.Players = []*player.State{p}

	action, ok := Execute(w, 0, model.GoalSpec{Type: model.GoalGetKey, Color: model.Red, HasColor: true})
	if !ok || action != model.UseEast {
		t.Errorf("action = %v ok = %v, want UseEast/true", action, ok)
	}
}

func TestOpenDoorRequiresKeyThenUses(t *testing.T) {
	w := emptyWorld(5, 5)
	door := model.NewPosition(4, 0)
	w.Map.Set(door, model.DoorRed)
	w.Doors.Update(map[model.Color][]model.Position{model.Red: {door}}, w.Map, alwaysPresent, nil)

	p := player.New(model.NewPosition(3, 0))
	w.Players = []*player.State{p}

	if _, ok := Execute(w, 0, model.GoalSpec{Type: model.GoalOpenDoor, Color: model.Red, HasColor: true}); ok {
		t.Errorf("expected OpenDoor to refuse without the matching key")
	}

	p.Inventory = model.InventoryKeyRed
	action, ok := Execute(w, 0, model.GoalSpec{Type: model.GoalOpenDoor, Color: model.Red, HasColor: true})
	if !ok || action != model.UseEast {
		t.Errorf("action = %v ok = %v, want UseEast/true once key is held", action, ok)
	}
}

func TestAvoidEnemyMovesToFurthestNeighbor(t *testing.T) {
	w := emptyWorld(5, 5)
	p := player.New(model.NewPosition(2, 2))
	w.Players = []*player.State{p}

	enemy := model.NewPosition(2, 1)
	action, ok := Execute(w, 0, model.GoalSpec{Type: model.GoalAvoidEnemy, Target: enemy, HasTarget: true})
	if !ok {
		t.Fatalf("expected an action")
	}
	if action != model.MoveEast {
		t.Errorf("action = %v, want MoveEast (first neighbour strictly further from the enemy)", action)
	}
}

func TestAvoidEnemyHoldsWhenNoEscapeImproves(t *testing.T) {
	w := world.New(1, 1, 3)
	w.Map.Set(model.NewPosition(0, 0), model.Empty)
	p := player.New(model.NewPosition(0, 0))
	w.Players = []*player.State{p}

	action, ok := Execute(w, 0, model.GoalSpec{Type: model.GoalAvoidEnemy, Target: model.NewPosition(0, 0), HasTarget: true})
	if !ok || action != model.ActionNone {
		t.Errorf("action = %v ok = %v, want ActionNone/true when boxed in", action, ok)
	}
}

func TestKillEnemyUsesWhenAdjacent(t *testing.T) {
	w := emptyWorld(5, 5)
	p := player.New(model.NewPosition(2, 2))
	w.Players = []*player.State{p}

	action, ok := Execute(w, 0, model.GoalSpec{Type: model.GoalKillEnemy, Target: model.NewPosition(3, 2), HasTarget: true})
	if !ok || action != model.UseEast {
		t.Errorf("action = %v ok = %v, want UseEast", action, ok)
	}
}

func TestDropBoulderUsesEmptyNeighbor(t *testing.T) {
	w := world.New(5, 5, 3)
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			w.Map.Set(model.NewPosition(x, y), model.Wall)
		}
	}
	w.Map.Set(model.NewPosition(2, 2), model.Empty)
	w.Map.Set(model.NewPosition(3, 2), model.Empty)

	p := player.New(model.NewPosition(2, 2))
	w.Players = []*player.State{p}

	action, ok := Execute(w, 0, model.GoalSpec{Type: model.GoalDropBoulder})
	if !ok || action != model.UseEast {
		t.Errorf("action = %v ok = %v, want UseEast toward the empty neighbour", action, ok)
	}
}

func TestDropBoulderOnPlateAdjacentUses(t *testing.T) {
	w := emptyWorld(5, 5)
	plate := model.NewPosition(3, 2)
	w.Map.Set(plate, model.PlateRed)

	p := player.New(model.NewPosition(2, 2))
	w.Players = []*player.State{p}

	action, ok := Execute(w, 0, model.GoalSpec{Type: model.GoalDropBoulderOnPlate, Color: model.Red, HasColor: true, Target: plate, HasTarget: true})
	if !ok || action != model.UseEast {
		t.Errorf("action = %v ok = %v, want UseEast", action, ok)
	}
}

func TestExplorePathsToClosestFrontierCell(t *testing.T) {
	w := emptyWorld(5, 5)
	p := player.New(model.NewPosition(0, 0))
	p.UnexploredFrontier[model.NewPosition(3, 0)] = struct{}{}
	p.UnexploredFrontier[model.NewPosition(1, 0)] = struct{}{}
	w.Players = []*player.State{p}

	action, ok := Execute(w, 0, model.GoalSpec{Type: model.GoalExplore})
	if !ok || action != model.MoveEast {
		t.Errorf("action = %v ok = %v, want MoveEast towards the nearer frontier cell", action, ok)
	}
}

func TestWaitOnTileEmitsNoneWhenAlreadyThere(t *testing.T) {
	w := emptyWorld(5, 5)
	target := model.NewPosition(2, 2)
	p := player.New(target)
	w.Players = []*player.State{p}

	action, ok := Execute(w, 0, model.GoalSpec{Type: model.GoalWaitOnTile, Target: target, HasTarget: true})
	if !ok || action != model.ActionNone {
		t.Errorf("action = %v ok = %v, want ActionNone/true", action, ok)
	}
}

func TestGoalChangeClearsCachedDestination(t *testing.T) {
	w := emptyWorld(5, 5)
	p := player.New(model.NewPosition(0, 0))
	w.Players = []*player.State{p}
	p.SetDestination(model.NewPosition(4, 4), []model.Position{model.NewPosition(0, 0), model.NewPosition(4, 4)})
	p.SetGoal(model.GoalSpec{Type: model.GoalExplore})

	p.SetGoal(model.GoalSpec{Type: model.GoalReachExit})
	w.HasExit = true
	w.ExitPosition = model.NewPosition(1, 0)

	if _, ok := Execute(w, 0, model.GoalSpec{Type: model.GoalReachExit}); !ok {
		t.Fatalf("expected ReachExit to produce an action")
	}
	if p.CurrentDestination == (model.Position{X: 4, Y: 4}) {
		t.Errorf("expected stale destination to be cleared on goal change")
	}
}
