package strategy

import (
	"testing"

	"github.com/rcaelers/swoqbot/internal/model"
	"github.com/rcaelers/swoqbot/internal/player"
	"github.com/rcaelers/swoqbot/internal/world"
)

func openWorld(width, height int) *world.State {
	w := world.New(width, height, 3)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			w.Map.Set(model.NewPosition(x, y), model.Empty)
		}
	}
	return w
}

func TestReachExitNotAssignedUnlessBothPlayersCanReachIt(t *testing.T) {
	w := openWorld(5, 3)
	// Wall player 2's corner cell off from the rest of the grid entirely,
	// so player 1 can reach the exit but player 2 has no path anywhere.
	w.Map.Set(model.NewPosition(1, 2), model.Wall)
	w.Map.Set(model.NewPosition(0, 1), model.Wall)
	w.ExitPosition = model.NewPosition(4, 0)
	w.HasExit = true

	p1 := player.New(model.NewPosition(0, 0))
	p2 := player.New(model.NewPosition(0, 2))
	w.Players = []*player.State{p1, p2}

	pl := NewPlanner()
	pl.Select(w)

	if p1.CurrentGoal.Type == model.GoalReachExit || p2.CurrentGoal.Type == model.GoalReachExit {
		t.Errorf("ReachExit must not be assigned while player 2 cannot reach the exit: p1=%v p2=%v",
			p1.CurrentGoal.Type, p2.CurrentGoal.Type)
	}
}

func TestReachExitAssignedOnceBothPlayersCanReachIt(t *testing.T) {
	w := openWorld(7, 3)
	w.ExitPosition = model.NewPosition(6, 0)
	w.HasExit = true

	p1 := player.New(model.NewPosition(0, 0))
	p2 := player.New(model.NewPosition(0, 2))
	w.Players = []*player.State{p1, p2}

	pl := NewPlanner()
	pl.Select(w)

	if p1.CurrentGoal.Type != model.GoalReachExit || p2.CurrentGoal.Type != model.GoalReachExit {
		t.Errorf("expected both players assigned ReachExit once both can path there: p1=%v p2=%v",
			p1.CurrentGoal.Type, p2.CurrentGoal.Type)
	}
}

func TestBoulderOnPlateAssignsCarryingPlayer(t *testing.T) {
	w := openWorld(5, 5)
	plate := model.NewPosition(4, 0)
	w.Map.Set(plate, model.PlateRed)
	w.Doors.Update(map[model.Color][]model.Position{model.Red: {model.NewPosition(4, 4)}}, w.Map, func(model.Tile) bool { return true }, nil)
	w.Plates.Update(map[model.Color][]model.Position{model.Red: {plate}}, w.Map, func(model.Tile) bool { return true }, nil)

	carrier := player.New(model.NewPosition(0, 0))
	carrier.Inventory = model.InventoryBoulder
	w.Players = []*player.State{carrier}

	pl := NewPlanner()
	pl.Select(w)

	if carrier.CurrentGoal.Type != model.GoalDropBoulderOnPlate {
		t.Errorf("goal = %v, want GoalDropBoulderOnPlate", carrier.CurrentGoal.Type)
	}
	if carrier.CurrentGoal.Color != model.Red {
		t.Errorf("color = %v, want Red", carrier.CurrentGoal.Color)
	}
}

func TestOscillationForcesRandomExplore(t *testing.T) {
	w := openWorld(10, 10)
	p := player.New(model.NewPosition(5, 5))
	w.Players = []*player.State{p}

	pl := NewPlanner()
	pl.ensureSized(1)
	// Simulate the planner having observed this player bounce back and
	// forth: two ticks ago here, one tick ago elsewhere, back here now.
	pl.positionHistory[0] = [2]model.Position{model.NewPosition(5, 5), model.NewPosition(5, 6)}

	pl.Select(w)

	if p.ForceRandomExploreTicks != forcedExploreDuration-1 {
		t.Errorf("ForceRandomExploreTicks = %d, want %d after one tick consumed", p.ForceRandomExploreTicks, forcedExploreDuration-1)
	}
	if p.CurrentGoal.Type != model.GoalRandomExplore {
		t.Errorf("goal = %v, want GoalRandomExplore while forced", p.CurrentGoal.Type)
	}
}

func TestPlannerAssignsExactlyOneGoalPerPlayer(t *testing.T) {
	w := openWorld(8, 8)
	p1 := player.New(model.NewPosition(0, 0))
	p2 := player.New(model.NewPosition(7, 7))
	w.Players = []*player.State{p1, p2}

	pl := NewPlanner()
	pl.Select(w)

	for i, p := range w.Players {
		if !p.HasGoal {
			t.Errorf("player %d: expected a goal to be assigned", i)
		}
	}
}
