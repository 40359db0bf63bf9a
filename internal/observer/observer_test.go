package observer

import (
	"bytes"
	"testing"

	"github.com/rcaelers/swoqbot/internal/model"
	"github.com/rcaelers/swoqbot/internal/transport"
	"github.com/rcaelers/swoqbot/internal/world"
)

type recordingObserver struct {
	started  int
	finished int
}

func (r *recordingObserver) OnGameStart(gameID string, seed int64, mapWidth, mapHeight, visibilityRange int) {
	r.started++
}
func (r *recordingObserver) OnNewLevel(level int)                {}
func (r *recordingObserver) OnStateUpdate(state transport.WireState, w *world.State) {}
func (r *recordingObserver) OnGoalSelected(playerIndex int, goal model.GoalSpec)      {}
func (r *recordingObserver) OnActionSelected(playerIndex int, action model.Action)    {}
func (r *recordingObserver) OnActionResult(action, action2 model.Action, hasAction2 bool, result string) {
}
func (r *recordingObserver) OnGameFinished(status string, finalTick int) {
	r.finished++
}

func TestCompositeObserverFansOutToEveryObserver(t *testing.T) {
	a := &recordingObserver{}
	b := &recordingObserver{}
	composite := NewCompositeObserver(a, b)

	composite.OnGameStart("game-1", 42, 10, 10, 3)
	composite.OnGameFinished("Success", 100)

	if a.started != 1 || b.started != 1 {
		t.Errorf("started = %d, %d, want 1, 1", a.started, b.started)
	}
	if a.finished != 1 || b.finished != 1 {
		t.Errorf("finished = %d, %d, want 1, 1", a.finished, b.finished)
	}
}

func TestStatsObserverCountsGoalsAndRejections(t *testing.T) {
	s := NewStatsObserver()

	s.OnNewLevel(1)
	s.OnGoalSelected(0, model.GoalSpec{Type: model.GoalReachExit})
	s.OnGoalSelected(1, model.GoalSpec{Type: model.GoalReachExit})
	s.OnGoalSelected(0, model.GoalSpec{Type: model.GoalRandomExplore})
	s.OnActionResult(model.MoveNorth, model.ActionNone, false, "Ok")
	s.OnActionResult(model.MoveNorth, model.ActionNone, false, "InvalidMove")
	s.OnGameFinished("Success", 250)

	if s.Levels != 1 {
		t.Errorf("Levels = %d, want 1", s.Levels)
	}
	if got := s.GoalCount(model.GoalReachExit); got != 2 {
		t.Errorf("GoalCount(ReachExit) = %d, want 2", got)
	}
	if s.Rejections != 1 {
		t.Errorf("Rejections = %d, want 1", s.Rejections)
	}
	if s.LastStatus != "Success" || s.FinalTick != 250 {
		t.Errorf("LastStatus/FinalTick = %s/%d, want Success/250", s.LastStatus, s.FinalTick)
	}
}

func TestConsoleObserverDisabledWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleObserver(&buf, false)
	c.OnGameStart("game-1", 1, 10, 10, 3)
	c.OnGameFinished("Success", 10)
	if buf.Len() != 0 {
		t.Errorf("disabled ConsoleObserver wrote %q, want nothing", buf.String())
	}
}

func TestConsoleObserverEnabledWritesLines(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleObserver(&buf, true)
	c.OnGameStart("game-1", 1, 10, 10, 3)
	c.OnGameFinished("Success", 10)
	if buf.Len() == 0 {
		t.Error("enabled ConsoleObserver wrote nothing")
	}
}
