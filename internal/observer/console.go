package observer

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/rcaelers/swoqbot/internal/model"
	"github.com/rcaelers/swoqbot/internal/transport"
	"github.com/rcaelers/swoqbot/internal/world"
)

// ConsoleObserver prints one colorized line per notable event, in the
// style of the teacher's CLI formatter (status-colored lines rather than
// a full terminal UI — the spec places map visualization out of scope).
// A ConsoleObserver with Enabled false is a no-op, so callers can
// register it unconditionally and gate it on Config.Visualize.
type ConsoleObserver struct {
	Out     io.Writer
	Enabled bool
}

// NewConsoleObserver returns a ConsoleObserver writing to out, active
// only when enabled is true.
func NewConsoleObserver(out io.Writer, enabled bool) *ConsoleObserver {
	return &ConsoleObserver{Out: out, Enabled: enabled}
}

func (c *ConsoleObserver) OnGameStart(gameID string, seed int64, mapWidth, mapHeight, visibilityRange int) {
	if !c.Enabled {
		return
	}
	fmt.Fprintln(c.Out, color.CyanString("game %s started (%dx%d, seed %d)", gameID, mapWidth, mapHeight, seed))
}

func (c *ConsoleObserver) OnNewLevel(level int) {
	if !c.Enabled {
		return
	}
	fmt.Fprintln(c.Out, color.YellowString("-- level %d --", level))
}

func (c *ConsoleObserver) OnStateUpdate(state transport.WireState, w *world.State) {
	if !c.Enabled {
		return
	}
	fmt.Fprintf(c.Out, "tick %d: %d players tracked\n", state.Tick, len(w.Players))
}

func (c *ConsoleObserver) OnGoalSelected(playerIndex int, goal model.GoalSpec) {
	if !c.Enabled {
		return
	}
	fmt.Fprintln(c.Out, color.BlueString("player %d goal: %s", playerIndex+1, goal.Type))
}

func (c *ConsoleObserver) OnActionSelected(playerIndex int, action model.Action) {
	if !c.Enabled {
		return
	}
	fmt.Fprintf(c.Out, "player %d action: %s\n", playerIndex+1, action)
}

func (c *ConsoleObserver) OnActionResult(action, action2 model.Action, hasAction2 bool, result string) {
	if !c.Enabled {
		return
	}
	printer := color.GreenString
	if result != "Ok" {
		printer = color.RedString
	}
	fmt.Fprintln(c.Out, printer("result: %s", result))
}

func (c *ConsoleObserver) OnGameFinished(status string, finalTick int) {
	if !c.Enabled {
		return
	}
	fmt.Fprintln(c.Out, color.MagentaString("game finished: %s after %d ticks", status, finalTick))
}
