// Package observer implements the passive event-sink pattern the game
// loop notifies on every tick boundary: game start, level transitions,
// state updates, goal/action selection, action results, and game end.
//
// Grounded on turnforge-weewar's lib/world_observer.go and lib/events.go
// (registration/fan-out observer shape, Go interface + slice-of-observers
// dispatcher) and original_source/src/game_observer.rs/
// composite_observer.rs for the exact seven method names and their
// arguments (GameObserver trait, CompositeObserver fan-out).
package observer

import (
	"github.com/rcaelers/swoqbot/internal/model"
	"github.com/rcaelers/swoqbot/internal/transport"
	"github.com/rcaelers/swoqbot/internal/world"
)

// Observer is notified of every event in one game's lifecycle. Every
// method receives value copies except OnStateUpdate, which also receives
// a pointer to the live world state; the interface does not stop an
// implementation from mutating it, and the observers in this package
// only read from it.
type Observer interface {
	OnGameStart(gameID string, seed int64, mapWidth, mapHeight, visibilityRange int)
	OnNewLevel(level int)
	OnStateUpdate(state transport.WireState, w *world.State)
	OnGoalSelected(playerIndex int, goal model.GoalSpec)
	OnActionSelected(playerIndex int, action model.Action)
	OnActionResult(action, action2 model.Action, hasAction2 bool, result string)
	OnGameFinished(status string, finalTick int)
}

// CompositeObserver fans every event out to a fixed list of observers, in
// registration order.
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver returns a CompositeObserver fanning out to every
// observer in observers.
func NewCompositeObserver(observers ...Observer) *CompositeObserver {
	return &CompositeObserver{observers: observers}
}

func (c *CompositeObserver) OnGameStart(gameID string, seed int64, mapWidth, mapHeight, visibilityRange int) {
	for _, o := range c.observers {
		o.OnGameStart(gameID, seed, mapWidth, mapHeight, visibilityRange)
	}
}

func (c *CompositeObserver) OnNewLevel(level int) {
	for _, o := range c.observers {
		o.OnNewLevel(level)
	}
}

func (c *CompositeObserver) OnStateUpdate(state transport.WireState, w *world.State) {
	for _, o := range c.observers {
		o.OnStateUpdate(state, w)
	}
}

func (c *CompositeObserver) OnGoalSelected(playerIndex int, goal model.GoalSpec) {
	for _, o := range c.observers {
		o.OnGoalSelected(playerIndex, goal)
	}
}

func (c *CompositeObserver) OnActionSelected(playerIndex int, action model.Action) {
	for _, o := range c.observers {
		o.OnActionSelected(playerIndex, action)
	}
}

func (c *CompositeObserver) OnActionResult(action, action2 model.Action, hasAction2 bool, result string) {
	for _, o := range c.observers {
		o.OnActionResult(action, action2, hasAction2, result)
	}
}

func (c *CompositeObserver) OnGameFinished(status string, finalTick int) {
	for _, o := range c.observers {
		o.OnGameFinished(status, finalTick)
	}
}
