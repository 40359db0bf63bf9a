// Package gameloop drives one game from start to finish: start the
// connection, feed every tick's observation into the world model, ask
// the planner for a goal and the goal dispatcher for an action, submit
// the action, and notify observers along the way.
//
// Grounded on original_source/src/game.rs's Game::run — the per-tick
// sequence (level-change detection, world update, goal/action selection
// and notification, act, slow-tick warning, final status notification)
// follows it closely, translated from its single-process in-memory
// World/Planner/Game trio into this module's transport/world/strategy/
// goal/observer packages.
package gameloop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rcaelers/swoqbot/internal/goal"
	"github.com/rcaelers/swoqbot/internal/model"
	"github.com/rcaelers/swoqbot/internal/observer"
	"github.com/rcaelers/swoqbot/internal/replay"
	"github.com/rcaelers/swoqbot/internal/strategy"
	"github.com/rcaelers/swoqbot/internal/transport"
	"github.com/rcaelers/swoqbot/internal/world"
)

// slowTickThreshold is the per-tick budget above which a tick is logged
// as slow; the game continues regardless, as in the original.
const slowTickThreshold = 100 * time.Millisecond

// Request describes the game to start. ReplaysDir is empty to disable
// replay recording; when set, a replay file is created only once the
// game has actually started, named after the server-assigned game ID,
// mirroring swoq.rs's GameConnection::start (ReplayFile::new runs after
// a successful start response, never before).
type Request struct {
	UserID     string
	UserName   string
	Level      *int
	Seed       *int64
	ReplaysDir string
}

// Run starts one game over client and drives it to completion,
// notifying obs of every lifecycle event. It returns nil once the server
// reports the game is no longer Active or an action is rejected, and an
// error if Start or Act fails for any other reason. ctx is handed to the
// client calls; the loop itself does not check it between ticks.
func Run(ctx context.Context, client transport.GameServerClient, req Request, obs observer.Observer, log *slog.Logger) error {
	startReq := transport.StartRequest{UserID: req.UserID, UserName: req.UserName, Level: req.Level, Seed: req.Seed}
	start, err := client.Start(ctx, startReq)
	if err != nil {
		return fmt.Errorf("gameloop: start: %w", err)
	}

	var rec *replay.Writer
	if req.ReplaysDir != "" {
		f, err := replay.CreateFile(req.ReplaysDir, req.UserName, start.GameID, time.Now())
		if err != nil {
			log.Warn("gameloop: failed to open replay file", "error", err)
		} else {
			defer f.Close()
			rec = replay.NewWriter(f)
		}
	}
	if rec != nil {
		if err := rec.WriteRecord("start_request", startReq); err != nil {
			log.Warn("gameloop: failed to record start request", "error", err)
		}
		if err := rec.WriteRecord("start", start); err != nil {
			log.Warn("gameloop: failed to record start", "error", err)
		}
	}

	obs.OnGameStart(start.GameID, start.Seed, start.MapWidth, start.MapHeight, start.VisibilityRange)

	w := world.New(start.MapWidth, start.MapHeight, start.VisibilityRange)
	planner := strategy.NewPlanner()
	currentLevel := start.State.Level
	state := start.State

	for state.IsActive() {
		tickStart := time.Now()

		if state.Level != currentLevel {
			obs.OnNewLevel(state.Level)
			w.ResetForNewLevel()
			currentLevel = state.Level
		}

		w.Update(state.ToObservation())
		obs.OnStateUpdate(state, w)

		planner.Select(w)

		actions := make([]model.Action, len(w.Players))
		for i, p := range w.Players {
			obs.OnGoalSelected(i, p.CurrentGoal)
			action, _ := goal.Execute(w, i, p.CurrentGoal)
			actions[i] = action
			obs.OnActionSelected(i, action)
			log.Debug("player action selected", "player", i+1, "goal", p.CurrentGoal.Type, "action", action)
		}

		var action2 *model.Action
		if len(actions) > 1 {
			action2 = &actions[1]
		}
		var action1 model.Action
		if len(actions) > 0 {
			action1 = actions[0]
		}

		if rec != nil {
			actReq := transport.ActRequest{GameID: start.GameID, Action: int(action1)}
			if action2 != nil {
				v := int(*action2)
				actReq.Action2 = &v
			}
			if err := rec.WriteRecord("act_request", actReq); err != nil {
				log.Warn("gameloop: failed to record act request", "error", err)
			}
		}

		resp, actErr := client.Act(ctx, start.GameID, action1, action2)
		if rec != nil {
			if err := rec.WriteRecord("act", resp); err != nil {
				log.Warn("gameloop: failed to record act response", "error", err)
			}
		}

		hasAction2 := action2 != nil
		action2Value := model.ActionNone
		if hasAction2 {
			action2Value = *action2
		}
		obs.OnActionResult(action1, action2Value, hasAction2, resp.Result)

		if actErr != nil {
			if errors.Is(actErr, transport.ErrActionRejected) {
				log.Error("gameloop: action rejected, ending game", "result", resp.Result)
				break
			}
			return fmt.Errorf("gameloop: act: %w", actErr)
		}

		if elapsed := time.Since(tickStart); elapsed > slowTickThreshold {
			log.Warn("gameloop: slow tick", "tick", state.Tick, "level", state.Level, "duration", elapsed)
		}

		state = resp.State
	}

	obs.OnGameFinished(state.Status, state.Tick)
	return nil
}
