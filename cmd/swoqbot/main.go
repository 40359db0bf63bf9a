// Command swoqbot connects to a quest server and plays levels
// autonomously using the heuristic strategy ladder in internal/strategy.
//
// Grounded on turnforge-weewar's cmd/cli/cmd (cobra root command,
// PersistentFlags bound through internal/config) and
// original_source/src/main.rs's run_heuristic_game_loop (single run by
// default, restart-after-a-game wrapper under --loop/SWOQBOT_LOOP). The
// GOAP planner branch main.rs also wires is out of scope.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/bridges/otelslog"

	"github.com/rcaelers/swoqbot/internal/config"
	"github.com/rcaelers/swoqbot/internal/gameloop"
	"github.com/rcaelers/swoqbot/internal/observer"
	"github.com/rcaelers/swoqbot/internal/transport"
)

const instrumentationName = "github.com/rcaelers/swoqbot"

// log is the bot's structured logger, bridged to the OpenTelemetry Logs
// API so a future exporter can pick these up without any call-site
// changes; with no provider configured it behaves as a plain slog
// logger writing nowhere but still satisfies the call sites below.
var log = otelslog.NewLogger(instrumentationName)

func main() {
	cmd := &cobra.Command{
		Use:   "swoqbot",
		Short: "Plays quest-server levels autonomously",
		RunE:  runBot,
	}
	config.Bind(cmd)
	cobra.OnInitialize(config.Init)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runBot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	for {
		if err := runOnce(ctx, cfg, log); err != nil {
			log.Error("game run failed", "error", err)
			if errors.Is(err, transport.ErrStartFailed) {
				return err
			}
			if !cfg.Loop {
				return err
			}
		}
		if !cfg.Loop {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
		log.Info("restarting after one second")
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Second):
		}
	}
}

func runOnce(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	client, err := transport.Dial(ctx, cfg.Host)
	if err != nil {
		return fmt.Errorf("swoqbot: dial %s: %w", cfg.Host, err)
	}
	defer client.Close()

	obsList := []observer.Observer{observer.NewStatsObserver()}
	if cfg.Visualize {
		obsList = append(obsList, observer.NewConsoleObserver(os.Stdout, true))
	}
	composite := observer.NewCompositeObserver(obsList...)

	req := gameloop.Request{
		UserID:     cfg.UserID,
		UserName:   cfg.UserName,
		Level:      cfg.Level,
		Seed:       cfg.Seed,
		ReplaysDir: cfg.ReplaysDir,
	}
	return gameloop.Run(ctx, client, req, composite, log)
}
