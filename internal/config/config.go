// Package config loads the settings one run of the bot needs: which
// server to connect to, which user to play as, which level/seed to
// request, and where (if anywhere) to write replay files.
//
// Grounded on turnforge-weewar's cmd/cli/cmd/root.go (cobra persistent
// flags bound to viper, SetEnvPrefix + AutomaticEnv, flag-overrides-env
// precedence) and original_source/src/main.rs's SWOQ_* environment
// variables (USER_ID, USER_NAME, HOST, LEVEL, SEED, REPLAYS_FOLDER,
// VISUALIZER, LOOP). The GOAP-only variables from main.rs
// (SWOQ_GOAP_ENABLED, SWOQ_GOAP_MAX_DEPTH) are out of scope.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds everything the game loop and transport layer need for
// one run.
type Config struct {
	UserID     string
	UserName   string
	Host       string
	Level      *int
	Seed       *int64
	ReplaysDir string
	Visualize  bool
	Loop       bool
}

// Bind registers the flags Config is loaded from on cmd's persistent
// flag set and binds each to viper, so every value can come from a
// flag, an SWOQBOT_-prefixed environment variable, or an .env file, in
// that order of precedence.
func Bind(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("user-id", "", "player user id (env: SWOQBOT_USER_ID)")
	flags.String("user-name", "", "player display name (env: SWOQBOT_USER_NAME)")
	flags.String("host", "", "game server host (env: SWOQBOT_HOST)")
	flags.Int("level", 0, "level to request, 0 lets the server choose (env: SWOQBOT_LEVEL)")
	flags.Int64("seed", 0, "seed to request, 0 lets the server choose (env: SWOQBOT_SEED)")
	flags.String("replays-dir", "", "directory to write replay files to, empty disables replay (env: SWOQBOT_REPLAYS_DIR)")
	flags.Bool("visualize", false, "print colorized per-tick progress to the console (env: SWOQBOT_VISUALIZE)")
	flags.Bool("loop", false, "restart automatically after a game ends (env: SWOQBOT_LOOP)")

	for _, name := range []string{"user-id", "user-name", "host", "level", "seed", "replays-dir", "visualize", "loop"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

// Init loads a .env file if present and wires environment-variable
// lookups under the SWOQBOT_ prefix. Call it once, from cobra.OnInitialize.
func Init() {
	_ = godotenv.Load()
	viper.SetEnvPrefix("SWOQBOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// Load reads the bound flags and environment into a Config and
// validates the required fields are present.
func Load() (Config, error) {
	cfg := Config{
		UserID:     viper.GetString("user-id"),
		UserName:   viper.GetString("user-name"),
		Host:       viper.GetString("host"),
		ReplaysDir: viper.GetString("replays-dir"),
		Visualize:  viper.GetBool("visualize"),
		Loop:       viper.GetBool("loop"),
	}
	if level := viper.GetInt("level"); level != 0 {
		cfg.Level = &level
	}
	if seed := viper.GetInt64("seed"); seed != 0 {
		cfg.Seed = &seed
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	var missing []string
	if c.UserID == "" {
		missing = append(missing, "user-id")
	}
	if c.UserName == "" {
		missing = append(missing, "user-name")
	}
	if c.Host == "" {
		missing = append(missing, "host")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing required setting(s): %s", strings.Join(missing, ", "))
	}
	return nil
}
