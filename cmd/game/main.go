// destroid is a terminal asteroid arcade.
//
// Usage:
//
//	destroid                 - Play in this terminal
//	destroid play            - Same as above
//	destroid sim --ticks N   - Run a headless round and print its statistics
//
// Global flags:
//
//	--config <path>     - Tuning file (default: ~/.destroid/destroid.yaml)
//	--seed <value>      - RNG seed for reproducible rounds
//	--log-level <name>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tomz197/destroid/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "destroid",
	Short: "DESTROID - shoot asteroids in your terminal",
	Long: `DESTROID is a terminal arcade game. Steer the ship with WASD or the
arrow keys, click (or press space) to fire and survive as long as you can.

Available commands:
  play  - Play in this terminal (default)
  sim   - Run a headless round with an autopilot`,
	RunE: runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to tuning YAML file")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

// loadTuning resolves the tuning from --config and the default search path.
func loadTuning() (config.Tuning, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Tuning{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}
