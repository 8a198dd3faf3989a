package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tomz197/destroid/internal/loop"
	"github.com/tomz197/destroid/internal/physics"
)

var flagTicks int

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless round with an autopilot",
	Long: `Run one round without a terminal. The ship stays put and fires at the
nearest asteroid once per second of game time. The round ends when an
asteroid reaches the ship or after --ticks ticks.

Example:
  destroid sim --seed 42 --ticks 3600 --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", 3600, "maximum number of ticks to simulate")
	rootCmd.AddCommand(simCmd)
}

func runSim(cmd *cobra.Command, args []string) error {
	cfg, err := loadTuning()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, "destroid-sim")
	if err != nil {
		return err
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	game := loop.NewGame(cfg,
		loop.WithScheduler(loop.Manual{}),
		loop.WithLogger(logger),
		loop.WithSeed(seed),
	)
	defer game.Close()
	game.Title()
	game.StartGame()

	fireEvery := cfg.Loop.TickRate
	for i := 0; i < flagTicks; i++ {
		if i%fireEvery == 0 {
			snap := game.Snapshot()
			if target, ok := nearestAsteroid(snap); ok {
				logger.Debug("autopilot fire", "tick", i, "distance", physics.Distance(snap.Player, target))
				game.Fire(target)
			}
		}
		if !game.Step() {
			break
		}
	}

	stats := game.Stats()
	header := lipgloss.NewStyle().Bold(true)
	fmt.Fprintln(cmd.OutOrStdout(), header.Render("DESTROID simulation"))
	fmt.Fprintf(cmd.OutOrStdout(), "seed:       %d\n", seed)
	fmt.Fprintf(cmd.OutOrStdout(), "round:      %s\n", stats.RoundID)
	fmt.Fprintf(cmd.OutOrStdout(), "outcome:    %s\n", game.Phase())
	fmt.Fprintf(cmd.OutOrStdout(), "ticks:      %d\n", stats.Ticks)
	fmt.Fprintf(cmd.OutOrStdout(), "shots:      %d\n", stats.ShotsFired)
	fmt.Fprintf(cmd.OutOrStdout(), "spawned:    %d\n", stats.Spawned)
	fmt.Fprintf(cmd.OutOrStdout(), "destroyed:  %d\n", stats.Destroyed)
	fmt.Fprintf(cmd.OutOrStdout(), "culled:     %d\n", stats.Culled)
	fmt.Fprintf(cmd.OutOrStdout(), "score:      %d\n", stats.Score)
	return nil
}

// nearestAsteroid picks the asteroid closest to the ship.
func nearestAsteroid(snap loop.Snapshot) (physics.Vec, bool) {
	var best physics.Vec
	bestDist := -1.0
	for _, a := range snap.Asteroids {
		d := physics.DistanceSquared(snap.Player, a.Pos)
		if bestDist < 0 || d < bestDist {
			best, bestDist = a.Pos, d
		}
	}
	return best, bestDist >= 0
}
