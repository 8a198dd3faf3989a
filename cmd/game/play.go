package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tomz197/destroid/internal/draw"
	"github.com/tomz197/destroid/internal/loop/client"
)

var (
	flagFPS     int
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Play DESTROID in the current terminal.

Controls:
  WASD / arrows   Move
  Click / space   Fire
  Enter           Start
  R               Play again after game over
  Q / Ctrl+C      Quit

Terminal output is owned by the game, so logs are discarded unless
--log-file is given.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagFPS, "fps", 0, "tick rate override (0 = use config)")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "write logs to this file")
	// Bare "destroid" plays too, so it accepts the same flags.
	rootCmd.Flags().AddFlagSet(playCmd.Flags())
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadTuning()
	if err != nil {
		return err
	}
	if flagFPS > 0 {
		cfg.Loop.TickRate = flagFPS
	}

	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut, "destroid")
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.New(bufio.NewReader(os.Stdin), os.Stdout, client.Options{
		Tuning:       cfg,
		TermSizeFunc: draw.DefaultTermSizeFunc,
		Logger:       logger,
		Seed:         flagSeed,
	})
	stats, err := c.Run(ctx)
	if err != nil && !errors.Is(err, client.ErrIdle) {
		return fmt.Errorf("game error: %w", err)
	}
	logger.Info("session ended", "round", stats.RoundID, "score", stats.Score)
	return nil
}
