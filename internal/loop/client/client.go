// Package client hosts one player's game on a terminal: it polls the input
// stream, forwards commands to a loop.Game and lets the engine draw through
// a draw.Renderer.
package client

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/destroid/internal/config"
	"github.com/tomz197/destroid/internal/draw"
	"github.com/tomz197/destroid/internal/input"
	"github.com/tomz197/destroid/internal/loop"
)

// inputPollInterval is how often pending input bytes are drained.
const inputPollInterval = 5 * time.Millisecond

// ErrIdle is returned by Run when no input arrived within the idle timeout.
var ErrIdle = errors.New("client: idle timeout")

// Client handles rendering and input for a single connection.
type Client struct {
	writer    io.Writer
	renderer  *draw.Renderer
	stream    *input.Stream
	logger    *log.Logger
	opts      Options
	lastInput time.Time
}

// Options configures the client.
type Options struct {
	Tuning       config.Tuning
	TermSizeFunc draw.TermSizeFunc
	Logger       *log.Logger
	Seed         int64         // 0 picks a time-based seed
	IdleTimeout  time.Duration // 0 disables the idle disconnect
}

// New creates a client reading keys from r and drawing to w.
func New(r *bufio.Reader, w io.Writer, opts Options) *Client {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	return &Client{
		writer:   w,
		renderer: draw.NewRenderer(w, opts.TermSizeFunc, opts.Tuning),
		stream:   input.StartStream(r),
		logger:   opts.Logger,
		opts:     opts,
	}
}

// Run shows the title screen and plays rounds until the player quits, the
// input ends, the client idles out or ctx is cancelled. It returns the
// statistics of the last round.
func (c *Client) Run(ctx context.Context) (loop.RoundStats, error) {
	io.WriteString(c.writer, input.EnableMouse)
	draw.HideCursor(c.writer)
	defer func() {
		io.WriteString(c.writer, input.DisableMouse)
		draw.ClearScreen(c.writer)
		draw.ShowCursor(c.writer)
	}()

	game := loop.NewGame(c.opts.Tuning,
		loop.WithContext(ctx),
		loop.WithRenderer(c.renderer),
		loop.WithLogger(c.logger),
		loop.WithSeed(c.opts.Seed),
	)
	defer game.Close()
	game.Title()

	ticker := time.NewTicker(inputPollInterval)
	defer ticker.Stop()
	c.lastInput = time.Now()

	for {
		select {
		case <-ctx.Done():
			return game.Stats(), nil
		case <-ticker.C:
		}

		events := c.stream.ReadEvents()
		if len(events) > 0 {
			c.lastInput = time.Now()
		}
		for _, ev := range events {
			if !c.dispatch(game, ev) {
				return game.Stats(), nil
			}
		}

		if c.stream.Closed() {
			return game.Stats(), nil
		}
		if c.opts.IdleTimeout > 0 && time.Since(c.lastInput) > c.opts.IdleTimeout {
			return game.Stats(), ErrIdle
		}
	}
}

// dispatch applies one input event. It returns false when the player quits.
func (c *Client) dispatch(game *loop.Game, ev input.Event) bool {
	switch ev.Kind {
	case input.EventFire:
		game.Fire(c.renderer.ToArena(ev.Col, ev.Row))
	case input.EventFireAhead:
		game.FireAhead()
	case input.EventCommand:
		switch ev.Command {
		case input.CommandQuit:
			return false
		case input.CommandStart:
			game.StartGame()
		case input.CommandRestart:
			game.Restart(ev.Command)
		default:
			game.Move(ev.Command)
		}
	}
	return true
}
