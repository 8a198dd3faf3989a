package client

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/destroid/internal/config"
	"github.com/tomz197/destroid/internal/input"
)

func fixedSize() (int, int, error) { return 100, 40, nil }

func newTestClient(r io.Reader, w io.Writer, idle time.Duration) *Client {
	return New(bufio.NewReader(r), w, Options{
		Tuning:       config.Default(),
		TermSizeFunc: fixedSize,
		Seed:         1,
		IdleTimeout:  idle,
	})
}

func runWithTimeout(t *testing.T, c *Client, ctx context.Context) error {
	t.Helper()
	type result struct{ err error }
	done := make(chan result, 1)
	go func() {
		_, err := c.Run(ctx)
		done <- result{err}
	}()
	select {
	case res := <-done:
		return res.err
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func TestRunStartsRoundAndEndsOnEOF(t *testing.T) {
	var out bytes.Buffer
	c := newTestClient(strings.NewReader("\r"), &out, 0)

	stats, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.RoundID == "" {
		t.Fatal("enter did not start a round")
	}

	screen := out.String()
	if !strings.HasPrefix(screen, input.EnableMouse) {
		t.Error("mouse reporting not enabled first")
	}
	if !strings.Contains(screen, "DESTROID") {
		t.Error("title screen not drawn")
	}
	if !strings.HasSuffix(screen, "\033[?25h") {
		t.Error("cursor not restored")
	}
}

func TestRunQuitBeforeStart(t *testing.T) {
	c := newTestClient(strings.NewReader("q\r"), io.Discard, 0)
	stats, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.RoundID != "" {
		t.Fatal("round started after quit")
	}
}

func TestRunIdleTimeout(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	c := newTestClient(pr, io.Discard, 20*time.Millisecond)

	if err := runWithTimeout(t, c, context.Background()); !errors.Is(err, ErrIdle) {
		t.Fatalf("got %v, want ErrIdle", err)
	}
}

func TestRunStopsOnContext(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	c := newTestClient(pr, io.Discard, 0)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)
	if err := runWithTimeout(t, c, ctx); err != nil {
		t.Fatalf("got %v, want nil", err)
	}
}
