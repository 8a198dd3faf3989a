package draw

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/destroid/internal/config"
	"github.com/tomz197/destroid/internal/loop"
	"github.com/tomz197/destroid/internal/physics"
)

// Renderer draws a round to a terminal. Frames are built on a Canvas and
// written in one flush when DrawScore completes the frame.
type Renderer struct {
	mu       sync.Mutex
	out      *ChunkWriter
	canvas   *Canvas
	sizeFunc TermSizeFunc
	styles   styles

	arena      float64
	shipSize   float64
	shotSize   float64
	termWidth  int
	termHeight int
}

var _ loop.Renderer = (*Renderer)(nil)

// NewRenderer creates a renderer writing to w. sizeFunc reports the terminal
// size and is polled at the start of every frame.
func NewRenderer(w io.Writer, sizeFunc TermSizeFunc, cfg config.Tuning) *Renderer {
	if sizeFunc == nil {
		sizeFunc = DefaultTermSizeFunc
	}
	r := &Renderer{
		out:      NewChunkWriter(w, 0, 0),
		canvas:   NewScaledCanvas(1, 1, cfg.Arena.Size, cfg.Arena.Size),
		sizeFunc: sizeFunc,
		styles:   newStyles(lipgloss.NewRenderer(w)),
		arena:    cfg.Arena.Size,
		shipSize: cfg.Player.Size,
		shotSize: cfg.Projectile.Size,
	}
	r.updateScreen()
	return r
}

// updateScreen follows terminal resizes. On a change the terminal is cleared
// so the old border does not linger. Caller holds mu.
func (r *Renderer) updateScreen() {
	w, h, err := r.sizeFunc()
	if err != nil || w <= 0 || h <= 0 {
		return
	}
	if w == r.termWidth && h == r.termHeight {
		return
	}
	r.termWidth, r.termHeight = w, h

	renderWidth, renderHeight, offsetCol, offsetRow := FitSquare(w, h)
	r.canvas.Resize(renderWidth, renderHeight)
	r.canvas.SetOffset(offsetCol, offsetRow)
	r.out.SetOffset(offsetCol, offsetRow)
	ClearScreen(r.out)
}

// ClearFrame starts a new frame.
func (r *Renderer) ClearFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateScreen()
	r.canvas.Clear()
}

// DrawPlayer draws the ship as a filled triangle pointing along orientation.
func (r *Renderer) DrawPlayer(pos physics.Vec, orientation int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	half := r.shipSize / 2
	pts := r.canvas.BorrowPoints(3)
	pts[0] = physics.Vec{X: 0, Y: -half}
	pts[1] = physics.Vec{X: -half * 0.75, Y: half}
	pts[2] = physics.Vec{X: half * 0.75, Y: half}
	transform(pts, pos, float64(orientation))
	r.canvas.DrawPolygon(pts, true)
}

// DrawProjectile draws a shot as a small filled square.
func (r *Renderer) DrawProjectile(pos physics.Vec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.canvas.DrawPolygon(square(r.canvas.BorrowPoints(4), pos, r.shotSize, 0), true)
	r.canvas.Set(pos)
}

// DrawAsteroid draws an asteroid as a rotated square outline.
func (r *Renderer) DrawAsteroid(pos physics.Vec, size, rotation float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.canvas.DrawPolygon(square(r.canvas.BorrowPoints(4), pos, size, rotation), false)
}

// DrawScore completes the frame: canvas, border and score overlay.
func (r *Renderer) DrawScore(value int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ClearScreen(r.out)
	r.canvas.Render(r.out)
	r.canvas.RenderBorder(r.out)

	text := r.styles.score.Render(fmt.Sprintf("SCORE %d", value))
	col, row := r.canvas.LogicalToCell(physics.Vec{X: r.arena / 2, Y: r.arena / 12})
	r.out.WriteAt(max(col-lipgloss.Width(text)/2, 1), row, text)
	r.out.Flush()
}

// ShowTitle draws the title screen.
func (r *Renderer) ShowTitle() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateScreen()

	ClearScreen(r.out)
	r.canvas.RenderBorder(r.out)
	r.drawPanel(r.styles.title.Render("DESTROID"),
		r.styles.prompt.Render("PRESS 'ENTER' TO START"),
		r.styles.hint.Render("WASD/ARROWS MOVE  CLICK/SPACE FIRE  Q QUIT"),
	)
	r.out.Flush()
}

// ShowGameOver clears the arena and draws the game-over box.
func (r *Renderer) ShowGameOver(score int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ClearScreen(r.out)
	r.canvas.RenderBorder(r.out)
	r.drawPanel(r.styles.title.Render("GAME OVER"),
		r.styles.score.Render(fmt.Sprintf("SCORE %d", score)),
		r.styles.prompt.Render("PRESS 'R' TO PLAY AGAIN"),
	)
	r.out.Flush()
}

// drawPanel writes a bordered, centered box of lines. Caller holds mu.
func (r *Renderer) drawPanel(lines ...string) {
	body := lipgloss.JoinVertical(lipgloss.Center, interleave(lines, "")...)
	panel := r.styles.panel.Render(body)

	width, height := lipgloss.Width(panel), lipgloss.Height(panel)
	col := max((r.canvas.TerminalWidth()-width)/2+1, 1)
	row := max((r.canvas.TerminalHeight()-height)/2+1, 1)
	for i, line := range strings.Split(panel, "\n") {
		r.out.WriteAt(col, row+i, line)
	}
}

// ToArena maps a clicked terminal cell (1-based, absolute) to arena
// coordinates, clamped to the arena.
func (r *Renderer) ToArena(col, row int) physics.Vec {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.canvas.CellToLogical(col-r.canvas.OffsetCol(), row-r.canvas.OffsetRow())
	return physics.Vec{X: clamp(p.X, 0, r.arena), Y: clamp(p.Y, 0, r.arena)}
}

type styles struct {
	title  lipgloss.Style
	prompt lipgloss.Style
	hint   lipgloss.Style
	score  lipgloss.Style
	panel  lipgloss.Style
}

// newStyles binds styles to the session's renderer so color support is
// detected per output.
func newStyles(lr *lipgloss.Renderer) styles {
	return styles{
		title:  lr.NewStyle().Bold(true).Foreground(lipgloss.Color("208")),
		prompt: lr.NewStyle().Foreground(lipgloss.Color("15")),
		hint:   lr.NewStyle().Foreground(lipgloss.Color("245")),
		score:  lr.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		panel: lr.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(1, 4).
			Align(lipgloss.Center),
	}
}

// square fills pts with the corners of a square of side size centered on
// pos and rotated by deg degrees.
func square(pts []physics.Vec, pos physics.Vec, size, deg float64) []physics.Vec {
	h := size / 2
	pts[0] = physics.Vec{X: -h, Y: -h}
	pts[1] = physics.Vec{X: h, Y: -h}
	pts[2] = physics.Vec{X: h, Y: h}
	pts[3] = physics.Vec{X: -h, Y: h}
	transform(pts, pos, deg)
	return pts
}

// transform rotates local points clockwise by deg (screen y grows down)
// and translates them to pos.
func transform(pts []physics.Vec, pos physics.Vec, deg float64) {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	for i, p := range pts {
		pts[i] = physics.Vec{
			X: pos.X + p.X*cos - p.Y*sin,
			Y: pos.Y + p.X*sin + p.Y*cos,
		}
	}
}

func interleave(lines []string, sep string) []string {
	out := make([]string, 0, len(lines)*2-1)
	for i, l := range lines {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, l)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
