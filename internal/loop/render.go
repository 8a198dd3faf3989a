package loop

import "github.com/tomz197/destroid/internal/physics"

// Renderer receives draw requests from the engine. Calls happen on the tick
// goroutine while the engine lock is held, so implementations must not call
// back into the Game.
type Renderer interface {
	ClearFrame()
	DrawPlayer(pos physics.Vec, orientation int)
	DrawProjectile(pos physics.Vec)
	DrawAsteroid(pos physics.Vec, size, rotation float64)
	// DrawScore is the last call of a tick and completes the frame.
	DrawScore(value int)
	ShowTitle()
	ShowGameOver(score int)
}

// NopRenderer discards all draw requests.
type NopRenderer struct{}

var _ Renderer = NopRenderer{}

func (NopRenderer) ClearFrame()                                {}
func (NopRenderer) DrawPlayer(physics.Vec, int)                {}
func (NopRenderer) DrawProjectile(physics.Vec)                 {}
func (NopRenderer) DrawAsteroid(physics.Vec, float64, float64) {}
func (NopRenderer) DrawScore(int)                              {}
func (NopRenderer) ShowTitle()                                 {}
func (NopRenderer) ShowGameOver(int)                           {}
