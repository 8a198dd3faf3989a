package entity

import (
	"github.com/tomz197/destroid/internal/input"
	"github.com/tomz197/destroid/internal/physics"
)

var _ Entity = (*Player)(nil)

// Player is the ship. It moves in fixed steps along one axis per tick.
type Player struct {
	Pos         physics.Vec
	Orientation int // degrees: up=0, right=90, down=180, left=270
	Speed       float64
	Size        float64

	arena   float64
	pending input.Command
}

// NewPlayer creates a player at the center of an arena of the given size.
func NewPlayer(arena, speed, size float64) *Player {
	p := &Player{Speed: speed, Size: size, arena: arena}
	p.Reset()
	return p
}

// Reset moves the player back to the arena center facing up.
func (p *Player) Reset() {
	p.Pos = physics.Vec{X: p.arena / 2, Y: p.arena / 2}
	p.Orientation = 0
	p.pending = input.CommandNone
}

// Steer sets the command applied by the next Update.
func (p *Player) Steer(cmd input.Command) {
	p.pending = cmd
}

// Update applies the pending command once and clears it.
// Orientation follows the command even when the move is blocked by the border.
func (p *Player) Update() {
	cmd := p.pending
	p.pending = input.CommandNone

	orientation, ok := cmd.Orientation()
	if !ok {
		return
	}
	p.Orientation = orientation

	margin := 2 * p.Speed
	switch cmd {
	case input.CommandUp:
		if p.Pos.Y-margin > 0 {
			p.Pos.Y -= p.Speed
		}
	case input.CommandDown:
		if p.Pos.Y+margin < p.arena {
			p.Pos.Y += p.Speed
		}
	case input.CommandLeft:
		if p.Pos.X-margin > 0 {
			p.Pos.X -= p.Speed
		}
	case input.CommandRight:
		if p.Pos.X+margin < p.arena {
			p.Pos.X += p.Speed
		}
	}
}

// Heading returns the unit vector the ship faces.
func (p *Player) Heading() physics.Vec {
	switch p.Orientation {
	case 90:
		return physics.Vec{X: 1}
	case 180:
		return physics.Vec{Y: 1}
	case 270:
		return physics.Vec{X: -1}
	default:
		return physics.Vec{Y: -1}
	}
}

func (p *Player) ID() ID { return 0 }

func (p *Player) Expired() bool { return false }

func (p *Player) Bounds() physics.Box { return physics.SquareBox(p.Pos, p.Size) }
