// Package input turns terminal bytes into game commands and provides the
// single-slot mailbox the engine reads once per tick.
package input

// Command is a discrete player intent.
type Command int

const (
	CommandNone Command = iota
	CommandUp
	CommandLeft
	CommandDown
	CommandRight
	CommandStart
	CommandRestart
	CommandQuit
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "none"
	case CommandUp:
		return "up"
	case CommandLeft:
		return "left"
	case CommandDown:
		return "down"
	case CommandRight:
		return "right"
	case CommandStart:
		return "start"
	case CommandRestart:
		return "restart"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// IsMovement reports whether c translates the player.
func (c Command) IsMovement() bool {
	switch c {
	case CommandUp, CommandLeft, CommandDown, CommandRight:
		return true
	}
	return false
}

// Orientation returns the heading in degrees for a movement command
// (up=0, right=90, down=180, left=270) and false for anything else.
func (c Command) Orientation() (int, bool) {
	switch c {
	case CommandUp:
		return 0, true
	case CommandRight:
		return 90, true
	case CommandDown:
		return 180, true
	case CommandLeft:
		return 270, true
	}
	return 0, false
}
