package input

import (
	"bufio"
	"bytes"
	"strconv"
)

// Terminal sequences that switch SGR mouse reporting on and off.
const (
	EnableMouse  = "\x1b[?1000h\x1b[?1006h"
	DisableMouse = "\x1b[?1000l\x1b[?1006l"
)

// EventKind classifies an input event.
type EventKind int

const (
	EventCommand   EventKind = iota // Command holds the key's intent
	EventFire                       // Col and Row hold the clicked cell, 1-based
	EventFireAhead                  // fire along the ship's heading
)

// Event is one parsed key press or click.
type Event struct {
	Kind    EventKind
	Command Command
	Col     int
	Row     int
}

// Parser converts raw terminal bytes to events. Escape sequences split
// across Feed calls are buffered until complete.
type Parser struct {
	pending []byte
}

// Feed parses buf together with any buffered partial sequence.
func (p *Parser) Feed(buf []byte) []Event {
	if len(p.pending) > 0 {
		buf = append(p.pending, buf...)
		p.pending = nil
	}

	var events []Event
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			if ev, ok := keyEvent(b); ok {
				events = append(events, ev)
			}
			continue
		}

		ev, n, complete := parseEscape(buf[i:])
		if !complete {
			p.pending = append([]byte(nil), buf[i:]...)
			break
		}
		if n > 0 {
			if ev != nil {
				events = append(events, *ev)
			}
			i += n - 1
		}
		// n == 0: a bare escape, skip it
	}
	return events
}

// parseEscape inspects a sequence starting at ESC. It returns the event (if
// any), the number of bytes consumed, and false when more bytes are needed.
func parseEscape(buf []byte) (*Event, int, bool) {
	if len(buf) == 1 {
		return nil, 0, false
	}
	if buf[1] != '[' {
		return nil, 0, true
	}
	if len(buf) == 2 {
		return nil, 0, false
	}

	// CSI sequence: ESC [ <code>
	switch buf[2] {
	case 'A':
		return &Event{Kind: EventCommand, Command: CommandUp}, 3, true
	case 'B':
		return &Event{Kind: EventCommand, Command: CommandDown}, 3, true
	case 'C':
		return &Event{Kind: EventCommand, Command: CommandRight}, 3, true
	case 'D':
		return &Event{Kind: EventCommand, Command: CommandLeft}, 3, true
	case '<':
		return parseSGRMouse(buf)
	}
	return nil, 3, true
}

// parseSGRMouse decodes ESC [ < button ; col ; row (M|m).
// Only a left-button press yields an event.
func parseSGRMouse(buf []byte) (*Event, int, bool) {
	end := bytes.IndexAny(buf[3:], "Mm")
	if end < 0 {
		if len(buf) > 32 {
			return nil, len(buf), true // garbage, drop it
		}
		return nil, 0, false
	}
	end += 3

	fields := bytes.Split(buf[3:end], []byte{';'})
	if len(fields) != 3 || buf[end] != 'M' {
		return nil, end + 1, true
	}
	nums := make([]int, 3)
	for i, f := range fields {
		n, err := strconv.Atoi(string(f))
		if err != nil {
			return nil, end + 1, true
		}
		nums[i] = n
	}
	if nums[0] != 0 {
		return nil, end + 1, true
	}
	return &Event{Kind: EventFire, Col: nums[1], Row: nums[2]}, end + 1, true
}

// keyEvent maps a single byte to an event.
func keyEvent(b byte) (Event, bool) {
	var cmd Command
	switch b {
	case 'q', 'Q', 0x03: // Ctrl+C arrives as a byte in raw mode
		cmd = CommandQuit
	case 'w', 'W':
		cmd = CommandUp
	case 'a', 'A':
		cmd = CommandLeft
	case 's', 'S':
		cmd = CommandDown
	case 'd', 'D':
		cmd = CommandRight
	case '\n', '\r':
		cmd = CommandStart
	case 'r', 'R':
		cmd = CommandRestart
	case ' ':
		return Event{Kind: EventFireAhead}, true
	default:
		return Event{}, false
	}
	return Event{Kind: EventCommand, Command: cmd}, true
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch     chan byte
	parser Parser
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The channel is closed when r returns an error (EOF on disconnect).
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadEvents drains all available bytes from the stream without blocking
// and returns the parsed events.
func (s *Stream) ReadEvents() []Event {
	var buf []byte
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}
	if len(buf) == 0 {
		return nil
	}
	return s.parser.Feed(buf)
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}
