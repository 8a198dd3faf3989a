package input

import "sync"

// Mailbox holds at most one pending movement command. A newer Put
// overwrites an unread one; Take reads and clears the slot.
// It is safe for concurrent use.
type Mailbox struct {
	mu  sync.Mutex
	cmd Command
}

// Put stores cmd, replacing any unread command.
func (m *Mailbox) Put(cmd Command) {
	m.mu.Lock()
	m.cmd = cmd
	m.mu.Unlock()
}

// Take returns the pending command and resets the slot to CommandNone.
func (m *Mailbox) Take() Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd := m.cmd
	m.cmd = CommandNone
	return cmd
}
