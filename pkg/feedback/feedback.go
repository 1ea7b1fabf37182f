package feedback

import (
	"sync"
)

// Notifier is the transient notification channel every resource manager
// reports through. Notifications are fire-and-forget and carry no entity
// state; they only tell the operator whether the last action landed.
type Notifier interface {
	Success(message string)
	Error(message string)
}

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Notification struct {
	Kind    Kind
	Message string
}

// Memory keeps the most recent notifications in a bounded ring. The CLI
// drains it after each command; tests inspect it directly.
type Memory struct {
	mu    sync.Mutex
	limit int
	items []Notification
}

func NewMemory(limit int) *Memory {
	if limit <= 0 {
		limit = 50
	}
	return &Memory{limit: limit}
}

func (m *Memory) Success(message string) {
	m.push(Notification{Kind: KindSuccess, Message: message})
}

func (m *Memory) Error(message string) {
	m.push(Notification{Kind: KindError, Message: message})
}

func (m *Memory) push(n Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, n)
	if len(m.items) > m.limit {
		m.items = m.items[len(m.items)-m.limit:]
	}
}

// Drain returns all buffered notifications, oldest first, and clears the ring.
func (m *Memory) Drain() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.items
	m.items = nil
	return out
}

// Last returns the most recent notification, if any.
func (m *Memory) Last() (Notification, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.items) == 0 {
		return Notification{}, false
	}
	return m.items[len(m.items)-1], true
}

// Discard drops everything it is given. Useful as a default.
type Discard struct{}

func (Discard) Success(string) {}
func (Discard) Error(string)   {}
