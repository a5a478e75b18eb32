package services

import (
	"log/slog"
	"sync"
	"time"
)

type AuthEventKind string

const (
	AuthSignedIn        AuthEventKind = "signed_in"
	AuthSignedOut       AuthEventKind = "signed_out"
	AuthPasswordChanged AuthEventKind = "password_changed"
)

// AuthEvent is one identity change: sign-in, sign-out or password change
type AuthEvent struct {
	Kind   AuthEventKind `json:"kind"`
	UserID string        `json:"user_id"`
	Email  string        `json:"email,omitempty"`
	At     time.Time     `json:"at"`
}

// AuthEvents broadcasts identity changes to subscribers for as long as they
// stay subscribed. Subscribers that fall behind miss events rather than
// blocking the publisher.
type AuthEvents struct {
	mu     sync.Mutex
	subs   map[int]chan AuthEvent
	nextID int
	closed bool
}

func NewAuthEvents() *AuthEvents {
	return &AuthEvents{subs: make(map[int]chan AuthEvent)}
}

// Subscribe registers a listener. The returned cancel function removes it;
// the channel is closed on cancel and on Cleanup.
func (e *AuthEvents) Subscribe() (<-chan AuthEvent, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		ch := make(chan AuthEvent)
		close(ch)
		return ch, func() {}
	}

	id := e.nextID
	e.nextID++
	ch := make(chan AuthEvent, 16)
	e.subs[id] = ch

	cancel := func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if sub, ok := e.subs[id]; ok {
			delete(e.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber
func (e *AuthEvents) Publish(event AuthEvent) {
	if event.At.IsZero() {
		event.At = time.Now()
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	for _, ch := range e.subs {
		select {
		case ch <- event:
		default:
			slog.Warn("Auth event dropped for slow subscriber", "kind", event.Kind, "user_id", event.UserID)
		}
	}
}

// Cleanup closes every subscription. Safe to call with no subscribers and
// safe to call more than once.
func (e *AuthEvents) Cleanup() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	for id, ch := range e.subs {
		delete(e.subs, id)
		close(ch)
	}
}
