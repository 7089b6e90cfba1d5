// Package nettest provides an in-memory session channel for tests.
package nettest

import (
	"encoding/json"
	"sync"

	boardnet "LiveBoard/internal/net"
)

// Frame is one recorded outbound send.
type Frame struct {
	Event   string
	Payload any
}

// Channel records sends and lets a test deliver inbound events by hand.
// Deliver ignores Close on purpose so tests can replay events that race a
// teardown.
type Channel struct {
	mu       sync.Mutex
	handlers map[string]boardnet.Handler
	onClose  func(error)
	sent     []Frame
	closed   bool
}

var _ boardnet.Channel = (*Channel)(nil)

func New() *Channel {
	return &Channel{handlers: make(map[string]boardnet.Handler)}
}

func (c *Channel) Send(event string, payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return boardnet.ErrClosed
	}
	c.sent = append(c.sent, Frame{Event: event, Payload: payload})
	return nil
}

func (c *Channel) On(event string, h boardnet.Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[event] = h
}

func (c *Channel) OnClose(fn func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onClose = fn
}

func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *Channel) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Deliver marshals payload and runs the handler registered for event.
func (c *Channel) Deliver(event string, payload any) {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			panic(err)
		}
		raw = data
	}
	c.DeliverRaw(event, raw)
}

// DeliverRaw runs the handler for event with raw as the payload.
func (c *Channel) DeliverRaw(event string, raw json.RawMessage) {
	c.mu.Lock()
	h := c.handlers[event]
	c.mu.Unlock()
	if h != nil {
		h(raw)
	}
}

// Drop simulates the remote side going away.
func (c *Channel) Drop(err error) {
	c.mu.Lock()
	fn := c.onClose
	c.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}

// Sent returns the recorded frames for event, or all frames when event is "".
func (c *Channel) Sent(event string) []Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := []Frame{}
	for _, f := range c.sent {
		if event == "" || f.Event == event {
			out = append(out, f)
		}
	}
	return out
}
