package net

import (
	"encoding/json"
	"errors"
)

var (
	ErrClosed     = errors.New("channel closed")
	ErrBufferFull = errors.New("send buffer full")
)

// Handler receives the raw payload of an inbound event.
type Handler func(payload json.RawMessage)

// Channel is a bidirectional named-event link to the shared session.
// Sends are fire-and-forget: a send on a closed or congested channel is
// dropped and reported through the returned error only.
type Channel interface {
	Send(event string, payload any) error
	On(event string, h Handler)
	// OnClose is called once if the remote side goes away. It is not called
	// after a local Close.
	OnClose(func(error))
	Close() error
}

// Dispatcher runs fn on the goroutine that owns board state. Inbound events
// are always delivered through one.
type Dispatcher func(fn func())

// Immediate runs fn on the calling goroutine.
func Immediate(fn func()) { fn() }
