package net

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"LiveBoard/internal/config"
	"github.com/gorilla/websocket"
)

// WSChannel is a Channel over a gorilla websocket connection. A reader
// goroutine decodes frames and hands them to the dispatcher; a writer
// goroutine owns all writes.
type WSChannel struct {
	conn     *websocket.Conn
	dispatch Dispatcher

	send chan []byte
	done chan struct{}

	mu       sync.RWMutex
	handlers map[string]Handler
	onClose  func(error)

	closed     atomic.Bool // connection is done; sends are refused
	localClose atomic.Bool // Close was called by us; nothing more is delivered
	closeOnce  sync.Once
	startOnce  sync.Once
}

// Dial connects to a relay websocket URL.
func Dial(ctx context.Context, url string, dispatch Dispatcher) (*WSChannel, error) {
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: config.DialTimeout,
	}
	conn, resp, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %w (status %d)", url, err, resp.StatusCode)
		}
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return NewWSChannel(conn, dispatch), nil
}

// NewWSChannel starts the write pump on conn. Reading begins with Start so
// handlers can be registered first.
func NewWSChannel(conn *websocket.Conn, dispatch Dispatcher) *WSChannel {
	if dispatch == nil {
		dispatch = Immediate
	}
	c := &WSChannel{
		conn:     conn,
		dispatch: dispatch,
		send:     make(chan []byte, config.ClientSendBufferSize),
		done:     make(chan struct{}),
		handlers: make(map[string]Handler),
	}
	go c.writePump()
	return c
}

// Start begins delivering inbound events.
func (c *WSChannel) Start() {
	c.startOnce.Do(func() {
		go c.readPump()
	})
}

func (c *WSChannel) On(event string, h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[event] = h
}

func (c *WSChannel) OnClose(fn func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onClose = fn
}

// Send queues an event. It never blocks.
func (c *WSChannel) Send(event string, payload any) error {
	if c.closed.Load() {
		return ErrClosed
	}
	data, err := Encode(event, payload)
	if err != nil {
		return err
	}
	select {
	case <-c.done:
		return ErrClosed
	case c.send <- data:
		return nil
	default:
		return ErrBufferFull
	}
}

// Close tears the channel down. Events already read but not yet run by the
// dispatcher are discarded.
func (c *WSChannel) Close() error {
	c.localClose.Store(true)
	c.shutdown()
	return nil
}

func (c *WSChannel) shutdown() {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		close(c.done)
	})
}

func (c *WSChannel) handler(event string) Handler {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.handlers[event]
}

func (c *WSChannel) readPump() {
	c.conn.SetReadLimit(config.MaxFrameBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(config.PongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(config.PongTimeout))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.remoteGone(err)
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(config.PongTimeout))

		env, err := Decode(data)
		if err != nil {
			log.Printf("[SYNC] dropping frame: %v", err)
			continue
		}
		h := c.handler(env.Type)
		if h == nil {
			log.Printf("[SYNC] no handler for %q", env.Type)
			continue
		}
		payload := env.Payload
		c.dispatch(func() {
			// Frames read before a remote close still run; only a local
			// Close discards what the dispatcher has queued.
			if c.localClose.Load() {
				return
			}
			h(payload)
		})
	}
}

func (c *WSChannel) remoteGone(err error) {
	first := false
	c.closeOnce.Do(func() {
		first = true
		c.closed.Store(true)
		close(c.done)
	})
	if !first {
		return
	}
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		log.Printf("[SYNC] session closed the connection")
	} else {
		log.Printf("[SYNC] connection lost: %v", err)
	}

	c.mu.RLock()
	fn := c.onClose
	c.mu.RUnlock()
	if fn == nil {
		return
	}
	c.dispatch(func() {
		if c.localClose.Load() {
			return
		}
		fn(err)
	})
}

func (c *WSChannel) writePump() {
	ticker := time.NewTicker(config.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Printf("[SYNC] write error: %v", err)
				c.remoteGone(err)
				return
			}

		case <-ticker.C:
			deadline := time.Now().Add(config.WriteTimeout)
			if err := c.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				log.Printf("[SYNC] ping error: %v", err)
				c.remoteGone(err)
				return
			}

		case <-c.done:
			deadline := time.Now().Add(config.WriteTimeout)
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			_ = c.conn.WriteControl(websocket.CloseMessage, msg, deadline)
			return
		}
	}
}
