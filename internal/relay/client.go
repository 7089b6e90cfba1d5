package relay

import (
	"context"
	"log"
	"sync"
	"time"

	"LiveBoard/internal/config"
	"github.com/coder/websocket"
)

// Client is one participant connection with its own write goroutine.
type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	hub    *Hub
	roomID string

	// Assigned by the hub on admission; only the hub goroutine writes them.
	// The pumps read id through ID for logging.
	idMu  sync.RWMutex
	id    string
	color string

	// Rate limiting
	messageCount int
	rateLimitMu  sync.Mutex
	lastReset    time.Time

	// Lifecycle
	ctx         context.Context
	cancel      context.CancelFunc
	closed      bool
	closeMu     sync.Mutex
	closeStatus websocket.StatusCode
	closeReason string
}

func NewClient(conn *websocket.Conn, hub *Hub, roomID string) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		conn:        conn,
		send:        make(chan []byte, config.ClientSendBufferSize),
		hub:         hub,
		roomID:      roomID,
		lastReset:   time.Now(),
		ctx:         ctx,
		cancel:      cancel,
		closeStatus: websocket.StatusNormalClosure,
	}
}

// ID is the participant id, empty until admitted.
func (c *Client) ID() string {
	c.idMu.RLock()
	defer c.idMu.RUnlock()
	return c.id
}

func (c *Client) setID(id string) {
	c.idMu.Lock()
	defer c.idMu.Unlock()
	c.id = id
}

// Start begins the client's read and write pumps.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

func (c *Client) writePump() {
	ticker := time.NewTicker(config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				c.closeMu.Lock()
				status, reason := c.closeStatus, c.closeReason
				c.closeMu.Unlock()
				_ = c.conn.Close(status, reason)
				return
			}

			writeCtx, cancel := context.WithTimeout(c.ctx, config.WriteTimeout)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				log.Printf("[RELAY] write error (room=%s, participant=%s): %v", c.roomID, c.ID(), err)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(c.ctx, config.WriteTimeout)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				log.Printf("[RELAY] ping error (room=%s, participant=%s): %v", c.roomID, c.ID(), err)
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.Close()
	}()

	for {
		_, message, err := c.conn.Read(c.ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && c.ctx.Err() == nil {
				log.Printf("[RELAY] read error (room=%s, participant=%s): %v", c.roomID, c.ID(), err)
			}
			return
		}

		if !c.checkRateLimit() {
			log.Printf("[RELAY] rate limit exceeded (room=%s, participant=%s)", c.roomID, c.ID())
			continue
		}

		c.hub.Inbound(c, message)
	}
}

func (c *Client) checkRateLimit() bool {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	now := time.Now()
	if now.Sub(c.lastReset) > config.RateLimitWindow {
		c.messageCount = 0
		c.lastReset = now
	}

	c.messageCount++
	return c.messageCount <= config.MaxMessagesPerSecond
}

// Send queues a frame. A client whose buffer is full is disconnected.
func (c *Client) Send(message []byte) bool {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.send <- message:
		return true
	default:
		log.Printf("[RELAY] send buffer full, closing slow client (room=%s, participant=%s)", c.roomID, c.ID())
		go c.Close()
		return false
	}
}

// Reject sends a final frame and closes the connection once it is written.
func (c *Client) Reject(message []byte, status websocket.StatusCode, reason string) {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()

	if c.closed {
		return
	}
	select {
	case c.send <- message:
	default:
	}
	c.closed = true
	c.closeStatus = status
	c.closeReason = reason
	close(c.send)
}

// Close shuts the connection down immediately.
func (c *Client) Close() {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()

	if c.closed {
		c.cancel()
		return
	}

	c.closed = true
	c.cancel()
	close(c.send)
	_ = c.conn.Close(websocket.StatusNormalClosure, "")
}
