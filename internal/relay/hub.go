package relay

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"LiveBoard/internal/config"
	boardnet "LiveBoard/internal/net"
	"LiveBoard/internal/state"
	"github.com/coder/websocket"
	"github.com/google/uuid"
)

type eventKind int

const (
	eventRegister eventKind = iota
	eventUnregister
	eventMessage
)

// hubEvent goes through a single queue so that a client's join, frames and
// leave are handled in the order they happened.
type hubEvent struct {
	kind   eventKind
	client *Client
	data   []byte
}

type room struct {
	id      string
	members []*Client
}

func (r *room) index(c *Client) int {
	for i, m := range r.members {
		if m == c {
			return i
		}
	}
	return -1
}

// Hub owns every room. All room state is mutated on the Run goroutine; mu
// only guards reads from Stats.
type Hub struct {
	maxParticipants int

	rooms  map[string]*room
	events chan hubEvent
	done   chan struct{}

	mu sync.RWMutex
}

// Stats is a point-in-time view for health checks.
type Stats struct {
	Rooms       int `json:"rooms"`
	Connections int `json:"connections"`
}

func NewHub(maxParticipants int) *Hub {
	if maxParticipants < 1 {
		maxParticipants = config.DefaultMaxParticipants
	}
	return &Hub{
		maxParticipants: maxParticipants,
		rooms:           make(map[string]*room),
		events:          make(chan hubEvent, config.HubInboundBufferSize),
		done:            make(chan struct{}),
	}
}

// Run processes hub events until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case ev := <-h.events:
			switch ev.kind {
			case eventRegister:
				h.admit(ev.client)
			case eventUnregister:
				h.leave(ev.client)
			case eventMessage:
				h.handleMessage(ev.client, ev.data)
			}
		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

func (h *Hub) Register(c *Client) {
	h.post(hubEvent{kind: eventRegister, client: c})
}

func (h *Hub) Unregister(c *Client) {
	h.post(hubEvent{kind: eventUnregister, client: c})
}

func (h *Hub) Inbound(c *Client, data []byte) {
	h.post(hubEvent{kind: eventMessage, client: c, data: data})
}

func (h *Hub) post(ev hubEvent) {
	select {
	case h.events <- ev:
	case <-h.done:
	}
}

func (h *Hub) Stats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s := Stats{Rooms: len(h.rooms)}
	for _, r := range h.rooms {
		s.Connections += len(r.members)
	}
	return s
}

func (h *Hub) admit(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r := h.rooms[c.roomID]
	if r == nil {
		r = &room{id: c.roomID}
	}

	if len(r.members) >= h.maxParticipants {
		log.Printf("[RELAY] room %s is full (%d), rejecting join", r.id, len(r.members))
		if frame, err := boardnet.Encode(boardnet.EventRoomFull, nil); err == nil {
			c.Reject(frame, websocket.StatusTryAgainLater, "room full")
		}
		return
	}

	inUse := make(map[string]bool, len(r.members))
	for _, m := range r.members {
		inUse[m.color] = true
	}
	c.setID(uuid.NewString())
	c.color = pickColor(inUse, len(r.members))

	h.sendTo(c, boardnet.EventInit, boardnet.InitPayload{Color: c.color, ID: c.id})
	joined := state.Participant{ID: c.id, Color: c.color}
	for _, m := range r.members {
		h.sendTo(c, boardnet.EventUserJoined, state.Participant{ID: m.id, Color: m.color})
		h.sendTo(m, boardnet.EventUserJoined, joined)
	}

	r.members = append(r.members, c)
	h.rooms[r.id] = r
	log.Printf("[RELAY] %s joined room %s as %s (%d/%d)", c.id, r.id, c.color, len(r.members), h.maxParticipants)
}

func (h *Hub) leave(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r := h.rooms[c.roomID]
	if r == nil {
		return
	}
	i := r.index(c)
	if i < 0 {
		return
	}
	r.members = append(r.members[:i], r.members[i+1:]...)
	log.Printf("[RELAY] %s left room %s (%d/%d)", c.id, r.id, len(r.members), h.maxParticipants)

	if len(r.members) == 0 {
		delete(h.rooms, r.id)
		return
	}
	h.broadcast(r, nil, boardnet.EventUserLeft, boardnet.UserLeftPayload{ID: c.id})
}

func (h *Hub) handleMessage(c *Client, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	r := h.rooms[c.roomID]
	if r == nil || r.index(c) < 0 {
		return
	}

	env, err := boardnet.Decode(data)
	if err != nil {
		log.Printf("[RELAY] bad frame from %s: %v", c.id, err)
		return
	}

	switch env.Type {
	case boardnet.EventDraw:
		var ev state.DrawEvent
		if err := json.Unmarshal(env.Payload, &ev); err != nil {
			log.Printf("[RELAY] bad draw from %s: %v", c.id, err)
			return
		}
		if err := ev.Validate(); err != nil {
			log.Printf("[RELAY] rejected draw from %s: %v", c.id, err)
			return
		}
		ev.Author = c.id
		h.broadcast(r, c, boardnet.EventDraw, ev)

	case boardnet.EventClear:
		h.broadcast(r, c, boardnet.EventClear, nil)

	default:
		log.Printf("[RELAY] ignoring %q from %s", env.Type, c.id)
	}
}

// broadcast sends to every member of r except skip.
func (h *Hub) broadcast(r *room, skip *Client, event string, payload any) {
	frame, err := boardnet.Encode(event, payload)
	if err != nil {
		log.Printf("[RELAY] encode %s: %v", event, err)
		return
	}
	for _, m := range r.members {
		if m != skip {
			m.Send(frame)
		}
	}
}

func (h *Hub) sendTo(c *Client, event string, payload any) {
	frame, err := boardnet.Encode(event, payload)
	if err != nil {
		log.Printf("[RELAY] encode %s: %v", event, err)
		return
	}
	c.Send(frame)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, r := range h.rooms {
		for _, m := range r.members {
			m.Close()
		}
		delete(h.rooms, id)
	}
}
