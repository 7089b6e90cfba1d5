package net

import (
	"encoding/json"
	"log"

	"LiveBoard/internal/state"
)

// Handlers are the inbound notifications a SyncClient delivers, in the order
// the channel delivers them. Nil handlers are skipped.
type Handlers struct {
	OnInit       func(color, id string)
	OnUserJoined func(p state.Participant)
	OnUserLeft   func(id string)
	OnDraw       func(ev state.DrawEvent)
	OnClear      func()
	OnRoomFull   func()
	OnDisconnect func(err error)
}

// SyncClient is the typed boundary between the board and one session
// channel. A nil *SyncClient drops every send.
type SyncClient struct {
	ch Channel
}

// NewSyncClient registers h on ch.
func NewSyncClient(ch Channel, h Handlers) *SyncClient {
	s := &SyncClient{ch: ch}

	ch.On(EventInit, func(raw json.RawMessage) {
		var p InitPayload
		if !decodePayload(EventInit, raw, &p) || p.Color == "" {
			return
		}
		if h.OnInit != nil {
			h.OnInit(p.Color, p.ID)
		}
	})
	ch.On(EventUserJoined, func(raw json.RawMessage) {
		var p state.Participant
		if !decodePayload(EventUserJoined, raw, &p) || p.ID == "" {
			return
		}
		if h.OnUserJoined != nil {
			h.OnUserJoined(p)
		}
	})
	ch.On(EventUserLeft, func(raw json.RawMessage) {
		var p UserLeftPayload
		if !decodePayload(EventUserLeft, raw, &p) || p.ID == "" {
			return
		}
		if h.OnUserLeft != nil {
			h.OnUserLeft(p.ID)
		}
	})
	ch.On(EventDraw, func(raw json.RawMessage) {
		var ev state.DrawEvent
		if !decodePayload(EventDraw, raw, &ev) {
			return
		}
		if h.OnDraw != nil {
			h.OnDraw(ev)
		}
	})
	ch.On(EventClear, func(json.RawMessage) {
		if h.OnClear != nil {
			h.OnClear()
		}
	})
	ch.On(EventRoomFull, func(json.RawMessage) {
		if h.OnRoomFull != nil {
			h.OnRoomFull()
		}
	})
	if h.OnDisconnect != nil {
		ch.OnClose(h.OnDisconnect)
	}

	return s
}

// SendDraw announces a stroke. Failures are logged and dropped.
func (s *SyncClient) SendDraw(ev state.DrawEvent) {
	s.send(EventDraw, ev)
}

// SendClear announces a local clear.
func (s *SyncClient) SendClear() {
	s.send(EventClear, nil)
}

// Close closes the underlying channel; callbacks stop immediately.
func (s *SyncClient) Close() {
	if s == nil || s.ch == nil {
		return
	}
	if err := s.ch.Close(); err != nil {
		log.Printf("[SYNC] close: %v", err)
	}
}

func (s *SyncClient) send(event string, payload any) {
	if s == nil || s.ch == nil {
		log.Printf("[SYNC] no session, dropping %s", event)
		return
	}
	if err := s.ch.Send(event, payload); err != nil {
		log.Printf("[SYNC] dropping %s: %v", event, err)
	}
}

func decodePayload(event string, raw json.RawMessage, v any) bool {
	if len(raw) == 0 {
		log.Printf("[SYNC] %s without payload", event)
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		log.Printf("[SYNC] malformed %s payload: %v", event, err)
		return false
	}
	return true
}
