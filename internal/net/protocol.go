package net

import (
	"encoding/json"
	"fmt"
)

// Event names exchanged with the session relay.
const (
	EventInit       = "init"
	EventUserJoined = "user_joined"
	EventUserLeft   = "user_left"
	EventDraw       = "draw"
	EventClear      = "clear"
	EventRoomFull   = "room_full"
)

// Envelope is one websocket frame.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// InitPayload assigns the local participant its color (and id, when the
// relay provides one).
type InitPayload struct {
	Color string `json:"color"`
	ID    string `json:"id,omitempty"`
}

type UserLeftPayload struct {
	ID string `json:"id"`
}

// Encode wraps payload in an envelope. A nil payload is sent as an empty
// object.
func Encode(event string, payload any) ([]byte, error) {
	if payload == nil {
		payload = struct{}{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", event, err)
	}
	return json.Marshal(Envelope{Type: event, Payload: raw})
}

// Decode parses a frame.
func Decode(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode frame: %w", err)
	}
	if env.Type == "" {
		return Envelope{}, fmt.Errorf("decode frame: missing type")
	}
	return env, nil
}
