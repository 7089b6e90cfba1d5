package relay

import (
	"encoding/json"
	"log"
	"net/http"

	"LiveBoard/internal/config"
	"github.com/coder/websocket"
)

const maxRoomName = 64

// Handler returns the relay's HTTP routes.
func Handler(h *Hub) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", serveWS(h))
	mux.HandleFunc("/healthz", serveHealth(h))
	return mux
}

func serveWS(h *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID := r.URL.Query().Get("room")
		if roomID == "" {
			roomID = config.DefaultRoom
		}
		if len(roomID) > maxRoomName {
			http.Error(w, "room name too long", http.StatusBadRequest)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// Boards are shared on a LAN by link; any origin may join.
			InsecureSkipVerify: true,
		})
		if err != nil {
			log.Printf("[RELAY] accept: %v", err)
			return
		}
		conn.SetReadLimit(config.MaxFrameBytes)

		c := NewClient(conn, h, roomID)
		h.Register(c)
		c.Start()
	}
}

func serveHealth(h *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(h.Stats()); err != nil {
			log.Printf("[RELAY] healthz: %v", err)
		}
	}
}
