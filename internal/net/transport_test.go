package net_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	boardnet "LiveBoard/internal/net"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startServer runs a websocket endpoint that hands each accepted conn to fn.
func startServer(t *testing.T, fn func(*websocket.Conn)) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		fn(conn)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

// queue is a dispatcher that holds callbacks until run is called, the way
// fyne.Do defers work to the UI goroutine.
type queue struct {
	mu    sync.Mutex
	items []func()
}

func (q *queue) dispatch(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, fn)
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *queue) run() {
	q.mu.Lock()
	items := q.items
	q.items = nil
	q.mu.Unlock()
	for _, fn := range items {
		fn()
	}
}

func TestWSChannelQueuedDispatch(t *testing.T) {
	t.Run("frames read before a remote close still run", func(t *testing.T) {
		url := startServer(t, func(conn *websocket.Conn) {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"room_full","payload":{}}`))
			msg := websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "room full")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		})

		q := &queue{}
		ch, err := boardnet.Dial(context.Background(), url, q.dispatch)
		require.NoError(t, err)

		var order []string
		ch.On(boardnet.EventRoomFull, func(json.RawMessage) { order = append(order, "room_full") })
		ch.OnClose(func(error) { order = append(order, "close") })
		ch.Start()

		require.Eventually(t, func() bool { return q.len() == 2 }, 2*time.Second, 10*time.Millisecond)
		q.run()

		assert.Equal(t, []string{"room_full", "close"}, order)
	})

	t.Run("local close discards queued frames", func(t *testing.T) {
		url := startServer(t, func(conn *websocket.Conn) {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"clear","payload":{}}`))
			_, _, _ = conn.ReadMessage()
		})

		q := &queue{}
		ch, err := boardnet.Dial(context.Background(), url, q.dispatch)
		require.NoError(t, err)

		cleared := 0
		ch.On(boardnet.EventClear, func(json.RawMessage) { cleared++ })
		ch.Start()

		require.Eventually(t, func() bool { return q.len() >= 1 }, 2*time.Second, 10*time.Millisecond)
		require.NoError(t, ch.Close())
		q.run()

		assert.Zero(t, cleared)
	})
}

func TestWSChannel(t *testing.T) {
	t.Run("delivers inbound frames through the dispatcher", func(t *testing.T) {
		url := startServer(t, func(conn *websocket.Conn) {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"init","payload":{"color":"#f00"}}`))
			time.Sleep(200 * time.Millisecond)
		})

		dispatched := make(chan struct{}, 1)
		got := make(chan string, 1)
		dispatch := func(fn func()) {
			dispatched <- struct{}{}
			fn()
		}

		ch, err := boardnet.Dial(context.Background(), url, dispatch)
		require.NoError(t, err)
		defer ch.Close()

		ch.On(boardnet.EventInit, func(raw json.RawMessage) {
			var p boardnet.InitPayload
			_ = json.Unmarshal(raw, &p)
			got <- p.Color
		})
		ch.Start()

		select {
		case c := <-got:
			assert.Equal(t, "#f00", c)
			assert.Len(t, dispatched, 1)
		case <-time.After(2 * time.Second):
			t.Fatal("init not delivered")
		}
	})

	t.Run("writes outbound frames", func(t *testing.T) {
		received := make(chan string, 1)
		url := startServer(t, func(conn *websocket.Conn) {
			_, data, err := conn.ReadMessage()
			if err == nil {
				received <- string(data)
			}
		})

		ch, err := boardnet.Dial(context.Background(), url, boardnet.Immediate)
		require.NoError(t, err)
		defer ch.Close()

		require.NoError(t, ch.Send(boardnet.EventClear, nil))

		select {
		case frame := <-received:
			assert.JSONEq(t, `{"type":"clear","payload":{}}`, frame)
		case <-time.After(2 * time.Second):
			t.Fatal("frame not received")
		}
	})

	t.Run("send after close is dropped", func(t *testing.T) {
		url := startServer(t, func(conn *websocket.Conn) {
			_, _, _ = conn.ReadMessage()
		})

		ch, err := boardnet.Dial(context.Background(), url, boardnet.Immediate)
		require.NoError(t, err)
		require.NoError(t, ch.Close())

		assert.ErrorIs(t, ch.Send(boardnet.EventClear, nil), boardnet.ErrClosed)
	})

	t.Run("remote close is reported once", func(t *testing.T) {
		url := startServer(t, func(conn *websocket.Conn) {
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		})

		closed := make(chan error, 2)
		ch, err := boardnet.Dial(context.Background(), url, boardnet.Immediate)
		require.NoError(t, err)
		ch.OnClose(func(err error) { closed <- err })
		ch.Start()

		select {
		case err := <-closed:
			assert.Error(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("close not reported")
		}
		assert.ErrorIs(t, ch.Send(boardnet.EventClear, nil), boardnet.ErrClosed)
	})

	t.Run("dial failure is returned", func(t *testing.T) {
		_, err := boardnet.Dial(context.Background(), "ws://127.0.0.1:1/ws", boardnet.Immediate)
		assert.Error(t, err)
	})
}
