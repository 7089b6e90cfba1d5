package net_test

import (
	"errors"
	"testing"

	boardnet "LiveBoard/internal/net"
	"LiveBoard/internal/net/nettest"
	"LiveBoard/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncClientInbound(t *testing.T) {
	t.Run("decodes every event", func(t *testing.T) {
		ch := nettest.New()
		var got []string
		var draw state.DrawEvent
		var joined state.Participant

		boardnet.NewSyncClient(ch, boardnet.Handlers{
			OnInit:       func(color, id string) { got = append(got, "init:"+color+":"+id) },
			OnUserJoined: func(p state.Participant) { joined = p; got = append(got, "joined") },
			OnUserLeft:   func(id string) { got = append(got, "left:"+id) },
			OnDraw:       func(ev state.DrawEvent) { draw = ev; got = append(got, "draw") },
			OnClear:      func() { got = append(got, "clear") },
			OnRoomFull:   func() { got = append(got, "room_full") },
			OnDisconnect: func(error) { got = append(got, "disconnect") },
		})

		ch.Deliver(boardnet.EventInit, boardnet.InitPayload{Color: "#f00", ID: "me"})
		ch.Deliver(boardnet.EventUserJoined, state.Participant{ID: "u2", Color: "#0f0"})
		ch.Deliver(boardnet.EventDraw, state.DrawEvent{
			Path: state.Path{{X: 1, Y: 2}}, Color: "#0f0", StrokeWidth: 5, Author: "u2", Seq: 3,
		})
		ch.Deliver(boardnet.EventClear, nil)
		ch.Deliver(boardnet.EventUserLeft, boardnet.UserLeftPayload{ID: "u2"})
		ch.Deliver(boardnet.EventRoomFull, nil)
		ch.Drop(errors.New("gone"))

		assert.Equal(t, []string{"init:#f00:me", "joined", "draw", "clear", "left:u2", "room_full", "disconnect"}, got)
		assert.Equal(t, state.Participant{ID: "u2", Color: "#0f0"}, joined)
		assert.Equal(t, "u2", draw.Author)
		assert.Equal(t, uint64(3), draw.Seq)
		assert.Equal(t, state.StrokeStyle{Color: "#0f0", Width: 5}, draw.Style())
	})

	t.Run("malformed payloads are dropped", func(t *testing.T) {
		ch := nettest.New()
		calls := 0
		boardnet.NewSyncClient(ch, boardnet.Handlers{
			OnInit:       func(string, string) { calls++ },
			OnUserJoined: func(state.Participant) { calls++ },
			OnDraw:       func(state.DrawEvent) { calls++ },
		})

		ch.DeliverRaw(boardnet.EventInit, []byte(`{"color":""}`))
		ch.DeliverRaw(boardnet.EventUserJoined, []byte(`{"color":"#fff"}`))
		ch.DeliverRaw(boardnet.EventDraw, []byte(`[1,2`))
		ch.DeliverRaw(boardnet.EventDraw, nil)

		assert.Zero(t, calls)
	})

	t.Run("missing handlers are skipped", func(t *testing.T) {
		ch := nettest.New()
		boardnet.NewSyncClient(ch, boardnet.Handlers{})

		assert.NotPanics(t, func() {
			ch.Deliver(boardnet.EventClear, nil)
			ch.Deliver(boardnet.EventRoomFull, nil)
		})
	})
}

func TestSyncClientOutbound(t *testing.T) {
	t.Run("sends draw and clear", func(t *testing.T) {
		ch := nettest.New()
		sc := boardnet.NewSyncClient(ch, boardnet.Handlers{})
		ev := state.DrawEvent{Path: state.Path{{X: 0, Y: 0}}, Color: "#f00", StrokeWidth: 4}

		sc.SendDraw(ev)
		sc.SendClear()

		frames := ch.Sent("")
		require.Len(t, frames, 2)
		assert.Equal(t, boardnet.EventDraw, frames[0].Event)
		assert.Equal(t, ev, frames[0].Payload)
		assert.Equal(t, boardnet.EventClear, frames[1].Event)
	})

	t.Run("sends after close are dropped quietly", func(t *testing.T) {
		ch := nettest.New()
		sc := boardnet.NewSyncClient(ch, boardnet.Handlers{})
		sc.Close()

		assert.NotPanics(t, func() { sc.SendClear() })
		assert.Empty(t, ch.Sent(""))
		assert.True(t, ch.Closed())
	})

	t.Run("nil client drops sends", func(t *testing.T) {
		var sc *boardnet.SyncClient
		assert.NotPanics(t, func() {
			sc.SendDraw(state.DrawEvent{})
			sc.SendClear()
			sc.Close()
		})
	})
}
