package relay_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"LiveBoard/internal/board"
	"LiveBoard/internal/capture"
	boardnet "LiveBoard/internal/net"
	"LiveBoard/internal/state"
	"LiveBoard/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// peer is one participant: a real surface and coordinator. Inbound events
// are queued and run later on a single goroutine, under a lock that stands
// in for the UI goroutine, the same way fyne.Do defers them.
type peer struct {
	mu      sync.Mutex
	surface *surface.Surface
	coord   *board.Coordinator
	notices []board.Notice
}

func newPeer(t *testing.T, base, room string) *peer {
	t.Helper()
	return newLaggingPeer(t, base, room, 0)
}

// newLaggingPeer delays every queued event by lag, so the connection has
// usually finished closing before queued frames run.
func newLaggingPeer(t *testing.T, base, room string, lag time.Duration) *peer {
	t.Helper()
	p := &peer{surface: surface.New()}
	p.coord = board.New(p.surface, board.Options{
		Notify: func(n board.Notice) { p.notices = append(p.notices, n) },
	})
	p.coord.Resize(200, 200, 1)

	queue := make(chan func(), 256)
	done := make(chan struct{})
	t.Cleanup(func() { close(done) })
	go func() {
		for {
			select {
			case fn := <-queue:
				time.Sleep(lag)
				p.do(fn)
			case <-done:
				return
			}
		}
	}()
	dispatch := func(fn func()) {
		select {
		case queue <- fn:
		case <-done:
		}
	}
	url := boardnet.RelayURL(strings.TrimPrefix(base, "http://"), room)
	ch, err := boardnet.Dial(context.Background(), url, dispatch)
	require.NoError(t, err)

	p.do(func() { p.coord.Attach(ch) })
	ch.Start()
	t.Cleanup(func() { p.do(p.coord.Detach) })
	return p
}

func (p *peer) do(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn()
}

func (p *peer) alphaAt(x, y int) uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	img := p.surface.Image()
	_, _, _, a := img.At(x, y).RGBA()
	return a >> 8
}

func (p *peer) participants() []state.Participant {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.coord.Participants()
}

func TestTwoPeersShareStrokes(t *testing.T) {
	_, base := startRelay(t, 4)
	rect := capture.Rect{Width: 200, Height: 200}

	a := newPeer(t, base, "e2e")
	require.Eventually(t, func() bool {
		a.mu.Lock()
		defer a.mu.Unlock()
		return a.coord.LocalID() != ""
	}, 2*time.Second, 10*time.Millisecond)

	b := newPeer(t, base, "e2e")
	require.Eventually(t, func() bool { return len(a.participants()) == 1 && len(b.participants()) == 1 },
		2*time.Second, 10*time.Millisecond)

	a.do(func() {
		a.coord.SetStrokeWidth(8)
		a.coord.PointerDown(capture.PointerEvent{ClientX: 20, ClientY: 100}, rect)
		a.coord.PointerMove(capture.PointerEvent{ClientX: 100, ClientY: 100}, rect)
		a.coord.PointerMove(capture.PointerEvent{ClientX: 180, ClientY: 100}, rect)
		a.coord.PointerUp()
	})

	// The author sees the stroke without any round trip.
	assert.Greater(t, a.alphaAt(100, 100), uint32(200))

	assert.Eventually(t, func() bool { return b.alphaAt(100, 100) > 200 }, 2*time.Second, 10*time.Millisecond)
	assert.Zero(t, b.alphaAt(100, 150))

	b.do(b.coord.Clear)
	assert.Zero(t, b.alphaAt(100, 100))
	assert.Eventually(t, func() bool { return a.alphaAt(100, 100) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestRoomFullNotice(t *testing.T) {
	_, base := startRelay(t, 1)

	a := newPeer(t, base, "tiny")
	require.Eventually(t, func() bool {
		a.mu.Lock()
		defer a.mu.Unlock()
		return a.coord.LocalID() != ""
	}, 2*time.Second, 10*time.Millisecond)

	b := newLaggingPeer(t, base, "tiny", 20*time.Millisecond)
	assert.Eventually(t, func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		return b.coord.Status() == "Disconnected"
	}, 2*time.Second, 10*time.Millisecond)

	b.do(func() {
		assert.Equal(t, []board.Notice{board.NoticeRoomFull}, b.notices)
		assert.Empty(t, b.coord.Participants())
	})
}
