// Package board is the coordinator of the drawing pipeline: it owns the
// current stroke style and the drawing state, and decides what gets rendered
// and what gets announced to the session.
package board

import (
	"log"

	"LiveBoard/internal/capture"
	"LiveBoard/internal/config"
	boardnet "LiveBoard/internal/net"
	"LiveBoard/internal/state"
)

// Renderer is the raster the board draws on.
type Renderer interface {
	Configure(logicalWidth, logicalHeight, ratio float64)
	StrokePath(path state.Path, style state.StrokeStyle)
	Clear()
}

// Sender announces local strokes and clears to the session.
type Sender interface {
	SendDraw(ev state.DrawEvent)
	SendClear()
	Close()
}

// Notice is a user-visible, non-fatal message.
type Notice string

const NoticeRoomFull Notice = "The room is full. Try again later."

// Options are the coordinator's hooks into the chrome. All are optional.
type Options struct {
	// Notify shows a notice to the user.
	Notify func(Notice)
	// Redraw is called after the raster changed.
	Redraw func()
	// Changed is called after style, presence or connection status changed.
	Changed func()
}

// Coordinator must be driven from a single goroutine: input callbacks,
// resize callbacks and the session dispatcher all run there.
type Coordinator struct {
	surface  Renderer
	capture  *capture.Capture
	presence *state.Presence
	seen     *state.SeenLog
	seq      state.Sequencer
	style    state.StrokeStyle
	localID  string

	link   *link
	status string

	opts Options
}

// link is one attached session. Callbacks hold the link they were bound to
// and do nothing once it is no longer current.
type link struct {
	sender Sender
}

func New(surface Renderer, opts Options) *Coordinator {
	return &Coordinator{
		surface:  surface,
		capture:  capture.New(),
		presence: state.NewPresence(),
		seen:     state.NewSeenLog(),
		style:    state.StrokeStyle{Color: "#000", Width: 3},
		status:   "Not connected",
		opts:     opts,
	}
}

// Style is the style the next stroke will use.
func (c *Coordinator) Style() state.StrokeStyle {
	return c.style
}

// Color is read-only to the chrome; only init sets it.
func (c *Coordinator) Color() string {
	return c.style.Color
}

func (c *Coordinator) StrokeWidth() float64 {
	return c.style.Width
}

// SetStrokeWidth changes the width of the next stroke; a stroke in progress
// keeps the width it began with. Values are clamped to the toolbar range.
func (c *Coordinator) SetStrokeWidth(w float64) {
	if w < config.MinToolWidth {
		w = config.MinToolWidth
	}
	if w > config.MaxToolWidth {
		w = config.MaxToolWidth
	}
	if w == c.style.Width {
		return
	}
	c.style.Width = w
	c.changed()
}

// LocalID is the id the session assigned to us, if any.
func (c *Coordinator) LocalID() string {
	return c.localID
}

// Participants is a snapshot of the other members.
func (c *Coordinator) Participants() []state.Participant {
	return c.presence.List()
}

// Drawing reports whether a stroke is in progress.
func (c *Coordinator) Drawing() bool {
	return c.capture.Drawing()
}

// Status is a short connection status line for the chrome.
func (c *Coordinator) Status() string {
	return c.status
}

// Resize reconfigures the surface for a new viewport.
func (c *Coordinator) Resize(logicalWidth, logicalHeight, ratio float64) {
	c.surface.Configure(logicalWidth, logicalHeight, ratio)
	c.redraw()
}

// PointerDown starts a local stroke.
func (c *Coordinator) PointerDown(ev capture.RawEvent, r capture.Rect) {
	c.capture.Begin(ev, r, c.style)
}

// PointerMove extends the local stroke and draws its newest segment right
// away. It reports whether the event was consumed by a stroke.
func (c *Coordinator) PointerMove(ev capture.RawEvent, r capture.Rect) bool {
	seg, ok := c.capture.Move(ev, r)
	if !ok {
		return false
	}
	c.surface.StrokePath(seg.Path, seg.Style)
	c.redraw()
	return true
}

// PointerUp finishes the local stroke and announces it. A stroke too long
// for one frame goes out as several overlapping pieces.
func (c *Coordinator) PointerUp() {
	stroke, ok := c.capture.End()
	if !ok {
		return
	}
	if len(stroke.Path) == 1 {
		// A tap never produced a segment.
		c.surface.StrokePath(stroke.Path, stroke.Style)
		c.redraw()
	}

	for _, piece := range stroke.Path.Chunks(config.MaxPathPoints) {
		ev := state.NewDrawEvent(piece, stroke.Style)
		ev.Author = c.localID
		ev.Seq = c.seq.Next()
		c.sender().SendDraw(ev)
	}
}

// PointerCancel abandons the local stroke, as when pointer capture is lost.
// Segments already drawn stay on the surface; nothing is announced.
func (c *Coordinator) PointerCancel() {
	if c.capture.Cancel() {
		log.Printf("[BOARD] stroke cancelled")
	}
}

// Clear wipes the local surface and tells everyone else to do the same.
func (c *Coordinator) Clear() {
	c.surface.Clear()
	c.redraw()
	c.sender().SendClear()
}

// Attach binds a session channel. A previously attached session is closed
// first and its late callbacks are ignored.
func (c *Coordinator) Attach(ch boardnet.Channel) {
	c.Detach()

	l := &link{}
	l.sender = boardnet.NewSyncClient(ch, c.handlers(l))
	c.link = l
	c.seq.Reset()
	c.seen = state.NewSeenLog()
	c.status = "Connecting..."
	c.changed()
}

// Detach closes the current session, if any. Presence is reset since
// nothing will keep it current.
func (c *Coordinator) Detach() {
	if c.link == nil {
		return
	}
	old := c.link
	c.link = nil
	old.sender.Close()
	c.presence.Reset()
	c.status = "Not connected"
	c.changed()
}

func (c *Coordinator) sender() Sender {
	if c.link == nil {
		return (*boardnet.SyncClient)(nil)
	}
	return c.link.sender
}

func (c *Coordinator) handlers(l *link) boardnet.Handlers {
	live := func() bool { return c.link == l }

	return boardnet.Handlers{
		OnInit: func(color, id string) {
			if live() {
				c.handleInit(color, id)
			}
		},
		OnUserJoined: func(p state.Participant) {
			if live() {
				c.handleUserJoined(p)
			}
		},
		OnUserLeft: func(id string) {
			if live() {
				c.handleUserLeft(id)
			}
		},
		OnDraw: func(ev state.DrawEvent) {
			if live() {
				c.handleDraw(ev)
			}
		},
		OnClear: func() {
			if live() {
				c.handleClear()
			}
		},
		OnRoomFull: func() {
			if live() {
				c.handleRoomFull()
			}
		},
		OnDisconnect: func(err error) {
			if live() {
				c.handleDisconnect(err)
			}
		},
	}
}

func (c *Coordinator) handleInit(color, id string) {
	c.style.Color = color
	if id != "" {
		c.localID = id
		c.presence.SetSelf(id)
	}
	c.status = "Connected"
	log.Printf("[BOARD] joined as %q with color %s", id, color)
	c.changed()
}

func (c *Coordinator) handleUserJoined(p state.Participant) {
	if c.presence.Add(p) {
		c.changed()
	}
}

func (c *Coordinator) handleUserLeft(id string) {
	c.seen.Forget(id)
	if c.presence.Remove(id) {
		c.changed()
	}
}

// handleDraw renders a remote stroke with its own style. It never touches
// the local style and is never re-announced.
func (c *Coordinator) handleDraw(ev state.DrawEvent) {
	if err := ev.Validate(); err != nil {
		log.Printf("[BOARD] dropping remote stroke: %v", err)
		return
	}
	if ev.Author != "" && ev.Author == c.localID {
		return
	}
	if !c.seen.Observe(ev.Author, ev.Seq) {
		return
	}
	c.surface.StrokePath(ev.Path, ev.Style())
	c.redraw()
}

// handleClear applies a remote clear without announcing anything.
func (c *Coordinator) handleClear() {
	c.surface.Clear()
	c.redraw()
}

func (c *Coordinator) handleRoomFull() {
	log.Printf("[BOARD] session rejected join: room full")
	if c.opts.Notify != nil {
		c.opts.Notify(NoticeRoomFull)
	}
}

func (c *Coordinator) handleDisconnect(err error) {
	c.presence.Reset()
	c.status = "Disconnected"
	log.Printf("[BOARD] session lost: %v", err)
	c.changed()
}

func (c *Coordinator) redraw() {
	if c.opts.Redraw != nil {
		c.opts.Redraw()
	}
}

func (c *Coordinator) changed() {
	if c.opts.Changed != nil {
		c.opts.Changed()
	}
}
