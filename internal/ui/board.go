package ui

import (
	"context"
	"log"

	"LiveBoard/internal/board"
	"LiveBoard/internal/config"
	boardnet "LiveBoard/internal/net"

	"fyne.io/fyne/v2"
)

// connect resolves and dials the relay off the UI goroutine, then attaches
// the channel on it. Every inbound event is delivered with fyne.Do so the
// coordinator only ever runs on the UI goroutine.
func connect(ctx context.Context, cfg *config.Config, link string, coord *board.Coordinator, status func(string)) {
	endpoint, err := boardnet.ResolveEndpoint(ctx, cfg, link)
	if err != nil {
		log.Printf("Cannot find a session: %v", err)
		fyne.Do(func() { status("Offline: " + err.Error()) })
		return
	}

	ch, err := boardnet.Dial(ctx, endpoint, fyne.Do)
	if err != nil {
		log.Printf("Connection failed: %v", err)
		fyne.Do(func() { status("Connection failed") })
		return
	}
	log.Printf("Connected to %s", endpoint)

	fyne.Do(func() {
		if ctx.Err() != nil {
			_ = ch.Close()
			return
		}
		coord.Attach(ch)
		ch.Start()
	})
}
