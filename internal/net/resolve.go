package net

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"LiveBoard/internal/config"
)

var ErrNoRelay = errors.New("no relay configured and discovery is off")

const discoveryTimeout = 3 * time.Second

// ResolveEndpoint picks the relay websocket URL. A share link wins, then the
// configured server URL, then mDNS discovery.
func ResolveEndpoint(ctx context.Context, cfg *config.Config, link string) (string, error) {
	if link != "" {
		return ParseShareLink(link, cfg.Room)
	}
	if cfg.ServerURL != "" {
		return WithRoom(cfg.ServerURL, cfg.Room)
	}
	if !cfg.Discovery {
		return "", ErrNoRelay
	}

	log.Printf("[SYNC] looking for a relay on the local network")
	addr, err := Discover(ctx, discoveryTimeout)
	if err != nil {
		return "", fmt.Errorf("discover relay: %w", err)
	}
	return RelayURL(addr, cfg.Room), nil
}
