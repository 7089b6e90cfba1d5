package net

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

const serviceType = "_liveboard._tcp"

// Advertise announces a relay on the local network.
func Advertise(port int, room string) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	info := []string{"LiveBoard", "room=" + room}

	// NewMDNSService builds the SRV, TXT and A records for us.
	service, err := mdns.NewMDNSService(host, serviceType, "", "", port, nil, info)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Discover browses for a relay and returns the first "ip:port" found.
func Discover(ctx context.Context, timeout time.Duration) (string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	found := make(chan string, 1)

	go func() {
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			select {
			case found <- fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port):
			default:
			}
		}
	}()

	queryErr := make(chan error, 1)
	go func() {
		params := mdns.DefaultParams(serviceType)
		params.Entries = entries
		params.Timeout = timeout
		params.DisableIPv6 = true
		queryErr <- mdns.Query(params)
		close(entries)
	}()

	select {
	case addr := <-found:
		return addr, nil
	case <-ctx.Done():
		return "", ctx.Err()
	case err := <-queryErr:
		// Query returned; an entry may still be in flight.
		select {
		case addr := <-found:
			return addr, nil
		case <-time.After(50 * time.Millisecond):
		}
		if err != nil {
			return "", fmt.Errorf("mdns query: %w", err)
		}
		return "", fmt.Errorf("no relay found on the local network")
	}
}
