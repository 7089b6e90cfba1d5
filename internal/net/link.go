package net

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// CustomURLScheme prefixes share links handed between participants.
const CustomURLScheme = "liveboard://"

// ShareLink builds liveboard://host:port/room.
func ShareLink(host string, port int, room string) string {
	return fmt.Sprintf("%s%s/%s", CustomURLScheme, net.JoinHostPort(host, strconv.Itoa(port)), url.PathEscape(room))
}

// ParseShareLink turns a share link into the relay websocket URL. A link
// without a room joins defaultRoom.
func ParseShareLink(link, defaultRoom string) (string, error) {
	if !strings.HasPrefix(link, CustomURLScheme) {
		return "", fmt.Errorf("not a share link: %q", link)
	}
	rest := strings.TrimPrefix(link, CustomURLScheme)
	addr, room, _ := strings.Cut(rest, "/")
	room = strings.Trim(room, "/")
	if addr == "" {
		return "", fmt.Errorf("share link without address: %q", link)
	}
	if room == "" {
		room = defaultRoom
	} else if r, err := url.PathUnescape(room); err == nil {
		room = r
	}
	return RelayURL(addr, room), nil
}

// RelayURL is the websocket endpoint for room on the relay at addr.
func RelayURL(addr, room string) string {
	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
	q := u.Query()
	q.Set("room", room)
	u.RawQuery = q.Encode()
	return u.String()
}

// WithRoom adds the room query to a configured server URL unless it already
// names one.
func WithRoom(serverURL, room string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("parse server url: %w", err)
	}
	q := u.Query()
	if q.Get("room") == "" {
		q.Set("room", room)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
