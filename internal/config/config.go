package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for both the relay and the drawing client.
type Config struct {
	ListenAddr      string  // relay listen address
	ServerURL       string  // websocket URL of the relay; empty means discover
	Room            string  // room to join
	MaxParticipants int     // relay room capacity
	Discovery       bool    // advertise/browse via mDNS
	DefaultWidth    float64 // initial stroke width
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		ListenAddr:      ":8888",
		Room:            DefaultRoom,
		MaxParticipants: DefaultMaxParticipants,
		Discovery:       true,
		DefaultWidth:    3,
	}
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, falling back to defaults.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := Default()

	if v := getenv("LIVEBOARD_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := getenv("LIVEBOARD_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := strings.TrimSpace(getenv("LIVEBOARD_ROOM")); v != "" {
		cfg.Room = v
	}
	if v := getenv("LIVEBOARD_MAX_PARTICIPANTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("LIVEBOARD_MAX_PARTICIPANTS: invalid value %q", v)
		}
		cfg.MaxParticipants = n
	}
	if v := getenv("LIVEBOARD_DISCOVERY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("LIVEBOARD_DISCOVERY: %w", err)
		}
		cfg.Discovery = b
	}
	if v := getenv("LIVEBOARD_DEFAULT_WIDTH"); v != "" {
		w, err := strconv.ParseFloat(v, 64)
		if err != nil || w < MinToolWidth || w > MaxToolWidth {
			return nil, fmt.Errorf("LIVEBOARD_DEFAULT_WIDTH: invalid value %q", v)
		}
		cfg.DefaultWidth = w
	}

	return cfg, nil
}
