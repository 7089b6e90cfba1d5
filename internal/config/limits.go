package config

import "time"

// Connection limits and constraints shared by the relay and the sync client.
const (
	// Room limits
	DefaultMaxParticipants = 4
	DefaultRoom            = "lobby"

	// Rate limiting
	MaxMessagesPerSecond = 60
	RateLimitWindow      = time.Second

	// Timeouts
	DialTimeout  = 5 * time.Second
	WriteTimeout = 10 * time.Second
	PingInterval = 30 * time.Second
	PongTimeout  = 90 * time.Second // 3x ping interval

	// Channel buffers
	ClientSendBufferSize = 256
	HubInboundBufferSize = 256

	// Payload limits
	MaxFrameBytes  = 1 << 20
	MaxPathPoints  = 20000
	MaxStrokeWidth = 64.0
	MaxColorLength = 64

	// Stroke width range offered by the toolbar
	MinToolWidth = 1.0
	MaxToolWidth = 12.0
)
