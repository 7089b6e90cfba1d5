package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"LiveBoard/internal/config"
	boardnet "LiveBoard/internal/net"
	"LiveBoard/internal/relay"
	"LiveBoard/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	args := os.Args
	if len(args) > 1 && args[1] == "serve" {
		if err := runRelay(cfg); err != nil {
			log.Fatalf("Relay stopped: %v", err)
		}
		return
	}

	var link string
	if len(args) > 1 {
		link = args[1]
	}
	runClient(cfg, link)
}

func runRelay(cfg *config.Config) error {
	log.Println("Starting as RELAY")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := relay.NewHub(cfg.MaxParticipants)
	go hub.Run(ctx)

	listener, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.ListenAddr, err)
	}
	port := listener.Addr().(*net.TCPAddr).Port

	if cfg.Discovery {
		server, err := boardnet.Advertise(port, cfg.Room)
		if err != nil {
			log.Printf("mDNS advertising disabled: %v", err)
		} else {
			defer server.Shutdown()
			log.Printf("Advertising room %q on the local network", cfg.Room)
		}
	}

	hostIP, err := boardnet.GetOutgoingIP()
	if err != nil {
		hostIP = "127.0.0.1"
	}
	log.Printf("Share link: %s", boardnet.ShareLink(hostIP, port, cfg.Room))

	srv := &http.Server{
		Handler:           relay.Handler(hub),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Relay listening on %s (max %d per room)", listener.Addr(), cfg.MaxParticipants)
	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func runClient(cfg *config.Config, link string) {
	log.Println("Starting as CLIENT")
	ui.RunApp(cfg, link)
}
