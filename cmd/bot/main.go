package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"signalmentor/internal/config"
	"signalmentor/internal/discord"
	"signalmentor/internal/health"
	"signalmentor/internal/session"
	"signalmentor/internal/status"
	"signalmentor/internal/storage"
	v "signalmentor/internal/version"
)

func main() {
	log.Printf("[INFO] Starting %v bot...", v.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.New()

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	sessions := session.NewManager(store, cfg.RandomSeed)
	st := status.New()

	go func() {
		if err := health.Start(cfg.HealthAddr, st); err != nil {
			log.Println("[ERR] Health server error:", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		if err := discord.StartBot(ctx, cfg, store, sessions, st); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...\n", s)
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Println("[ERR] Bot error:", err)
		}
		cancel()
	case <-ctx.Done():
	}

	log.Println("[INFO] Bot exited cleanly")
}
