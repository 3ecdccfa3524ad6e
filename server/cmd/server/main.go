package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/leapdash/server/core"
	"github.com/automoto/leapdash/shared/protocol"
)

func main() {
	cfg, err := core.LoadConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	level, err := core.LoadServerLevel(cfg.Level)
	if err != nil {
		log.Fatalf("level: %v", err)
	}

	server := core.NewServer(cfg, level)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("[relay] shutting down")
		server.Stop()
		os.Exit(0)
	}()

	log.Printf("[relay] starting %q on port %d (level: %s, tick rate: %d/s, version: %q)",
		cfg.Name, cfg.Port, cfg.Level, cfg.TickRate, cfg.Version)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
