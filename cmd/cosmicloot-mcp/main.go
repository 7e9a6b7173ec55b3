package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/cosmicloot/internal/config"
	"github.com/peterkuimelis/cosmicloot/internal/content"
	cosmicmcp "github.com/peterkuimelis/cosmicloot/internal/mcp"
	"github.com/peterkuimelis/cosmicloot/internal/telemetry"
)

func main() {
	// stdout carries the protocol; diagnostics go to stderr.
	log.SetOutput(os.Stderr)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Note: .env file not loaded: %v", err)
	}
	settings := config.FromEnv()

	contentPath := flag.String("content", settings.ContentPath, "path to content YAML (empty for stock content)")
	seed := flag.Int64("seed", settings.Seed, "default RNG seed (0 for random)")
	pause := flag.Duration("pause", 0, "delay before the enemy acts")
	flag.Parse()

	cfg, err := content.LoadOrDefault(*contentPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.Seed = *seed

	ctx := context.Background()
	shutdown, err := telemetry.Setup(ctx, settings.Telemetry)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
	} else {
		defer shutdown(ctx)
	}

	h := cosmicmcp.NewHandler(cfg, *pause, telemetry.Tracer("mcp"))
	s := server.NewMCPServer("cosmicloot", "1.0.0")
	h.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
