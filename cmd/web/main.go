package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/peterkuimelis/cosmicloot/internal/config"
	"github.com/peterkuimelis/cosmicloot/internal/content"
	"github.com/peterkuimelis/cosmicloot/internal/telemetry"
	"github.com/peterkuimelis/cosmicloot/internal/web"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Note: .env file not loaded: %v", err)
	}
	settings := config.FromEnv()

	port := flag.Int("port", settings.WebPort, "HTTP port to listen on")
	contentPath := flag.String("content", settings.ContentPath, "path to content YAML (empty for stock content)")
	seed := flag.Int64("seed", settings.Seed, "RNG seed (0 for random)")
	pause := flag.Duration("pause", settings.EnemyPause, "delay before the enemy acts")
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

	srv, err := web.NewServer(cfg, *pause, telemetry.Tracer("web"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("cosmicloot web UI listening on http://localhost:%d", *port)
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
