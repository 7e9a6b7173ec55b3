// Package main runs a Cosmic Loot battle in a full-screen terminal UI.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/peterkuimelis/cosmicloot/internal/config"
	"github.com/peterkuimelis/cosmicloot/internal/content"
	cosmicnet "github.com/peterkuimelis/cosmicloot/internal/net"
	"github.com/peterkuimelis/cosmicloot/internal/telemetry"
	"github.com/peterkuimelis/cosmicloot/internal/tui"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Note: .env file not loaded: %v", err)
	}
	settings := config.FromEnv()

	contentPath := flag.String("content", settings.ContentPath, "path to content YAML (empty for stock content)")
	seed := flag.Int64("seed", settings.Seed, "RNG seed (0 for random)")
	pause := flag.Duration("pause", settings.EnemyPause, "delay before the enemy acts")
	flag.Parse()

	cfg, err := content.LoadOrDefault(*contentPath)
	if err != nil {
		log.Fatalf("Failed to load content: %v", err)
	}
	cfg.Seed = *seed

	ctx := context.Background()
	shutdown, err := telemetry.Setup(ctx, settings.Telemetry)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	sess, err := cosmicnet.NewSession(cfg, cosmicnet.SessionOptions{Pause: *pause})
	if err != nil {
		log.Fatalf("Failed to start battle: %v", err)
	}

	screen, err := tui.NewScreen()
	if err != nil {
		log.Fatalf("Failed to initialize screen: %v", err)
	}
	err = tui.NewApp(screen, sess).Run(ctx)
	screen.Fini()
	if err != nil {
		log.Fatalf("Game error: %v", err)
	}
	if res := cosmicnet.ResultText(sess.Phase()); res != "" {
		log.Print(res)
	}
}
