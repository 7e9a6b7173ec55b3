package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/peterkuimelis/cosmicloot/internal/config"
	"github.com/peterkuimelis/cosmicloot/internal/content"
	"github.com/peterkuimelis/cosmicloot/internal/game"
	cosmicnet "github.com/peterkuimelis/cosmicloot/internal/net"
	"github.com/peterkuimelis/cosmicloot/internal/telemetry"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Note: .env file not loaded: %v", err)
	}
	settings := config.FromEnv()

	cmd := os.Args[1]
	switch cmd {
	case "play":
		runPlay(settings, os.Args[2:])
	case "host":
		runHost(settings, os.Args[2:])
	case "join":
		runJoin(settings, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  cosmicloot play [--seed N] [--content FILE] [--pause D]")
	fmt.Println("  cosmicloot host [--seed N] [--content FILE] [--pause D] [--port P]")
	fmt.Println("  cosmicloot join [--addr ADDR]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play    Fight a battle in this terminal")
	fmt.Println("  host    Run a battle server and wait for one player")
	fmt.Println("  join    Connect to a battle server and play")
}

func battleFlags(fs *flag.FlagSet, settings *config.Settings) {
	fs.Int64Var(&settings.Seed, "seed", settings.Seed, "RNG seed (0 for random)")
	fs.StringVar(&settings.ContentPath, "content", settings.ContentPath, "path to content YAML (empty for stock content)")
	fs.DurationVar(&settings.EnemyPause, "pause", settings.EnemyPause, "delay before the enemy acts")
	fs.BoolVar(&settings.Telemetry, "telemetry", settings.Telemetry, "export OpenTelemetry traces")
}

func loadConfig(settings config.Settings) game.Config {
	cfg, err := content.LoadOrDefault(settings.ContentPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.Seed = settings.Seed
	return cfg
}

func startTelemetry(ctx context.Context, enabled bool) func() {
	shutdown, err := telemetry.Setup(ctx, enabled)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		return func() {}
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}
}

func runPlay(settings config.Settings, args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	battleFlags(fs, &settings)
	fs.Parse(args)

	ctx := context.Background()
	defer startTelemetry(ctx, settings.Telemetry)()

	srv := &cosmicnet.Server{
		Config: loadConfig(settings),
		Pause:  settings.EnemyPause,
	}
	if err := srv.Play(ctx, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runHost(settings config.Settings, args []string) {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	battleFlags(fs, &settings)
	fs.StringVar(&settings.TCPPort, "port", settings.TCPPort, "TCP port to listen on")
	fs.Parse(args)

	ctx := context.Background()
	defer startTelemetry(ctx, settings.Telemetry)()

	srv := &cosmicnet.Server{
		Config: loadConfig(settings),
		Port:   settings.TCPPort,
		Pause:  settings.EnemyPause,
		Out:    os.Stdout,
	}
	if err := srv.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runJoin(settings config.Settings, args []string) {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	addr := fs.String("addr", "localhost:"+settings.TCPPort, "server address to connect to")
	fs.Parse(args)

	if err := cosmicnet.Connect(context.Background(), *addr, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
