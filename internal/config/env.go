// Package config collects process settings shared by the cosmicloot commands.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultEnemyPause is how long drivers wait on the enemy's turn before
// resolving it, so the player can see the phase change.
const DefaultEnemyPause = 1500 * time.Millisecond

// Settings are the knobs every command reads before flags are applied.
type Settings struct {
	Seed        int64         // RNG seed, 0 for random
	ContentPath string        // YAML content file, empty for the stock content
	EnemyPause  time.Duration // delay before the enemy acts
	TCPPort     string        // host mode listen port
	WebPort     int           // web UI listen port
	Telemetry   bool          // export OpenTelemetry traces
}

// Default returns the stock settings.
func Default() Settings {
	return Settings{
		EnemyPause: DefaultEnemyPause,
		TCPPort:    "9000",
		WebPort:    8080,
	}
}

// FromEnv loads settings from environment variables.
// Falls back to defaults if variables are unset or malformed.
func FromEnv() Settings {
	cfg := Default()

	if val := getEnvInt64("COSMICLOOT_SEED"); val != 0 {
		cfg.Seed = val
	}
	if val := os.Getenv("COSMICLOOT_CONTENT"); val != "" {
		cfg.ContentPath = val
	}
	if val, ok := getEnvDuration("COSMICLOOT_ENEMY_PAUSE"); ok {
		cfg.EnemyPause = val
	}
	if val := getEnvInt64("COSMICLOOT_PORT"); val > 0 {
		cfg.TCPPort = strconv.FormatInt(val, 10)
	}
	if val := getEnvInt64("COSMICLOOT_WEB_PORT"); val > 0 {
		cfg.WebPort = int(val)
	}
	cfg.Telemetry = getEnvBool("COSMICLOOT_TELEMETRY")

	return cfg
}

func getEnvInt64(key string) int64 {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return num
}

// getEnvDuration accepts Go duration strings ("750ms") or bare milliseconds.
func getEnvDuration(key string) (time.Duration, bool) {
	val := os.Getenv(key)
	if val == "" {
		return 0, false
	}
	if d, err := time.ParseDuration(val); err == nil && d >= 0 {
		return d, true
	}
	if ms, err := strconv.Atoi(val); err == nil && ms >= 0 {
		return time.Duration(ms) * time.Millisecond, true
	}
	return 0, false
}

func getEnvBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
