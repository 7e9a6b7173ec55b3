package game

import (
	"errors"
	"fmt"

	"github.com/peterkuimelis/cosmicloot/internal/log"
)

var (
	ErrInvalidConfig    = errors.New("invalid battle config")
	ErrEmptyActionTable = errors.New("opponent has no actions")
)

// EnemyConfig describes the opponent a battle is fought against.
type EnemyConfig struct {
	Name      string
	MaxHealth int
	Actions   []EnemyAction
}

// Config holds everything needed to create a new battle.
type Config struct {
	Catalog     *Catalog
	StarterDeck []DeckEntry

	PlayerName   string
	PlayerHealth int
	MaxEnergy    int
	HandSize     int

	Enemy EnemyConfig

	Logger    log.EventLogger
	Rand      RandomSource // shared by shuffles and enemy choices (nil = seeded from Seed)
	Seed      int64        // RNG seed (0 for random)
	NoShuffle bool         // skip the opening deck shuffle (for deterministic tests)
}

// DefaultConfig returns the stock setup: 100 HP player with 3 energy and a
// ten-card starter deck against an 80 HP Enemy Raider.
func DefaultConfig() Config {
	return Config{
		Catalog:      DefaultCatalog(),
		StarterDeck:  DefaultStarterDeck(),
		PlayerName:   "Player",
		PlayerHealth: DefaultPlayerHealth,
		MaxEnergy:    DefaultMaxEnergy,
		HandSize:     DefaultHandSize,
		Enemy: EnemyConfig{
			Name:      "Enemy Raider",
			MaxHealth: DefaultEnemyHealth,
			Actions:   DefaultEnemyActions(),
		},
	}
}

// Validate checks the config for values no battle can start with.
func (c Config) Validate() error {
	if c.Catalog == nil {
		return fmt.Errorf("%w: no card catalog", ErrInvalidConfig)
	}
	if c.PlayerHealth <= 0 {
		return fmt.Errorf("%w: player health must be positive, got %d", ErrInvalidConfig, c.PlayerHealth)
	}
	if c.MaxEnergy < 0 {
		return fmt.Errorf("%w: max energy must not be negative, got %d", ErrInvalidConfig, c.MaxEnergy)
	}
	if c.HandSize < 0 {
		return fmt.Errorf("%w: hand size must not be negative, got %d", ErrInvalidConfig, c.HandSize)
	}
	if c.Enemy.MaxHealth <= 0 {
		return fmt.Errorf("%w: enemy health must be positive, got %d", ErrInvalidConfig, c.Enemy.MaxHealth)
	}
	if len(c.Enemy.Actions) == 0 {
		return ErrEmptyActionTable
	}
	for _, a := range c.Enemy.Actions {
		if err := a.validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}
