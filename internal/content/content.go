// Package content loads battle content (cards, starter deck, player and enemy
// stats) from YAML files.
package content

import (
	"fmt"
	"os"

	"github.com/peterkuimelis/cosmicloot/internal/game"
	"gopkg.in/yaml.v3"
)

// File represents the top-level YAML structure.
type File struct {
	Player      *PlayerEntry `yaml:"player"`
	Cards       []CardEntry  `yaml:"cards"`
	StarterDeck []DeckEntry  `yaml:"starter_deck"`
	Enemy       *EnemyEntry  `yaml:"enemy"`
}

// PlayerEntry holds the player's starting stats. Zero values keep the defaults.
type PlayerEntry struct {
	Name      string `yaml:"name"`
	MaxHealth int    `yaml:"max_health"`
	MaxEnergy int    `yaml:"max_energy"`
	HandSize  int    `yaml:"hand_size"`
}

// CardEntry is one card definition.
type CardEntry struct {
	Name        string `yaml:"name"`
	Cost        int    `yaml:"cost"`
	Description string `yaml:"description"`
	Effect      string `yaml:"effect"`
	Amount      int    `yaml:"amount"`
	Draw        int    `yaml:"draw"`
	NamedStatus bool   `yaml:"named_status"` // status message names the card
}

// DeckEntry represents a card and its count in the starter deck.
type DeckEntry struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// EnemyEntry describes the opponent.
type EnemyEntry struct {
	Name      string        `yaml:"name"`
	MaxHealth int           `yaml:"max_health"`
	Actions   []ActionEntry `yaml:"actions"`
}

// ActionEntry is one row of the enemy's action table.
type ActionEntry struct {
	Kind   string `yaml:"kind"`
	Amount int    `yaml:"amount"`
}

// Parse decodes a content file into a battle config. Sections left out of
// the file keep the stock values from game.DefaultConfig.
func Parse(data []byte) (game.Config, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return game.Config{}, fmt.Errorf("parse content YAML: %w", err)
	}
	return f.Config()
}

// Load reads and parses the content file at path.
func Load(path string) (game.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return game.Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return game.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path, or returns the stock config when path is empty.
func LoadOrDefault(path string) (game.Config, error) {
	if path == "" {
		return game.DefaultConfig(), nil
	}
	return Load(path)
}

// Config converts the file into a validated battle config.
func (f *File) Config() (game.Config, error) {
	cfg := game.DefaultConfig()

	if p := f.Player; p != nil {
		if p.Name != "" {
			cfg.PlayerName = p.Name
		}
		if p.MaxHealth != 0 {
			cfg.PlayerHealth = p.MaxHealth
		}
		if p.MaxEnergy != 0 {
			cfg.MaxEnergy = p.MaxEnergy
		}
		if p.HandSize != 0 {
			cfg.HandSize = p.HandSize
		}
	}

	if len(f.Cards) > 0 {
		cards := make([]*game.Card, 0, len(f.Cards))
		for _, entry := range f.Cards {
			kind, err := game.ParseEffectKind(entry.Effect)
			if err != nil {
				return game.Config{}, fmt.Errorf("card %q: %w", entry.Name, err)
			}
			cards = append(cards, &game.Card{
				Name:        entry.Name,
				Cost:        entry.Cost,
				Description: entry.Description,
				Effect:      game.Effect{Kind: kind, Amount: entry.Amount, Draw: entry.Draw, NamedStatus: entry.NamedStatus},
			})
		}
		catalog, err := game.NewCatalog(cards...)
		if err != nil {
			return game.Config{}, err
		}
		cfg.Catalog = catalog
	}

	if len(f.StarterDeck) > 0 {
		cfg.StarterDeck = make([]game.DeckEntry, 0, len(f.StarterDeck))
		for _, entry := range f.StarterDeck {
			cfg.StarterDeck = append(cfg.StarterDeck, game.DeckEntry{Name: entry.Name, Count: entry.Count})
		}
	}

	if e := f.Enemy; e != nil {
		if e.Name != "" {
			cfg.Enemy.Name = e.Name
		}
		if e.MaxHealth != 0 {
			cfg.Enemy.MaxHealth = e.MaxHealth
		}
		if len(e.Actions) > 0 {
			cfg.Enemy.Actions = make([]game.EnemyAction, 0, len(e.Actions))
			for _, a := range e.Actions {
				kind, err := game.ParseActionKind(a.Kind)
				if err != nil {
					return game.Config{}, fmt.Errorf("enemy %q: %w", cfg.Enemy.Name, err)
				}
				cfg.Enemy.Actions = append(cfg.Enemy.Actions, game.EnemyAction{Kind: kind, Amount: a.Amount})
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return game.Config{}, err
	}
	// Catch unknown or miscounted deck entries now rather than at battle start.
	if _, err := cfg.Catalog.BuildDeck(cfg.StarterDeck); err != nil {
		return game.Config{}, fmt.Errorf("starter deck: %w", err)
	}
	return cfg, nil
}
