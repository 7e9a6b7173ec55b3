package game

import (
	"errors"
	"fmt"
)

// Stock card names.
const (
	CardLaserShot       = "Laser Shot"
	CardHeavyBlast      = "Heavy Blast"
	CardDeflectors      = "Deflectors"
	CardEvasiveManeuver = "Evasive Maneuver"
)

var ErrUnknownCard = errors.New("card not found in catalog")

// Catalog maps card names to their immutable definitions. Every copy of a
// card in a deck points at the same *Card, which the catalog owns: NewCatalog
// stores its own copies and Lookup and Cards hand out copies.
type Catalog struct {
	cards map[string]*Card
	order []string
}

// NewCatalog builds a catalog from card definitions. Names must be unique and
// costs non-negative.
func NewCatalog(cards ...*Card) (*Catalog, error) {
	c := &Catalog{cards: make(map[string]*Card, len(cards))}
	for _, card := range cards {
		if card == nil || card.Name == "" {
			return nil, fmt.Errorf("catalog: card without a name")
		}
		if _, dup := c.cards[card.Name]; dup {
			return nil, fmt.Errorf("catalog: duplicate card %q", card.Name)
		}
		if card.Cost < 0 {
			return nil, fmt.Errorf("catalog: card %q has negative cost %d", card.Name, card.Cost)
		}
		if err := card.Effect.validate(); err != nil {
			return nil, fmt.Errorf("catalog: card %q: %w", card.Name, err)
		}
		def := *card
		c.cards[card.Name] = &def
		c.order = append(c.order, card.Name)
	}
	return c, nil
}

// DefaultCatalog returns a fresh copy of the stock four-card catalog.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		&Card{Name: CardLaserShot, Cost: 1, Description: "Deal 10 damage.", Effect: Effect{Kind: EffectDamage, Amount: 10}},
		&Card{Name: CardHeavyBlast, Cost: 2, Description: "Deal 20 damage.", Effect: Effect{Kind: EffectDamage, Amount: 20, NamedStatus: true}},
		&Card{Name: CardDeflectors, Cost: 1, Description: "Gain 10 shield.", Effect: Effect{Kind: EffectShield, Amount: 10}},
		&Card{Name: CardEvasiveManeuver, Cost: 1, Description: "Gain 5 shield. Draw 1 card.", Effect: Effect{Kind: EffectShieldDraw, Amount: 5, Draw: 1}},
	)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns a copy of the card with the given name.
func (c *Catalog) Lookup(name string) (*Card, bool) {
	card, ok := c.cards[name]
	if !ok {
		return nil, false
	}
	cp := *card
	return &cp, true
}

// Cards returns copies of all cards in definition order.
func (c *Catalog) Cards() []*Card {
	out := make([]*Card, 0, len(c.order))
	for _, name := range c.order {
		cp := *c.cards[name]
		out = append(out, &cp)
	}
	return out
}

// Len returns the number of distinct cards.
func (c *Catalog) Len() int {
	return len(c.order)
}

// DeckEntry represents a card and its count in a deck list.
type DeckEntry struct {
	Name  string
	Count int
}

// DefaultStarterDeck is the stock ten-card starter: six Laser Shots and four Deflectors.
func DefaultStarterDeck() []DeckEntry {
	return []DeckEntry{
		{Name: CardLaserShot, Count: 6},
		{Name: CardDeflectors, Count: 4},
	}
}

// BuildDeck expands a deck list into card references. Entries are laid out in
// list order, so with no shuffle the last entry is drawn first.
func (c *Catalog) BuildDeck(entries []DeckEntry) ([]*Card, error) {
	var deck []*Card
	for _, entry := range entries {
		card, ok := c.cards[entry.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCard, entry.Name)
		}
		if entry.Count <= 0 {
			return nil, fmt.Errorf("deck entry %q: count must be positive, got %d", entry.Name, entry.Count)
		}
		for i := 0; i < entry.Count; i++ {
			deck = append(deck, card)
		}
	}
	return deck, nil
}
