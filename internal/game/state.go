package game

const (
	DefaultPlayerHealth = 100
	DefaultMaxEnergy    = 3
	DefaultHandSize     = 5
)

// Player represents the human side of a battle: a combatant plus its piles
// and energy pool.
type Player struct {
	Combatant

	Deck    []*Card // top of deck is last element (pop from end)
	Hand    []*Card
	Discard []*Card

	Energy    int
	MaxEnergy int
	HandSize  int // cards drawn at the start of each turn

	rng RandomSource
}

// DrawResult reports what a draw request actually did.
type DrawResult struct {
	Drawn      []*Card
	Reshuffled int // number of discarded cards recycled into the deck (0 if none)
}

// NewPlayer creates a player holding the given deck. The deck slice is copied.
func NewPlayer(name string, maxHealth, maxEnergy, handSize int, deck []*Card, rng RandomSource) *Player {
	p := &Player{
		Combatant: NewCombatant(name, maxHealth),
		Deck:      make([]*Card, len(deck)),
		Energy:    maxEnergy,
		MaxEnergy: maxEnergy,
		HandSize:  handSize,
		rng:       rng,
	}
	copy(p.Deck, deck)
	return p
}

// DeckCount returns the number of cards remaining in the deck.
func (p *Player) DeckCount() int {
	return len(p.Deck)
}

// HandCount returns the number of cards in hand.
func (p *Player) HandCount() int {
	return len(p.Hand)
}

// DiscardCount returns the number of cards in the discard pile.
func (p *Player) DiscardCount() int {
	return len(p.Discard)
}

// CardCount returns the total number of cards across deck, hand and discard.
func (p *Player) CardCount() int {
	return len(p.Deck) + len(p.Hand) + len(p.Discard)
}

// ShuffleDeck randomizes the deck order.
func (p *Player) ShuffleDeck() {
	p.rng.Shuffle(len(p.Deck), func(i, j int) {
		p.Deck[i], p.Deck[j] = p.Deck[j], p.Deck[i]
	})
}

// recycleDiscard moves the whole discard pile into the empty deck and shuffles it.
func (p *Player) recycleDiscard() int {
	n := len(p.Discard)
	p.Deck = append(p.Deck, p.Discard...)
	p.Discard = nil
	p.ShuffleDeck()
	return n
}

// DrawCards draws up to n cards. An empty deck is refilled from the discard
// pile only at the moment a draw needs it; when both are empty the remaining
// draws are skipped and the hand simply ends up short.
func (p *Player) DrawCards(n int) DrawResult {
	var res DrawResult
	for i := 0; i < n; i++ {
		if len(p.Deck) == 0 {
			if len(p.Discard) == 0 {
				break
			}
			res.Reshuffled += p.recycleDiscard()
		}
		card := p.Deck[len(p.Deck)-1]
		p.Deck = p.Deck[:len(p.Deck)-1]
		p.Hand = append(p.Hand, card)
		res.Drawn = append(res.Drawn, card)
	}
	return res
}

// HandCard returns the card at the given hand index.
func (p *Player) HandCard(index int) (*Card, bool) {
	if index < 0 || index >= len(p.Hand) {
		return nil, false
	}
	return p.Hand[index], true
}

// removeFromHand removes and returns the card at index. The caller has
// already validated the index.
func (p *Player) removeFromHand(index int) *Card {
	card := p.Hand[index]
	p.Hand = append(p.Hand[:index:index], p.Hand[index+1:]...)
	return card
}

// StartTurn refills energy, drops all shield and draws a fresh hand.
func (p *Player) StartTurn() DrawResult {
	p.Energy = p.MaxEnergy
	p.Shield = 0
	res := p.DrawCards(p.HandSize)
	p.Status = "Your turn!"
	return res
}

// EndTurn discards the whole hand and hands control to the opponent.
func (p *Player) EndTurn() Phase {
	p.Discard = append(p.Discard, p.Hand...)
	p.Hand = nil
	return PhaseEnemyTurn
}
