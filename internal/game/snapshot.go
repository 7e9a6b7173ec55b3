package game

// CardView is a hand entry as the presentation layer sees it.
type CardView struct {
	Name        string
	Cost        int
	Description string
	Playable    bool // affordable right now and it is the player's turn
}

// PlayerSnapshot is a read-only copy of the player's visible state.
type PlayerSnapshot struct {
	Name         string
	Health       int
	MaxHealth    int
	Shield       int
	Energy       int
	MaxEnergy    int
	Hand         []CardView // in hand order; index i is what PlayCard(i) plays
	DeckCount    int
	DiscardCount int
	Status       string
}

// OpponentSnapshot is a read-only copy of the opponent's visible state.
type OpponentSnapshot struct {
	Name       string
	Health     int
	MaxHealth  int
	Shield     int
	Status     string
	NextAction EnemyAction // the telegraphed intent
}

// Snapshot is everything a renderer needs for one frame. It shares no memory
// with the battle.
type Snapshot struct {
	Phase    Phase
	Turn     int
	Player   PlayerSnapshot
	Opponent OpponentSnapshot
}

// Snapshot returns a copy of the current battle state.
func (b *Battle) Snapshot() Snapshot {
	p, o := b.player, b.opponent

	hand := make([]CardView, 0, len(p.Hand))
	for _, c := range p.Hand {
		hand = append(hand, CardView{
			Name:        c.Name,
			Cost:        c.Cost,
			Description: c.Description,
			Playable:    b.phase == PhasePlayerTurn && c.Cost <= p.Energy,
		})
	}

	return Snapshot{
		Phase: b.phase,
		Turn:  b.turn,
		Player: PlayerSnapshot{
			Name:         p.Name,
			Health:       p.Health,
			MaxHealth:    p.MaxHealth,
			Shield:       p.Shield,
			Energy:       p.Energy,
			MaxEnergy:    p.MaxEnergy,
			Hand:         hand,
			DeckCount:    p.DeckCount(),
			DiscardCount: p.DiscardCount(),
			Status:       p.Status,
		},
		Opponent: OpponentSnapshot{
			Name:       o.Name,
			Health:     o.Health,
			MaxHealth:  o.MaxHealth,
			Shield:     o.Shield,
			Status:     o.Status,
			NextAction: o.NextAction,
		},
	}
}
