package game

import (
	"fmt"

	"github.com/peterkuimelis/cosmicloot/internal/log"
)

// Battle orchestrates a single fight between the player and one opponent.
// It owns all combat state; callers observe it through Snapshot.
//
// Battle is not safe for concurrent use. Every command runs to completion
// before returning, and the engine has no notion of wall-clock time: drivers
// insert their own pause between EndTurn and AdvanceEnemyTurn.
type Battle struct {
	player   *Player
	opponent *Opponent
	catalog  *Catalog
	phase    Phase
	turn     int
	logger   log.EventLogger
}

// NewBattle creates a battle from the given config, deals the opening hand
// and picks the opponent's first intent. The battle starts in PhasePlayerTurn.
func NewBattle(cfg Config) (*Battle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	deck, err := cfg.Catalog.BuildDeck(cfg.StarterDeck)
	if err != nil {
		return nil, fmt.Errorf("build starter deck: %w", err)
	}

	rng := cfg.Rand
	if rng == nil {
		rng = NewRandomSource(cfg.Seed)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	name := cfg.PlayerName
	if name == "" {
		name = "Player"
	}

	b := &Battle{
		player:   NewPlayer(name, cfg.PlayerHealth, cfg.MaxEnergy, cfg.HandSize, deck, rng),
		opponent: NewOpponent(cfg.Enemy.Name, cfg.Enemy.MaxHealth, cfg.Enemy.Actions, rng),
		catalog:  cfg.Catalog,
		phase:    PhasePlayerTurn,
		logger:   logger,
	}

	// Setup: shuffle the starter deck (unless disabled for tests)
	if !cfg.NoShuffle {
		b.player.ShuffleDeck()
	}

	b.startPlayerTurn()
	b.chooseIntent()
	return b, nil
}

// Phase returns the current phase.
func (b *Battle) Phase() Phase {
	return b.phase
}

// Turn returns the 1-based player turn counter.
func (b *Battle) Turn() int {
	return b.turn
}

// Over reports whether the battle has reached Victory or Defeat.
func (b *Battle) Over() bool {
	return b.phase.Terminal()
}

// Catalog returns the card catalog the battle was built from.
func (b *Battle) Catalog() *Catalog {
	return b.catalog
}

// PlayCard plays the card at handIndex in the current hand. It is rejected,
// leaving all state untouched, outside the player's turn, for an index not in
// the hand, or when the card costs more than the remaining energy. The phase
// does not change; the player may keep playing while energy allows.
func (b *Battle) PlayCard(handIndex int) bool {
	p := b.player
	if b.phase != PhasePlayerTurn {
		b.reject(fmt.Sprintf("cannot play a card during %s", b.phase))
		return false
	}
	card, ok := p.HandCard(handIndex)
	if !ok {
		b.reject(fmt.Sprintf("no card at hand index %d (hand has %d)", handIndex, p.HandCount()))
		return false
	}
	if card.Cost > p.Energy {
		b.reject(fmt.Sprintf("%s costs %d but only %d energy left", card.Name, card.Cost, p.Energy))
		return false
	}

	p.Energy -= card.Cost
	p.removeFromHand(handIndex)
	b.log(log.NewPlayCardEvent(b.turn, b.phase.String(), p.Name, card.Name, card.Cost, p.Energy))

	res := ApplyEffect(card, p, b.opponent)
	p.Discard = append(p.Discard, card)

	if res.Absorbed > 0 || res.Dealt > 0 {
		b.log(log.NewDamageEvent(b.turn, b.phase.String(), b.opponent.Name, res.Absorbed, res.Dealt, b.opponent.Health))
	}
	if res.Shield > 0 {
		b.log(log.NewShieldEvent(b.turn, b.phase.String(), p.Name, res.Shield, p.Shield))
	}
	b.logDraws(res.Draw)

	b.checkTerminal()
	return true
}

// EndTurn discards the player's hand and passes control to the opponent.
func (b *Battle) EndTurn() bool {
	if b.phase != PhasePlayerTurn {
		b.reject(fmt.Sprintf("cannot end turn during %s", b.phase))
		return false
	}

	discarded := b.player.HandCount()
	b.phase = b.player.EndTurn()
	b.log(log.NewDiscardEvent(b.turn, PhasePlayerTurn.String(), b.player.Name, discarded))
	b.log(log.NewPhaseChangeEvent(b.turn, b.phase.String()))

	b.checkTerminal()
	return true
}

// AdvanceEnemyTurn runs the opponent's telegraphed action and, unless that
// ended the battle, starts the next player turn.
func (b *Battle) AdvanceEnemyTurn() bool {
	if b.phase != PhaseEnemyTurn {
		b.reject(fmt.Sprintf("cannot advance enemy turn during %s", b.phase))
		return false
	}

	o := b.opponent
	next, res := o.TakeTurn(b.player)
	b.log(log.NewEnemyActionEvent(b.turn, o.Name, res.Action.String()))
	switch res.Action.Kind {
	case ActionAttack:
		b.log(log.NewDamageEvent(b.turn, b.phase.String(), b.player.Name, res.Absorbed, res.Dealt, b.player.Health))
	case ActionDefend:
		b.log(log.NewShieldEvent(b.turn, b.phase.String(), o.Name, res.Shield, o.Shield))
	}

	b.checkTerminal()
	if b.phase.Terminal() {
		return true
	}

	b.phase = next
	b.log(log.NewIntentEvent(b.turn, PhaseEnemyTurn.String(), o.Name, o.NextAction.String()))
	b.startPlayerTurn()
	b.checkTerminal()
	return true
}

// startPlayerTurn begins a new player turn.
func (b *Battle) startPlayerTurn() {
	b.turn++
	b.log(log.NewTurnEvent(b.turn, b.player.Name))
	res := b.player.StartTurn()
	b.logDraws(res)
}

func (b *Battle) chooseIntent() {
	act := b.opponent.ChooseAction()
	b.log(log.NewIntentEvent(b.turn, b.phase.String(), b.opponent.Name, act.String()))
}

// checkTerminal moves the battle to Victory or Defeat. Once terminal the
// phase is never overwritten.
func (b *Battle) checkTerminal() {
	if b.phase.Terminal() {
		return
	}
	if b.opponent.IsDefeated() {
		b.phase = PhaseVictory
		b.log(log.NewVictoryEvent(b.turn, b.phase.String(), b.opponent.Name))
		return
	}
	if b.player.IsDefeated() {
		b.phase = PhaseDefeat
		b.log(log.NewDefeatEvent(b.turn, b.phase.String(), b.player.Name))
	}
}

func (b *Battle) logDraws(res DrawResult) {
	phase := b.phase.String()
	if res.Reshuffled > 0 {
		b.log(log.NewShuffleEvent(b.turn, phase, b.player.Name, res.Reshuffled))
	}
	for _, card := range res.Drawn {
		b.log(log.NewDrawEvent(b.turn, phase, b.player.Name, card.Name))
	}
}

func (b *Battle) reject(reason string) {
	b.log(log.NewRejectedEvent(b.turn, b.phase.String(), b.player.Name, reason))
}

// log emits a battle event through the logger.
func (b *Battle) log(event log.GameEvent) {
	b.logger.Log(event)
}
