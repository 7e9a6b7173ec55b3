package game

import "fmt"

const DefaultEnemyHealth = 80

// Opponent is the automated side of a battle. It telegraphs its next action
// (the intent) before the player acts.
type Opponent struct {
	Combatant

	Actions    []EnemyAction
	NextAction EnemyAction

	rng RandomSource
}

// EnemyTurnResult reports what the opponent did on its turn.
type EnemyTurnResult struct {
	Action   EnemyAction
	Absorbed int // damage soaked by the player's shield
	Dealt    int // health the player lost
	Shield   int // shield the opponent gained
}

// DefaultEnemyActions is the stock action table: hit for 12 or raise 8 shield.
func DefaultEnemyActions() []EnemyAction {
	return []EnemyAction{
		{Kind: ActionAttack, Amount: 12},
		{Kind: ActionDefend, Amount: 8},
	}
}

// NewOpponent creates an opponent with the given action table. The table is
// copied. No intent is chosen until ChooseAction is called.
func NewOpponent(name string, maxHealth int, actions []EnemyAction, rng RandomSource) *Opponent {
	o := &Opponent{
		Combatant: NewCombatant(name, maxHealth),
		Actions:   make([]EnemyAction, len(actions)),
		rng:       rng,
	}
	copy(o.Actions, actions)
	return o
}

// ChooseAction picks the next action uniformly at random and stores it as the intent.
func (o *Opponent) ChooseAction() EnemyAction {
	o.NextAction = o.Actions[o.rng.Intn(len(o.Actions))]
	return o.NextAction
}

// TakeTurn executes the telegraphed action against the player, then picks
// the intent for the following turn. The opponent always hands control back.
func (o *Opponent) TakeTurn(player *Player) (Phase, EnemyTurnResult) {
	act := o.NextAction
	res := EnemyTurnResult{Action: act}

	switch act.Kind {
	case ActionAttack:
		res.Absorbed, res.Dealt = player.TakeDamage(act.Amount)
		o.Status = fmt.Sprintf("Attacked for %d!", act.Amount)
	case ActionDefend:
		o.GainShield(act.Amount)
		res.Shield = act.Amount
		o.Status = fmt.Sprintf("Gained %d shield.", act.Amount)
	}

	o.ChooseAction()
	return PhasePlayerTurn, res
}
