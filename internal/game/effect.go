package game

import "fmt"

// EffectResult contains the outcome of resolving a card effect.
type EffectResult struct {
	Absorbed int // damage soaked by the opponent's shield
	Dealt    int // health the opponent lost
	Shield   int // shield the actor gained
	Draw     DrawResult
}

// ApplyEffect resolves a card's effect for the acting player against the
// opponent and writes the actor's status message. It is the only place card
// plays touch damage, shield or draws.
func ApplyEffect(card *Card, actor *Player, opponent *Opponent) EffectResult {
	var res EffectResult
	eff := card.Effect

	switch eff.Kind {
	case EffectDamage:
		res.Absorbed, res.Dealt = opponent.TakeDamage(eff.Amount)
		actor.Status = damageStatus(card)

	case EffectShield:
		actor.GainShield(eff.Amount)
		res.Shield = eff.Amount
		actor.Status = fmt.Sprintf("Gained %d shield.", eff.Amount)

	case EffectShieldDraw:
		actor.GainShield(eff.Amount)
		res.Shield = eff.Amount
		res.Draw = actor.DrawCards(eff.Draw)
		actor.Status = fmt.Sprintf("Gained %d shield and drew %d %s.", eff.Amount, eff.Draw, plural(eff.Draw, "card"))
	}

	return res
}

func damageStatus(card *Card) string {
	if card.Effect.NamedStatus {
		return fmt.Sprintf("Dealt %d damage with a %s!", card.Effect.Amount, card.Name)
	}
	return fmt.Sprintf("Dealt %d damage!", card.Effect.Amount)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
