package game

// Combatant is the state shared by both sides of a battle.
type Combatant struct {
	Name      string
	MaxHealth int
	Health    int
	Shield    int
	Status    string // last status message shown under the combatant
}

// NewCombatant returns a combatant at full health with no shield.
func NewCombatant(name string, maxHealth int) Combatant {
	return Combatant{
		Name:      name,
		MaxHealth: maxHealth,
		Health:    maxHealth,
	}
}

// TakeDamage applies damage, letting shield absorb it first. Health never
// drops below zero. Returns the amount absorbed by shield and the health lost.
func (c *Combatant) TakeDamage(amount int) (absorbed, lost int) {
	if amount <= 0 {
		return 0, 0
	}
	absorbed = min(c.Shield, amount)
	c.Shield -= absorbed

	remaining := amount - absorbed
	lost = min(c.Health, remaining)
	c.Health -= lost
	return absorbed, lost
}

// GainShield adds to the shield pool. Shield has no upper bound.
func (c *Combatant) GainShield(amount int) {
	if amount <= 0 {
		return
	}
	c.Shield += amount
}

// IsDefeated reports whether health has reached zero.
func (c *Combatant) IsDefeated() bool {
	return c.Health <= 0
}
