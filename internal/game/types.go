package game

import (
	"fmt"
	"strings"
)

// --- Enums ---

type Phase int

const (
	PhasePlayerTurn Phase = iota
	PhaseEnemyTurn
	PhaseVictory
	PhaseDefeat
)

func (p Phase) String() string {
	switch p {
	case PhasePlayerTurn:
		return "Player Turn"
	case PhaseEnemyTurn:
		return "Enemy Turn"
	case PhaseVictory:
		return "Victory"
	case PhaseDefeat:
		return "Defeat"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the battle is over. Terminal phases accept no commands.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat
}

type EffectKind int

const (
	EffectDamage     EffectKind = iota // deal Amount damage to the opponent
	EffectShield                       // gain Amount shield
	EffectShieldDraw                   // gain Amount shield, then draw Draw cards
)

func (k EffectKind) String() string {
	switch k {
	case EffectDamage:
		return "damage"
	case EffectShield:
		return "shield"
	case EffectShieldDraw:
		return "shield_draw"
	default:
		return "unknown"
	}
}

// ParseEffectKind maps the content-file spelling of an effect kind back to its value.
func ParseEffectKind(s string) (EffectKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "damage":
		return EffectDamage, nil
	case "shield":
		return EffectShield, nil
	case "shield_draw":
		return EffectShieldDraw, nil
	default:
		return 0, fmt.Errorf("unknown effect kind %q", s)
	}
}

// Effect describes what a card does when played.
type Effect struct {
	Kind   EffectKind
	Amount int // damage dealt or shield gained
	Draw   int // cards drawn (EffectShieldDraw only)

	NamedStatus bool // damage status names the card ("... with a Heavy Blast!")
}

func (e Effect) validate() error {
	if e.Amount < 0 || e.Draw < 0 {
		return fmt.Errorf("effect %s has negative amount", e.Kind)
	}
	switch e.Kind {
	case EffectDamage, EffectShield, EffectShieldDraw:
		return nil
	default:
		return fmt.Errorf("unknown effect kind %d", int(e.Kind))
	}
}

// --- Card definition (static, shared by every deck copy) ---

type Card struct {
	Name        string
	Cost        int
	Description string
	Effect      Effect
}

func (c *Card) String() string {
	return c.Name
}

// --- Opponent actions ---

type ActionKind int

const (
	ActionAttack ActionKind = iota
	ActionDefend
)

func (a ActionKind) String() string {
	switch a {
	case ActionAttack:
		return "Attack"
	case ActionDefend:
		return "Defend"
	default:
		return "Unknown"
	}
}

// ParseActionKind maps the content-file spelling of an action kind back to its value.
func ParseActionKind(s string) (ActionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "attack":
		return ActionAttack, nil
	case "defend":
		return ActionDefend, nil
	default:
		return 0, fmt.Errorf("unknown action kind %q", s)
	}
}

// EnemyAction is one entry of an opponent's action table.
type EnemyAction struct {
	Kind   ActionKind
	Amount int // damage for Attack, shield for Defend
}

func (a EnemyAction) validate() error {
	switch a.Kind {
	case ActionAttack, ActionDefend:
	default:
		return fmt.Errorf("unknown action kind %d", int(a.Kind))
	}
	if a.Amount < 0 {
		return fmt.Errorf("enemy action %s has negative amount", a)
	}
	return nil
}

func (a EnemyAction) String() string {
	return fmt.Sprintf("%s (%d)", a.Kind, a.Amount)
}
