package log

// EventType enumerates all observable battle events.
type EventType int

const (
	EventPhaseChange EventType = iota
	EventNewTurn
	EventDraw
	EventShuffle
	EventPlayCard
	EventRejected
	EventDamage
	EventShield
	EventDiscard
	EventIntent
	EventEnemyAction
	EventVictory
	EventDefeat
)

func (e EventType) String() string {
	switch e {
	case EventPhaseChange:
		return "PhaseChange"
	case EventNewTurn:
		return "NewTurn"
	case EventDraw:
		return "Draw"
	case EventShuffle:
		return "Shuffle"
	case EventPlayCard:
		return "PlayCard"
	case EventRejected:
		return "Rejected"
	case EventDamage:
		return "Damage"
	case EventShield:
		return "Shield"
	case EventDiscard:
		return "Discard"
	case EventIntent:
		return "Intent"
	case EventEnemyAction:
		return "EnemyAction"
	case EventVictory:
		return "Victory"
	case EventDefeat:
		return "Defeat"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a battle.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which player turn (1-based)
	Phase   string    // phase name when the event happened (e.g. "Player Turn")
	Actor   string    // combatant the event concerns ("Player", "Enemy Raider")
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string
}
