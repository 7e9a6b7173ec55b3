package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging battle events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- MultiLogger: records events and forwards them to other loggers ---

type MultiLogger struct {
	MemoryLogger
	sinks []EventLogger
}

// NewMultiLogger returns a logger that keeps every event in memory and also
// passes it to each non-nil sink.
func NewMultiLogger(sinks ...EventLogger) *MultiLogger {
	l := &MultiLogger{}
	for _, s := range sinks {
		if s != nil {
			l.sinks = append(l.sinks, s)
		}
	}
	return l
}

func (l *MultiLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	for _, s := range l.sinks {
		s.Log(event)
	}
}

// Since returns the events logged after the first n.
func (l *MemoryLogger) Since(n int) []GameEvent {
	if n < 0 {
		n = 0
	}
	if n >= len(l.events) {
		return nil
	}
	return l.events[n:]
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	// Pad phase to 12 chars for alignment
	for len(phase) < 12 {
		phase += " "
	}

	return fmt.Sprintf("T%-2d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewPhaseChangeEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewTurnEvent(turn int, actor string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Player Turn",
		Actor:   actor,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, actor),
	}
}

func NewDrawEvent(turn int, phase string, actor string, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("%s draws %s", actor, cardName),
	}
}

func NewShuffleEvent(turn int, phase string, actor string, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventShuffle,
		Details: fmt.Sprintf("%s shuffles %d discarded cards into the deck", actor, count),
	}
}

func NewPlayCardEvent(turn int, phase string, actor string, cardName string, cost int, energyLeft int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventPlayCard,
		Card:    cardName,
		Details: fmt.Sprintf("%s plays %s (cost %d, %d energy left)", actor, cardName, cost, energyLeft),
	}
}

func NewRejectedEvent(turn int, phase string, actor string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventRejected,
		Details: fmt.Sprintf("%s command rejected: %s", actor, reason),
	}
}

func NewDamageEvent(turn int, phase string, target string, absorbed, dealt, health int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   target,
		Type:    EventDamage,
		Details: fmt.Sprintf("%s takes %d damage (%d absorbed by shield), HP now %d", target, dealt, absorbed, health),
	}
}

func NewShieldEvent(turn int, phase string, actor string, gained, total int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventShield,
		Details: fmt.Sprintf("%s gains %d shield (total %d)", actor, gained, total),
	}
}

func NewDiscardEvent(turn int, phase string, actor string, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventDiscard,
		Details: fmt.Sprintf("%s discards %d card(s) from hand", actor, count),
	}
}

func NewIntentEvent(turn int, phase string, actor string, intent string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventIntent,
		Details: fmt.Sprintf("%s intends: %s", actor, intent),
	}
}

func NewEnemyActionEvent(turn int, actor string, action string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Enemy Turn",
		Actor:   actor,
		Type:    EventEnemyAction,
		Details: fmt.Sprintf("%s uses %s", actor, action),
	}
}

func NewVictoryEvent(turn int, phase string, defeated string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   defeated,
		Type:    EventVictory,
		Details: fmt.Sprintf("Victory! %s is destroyed", defeated),
	}
}

func NewDefeatEvent(turn int, phase string, defeated string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   defeated,
		Type:    EventDefeat,
		Details: fmt.Sprintf("Defeat. %s is destroyed", defeated),
	}
}
