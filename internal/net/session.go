package net

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/peterkuimelis/cosmicloot/internal/game"
	"github.com/peterkuimelis/cosmicloot/internal/log"
	"github.com/peterkuimelis/cosmicloot/internal/telemetry"
)

// SessionOptions tune how a session drives its battle.
type SessionOptions struct {
	Pause  time.Duration // wait between the end of the player's turn and the enemy's action
	Tracer trace.Tracer  // nil uses the global provider
}

// Session owns one battle and serializes every command against it. Drivers
// (TCP, WebSocket, MCP, terminal) talk to a Session, never to the Battle.
type Session struct {
	ID string

	mu     sync.Mutex
	battle *game.Battle
	events *log.MultiLogger
	pause  time.Duration
	tracer trace.Tracer
}

// NewSession starts a battle from cfg. Events still reach cfg.Logger when set.
func NewSession(cfg game.Config, opts SessionOptions) (*Session, error) {
	events := log.NewMultiLogger(cfg.Logger)
	cfg.Logger = events

	b, err := game.NewBattle(cfg)
	if err != nil {
		return nil, err
	}

	tracer := opts.Tracer
	if tracer == nil {
		tracer = telemetry.Tracer("session")
	}
	return &Session{
		ID:     uuid.NewString(),
		battle: b,
		events: events,
		pause:  opts.Pause,
		tracer: tracer,
	}, nil
}

// PlayCard plays the card at the 0-based hand index. It reports whether the
// command was accepted.
func (s *Session) PlayCard(ctx context.Context, index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, span := s.tracer.Start(ctx, "battle.play_card", trace.WithAttributes(
		attribute.String("session.id", s.ID),
		attribute.Int("hand.index", index),
	))
	defer span.End()

	if hand := s.battle.Snapshot().Player.Hand; index >= 0 && index < len(hand) {
		span.SetAttributes(attribute.String("card.name", hand[index].Name))
	}
	ok := s.battle.PlayCard(index)
	s.annotate(span, ok)
	return ok
}

// EndTurn ends the player's turn, waits out the enemy pause and resolves the
// enemy's action. If ctx ends during the pause the battle is left in the
// enemy's turn and a later EndTurn resumes it.
func (s *Session) EndTurn(ctx context.Context) (bool, error) {
	if !s.Pass(ctx) {
		return false, nil
	}
	return true, s.ResolveEnemyTurn(ctx)
}

// Pass ends the player's turn without resolving the enemy's action. It also
// succeeds when the enemy's turn is already pending.
func (s *Session) Pass(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.battle.Phase() {
	case game.PhaseEnemyTurn:
		return true
	case game.PhasePlayerTurn:
		_, span := s.tracer.Start(ctx, "battle.end_turn", trace.WithAttributes(
			attribute.String("session.id", s.ID),
			attribute.Int("battle.turn", s.battle.Turn()),
		))
		defer span.End()
		ok := s.battle.EndTurn()
		s.annotate(span, ok)
		return ok
	default:
		// Logs the rejection.
		return s.battle.EndTurn()
	}
}

// ResolveEnemyTurn waits for the session's pause and then runs the enemy's
// action. It does nothing unless the enemy's turn is pending.
func (s *Session) ResolveEnemyTurn(ctx context.Context) error {
	if s.Phase() != game.PhaseEnemyTurn {
		return nil
	}
	if err := s.wait(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.battle.Phase() != game.PhaseEnemyTurn {
		return nil
	}

	_, span := s.tracer.Start(ctx, "battle.enemy_turn", trace.WithAttributes(
		attribute.String("session.id", s.ID),
		attribute.String("enemy.intent", s.battle.Snapshot().Opponent.NextAction.String()),
	))
	defer span.End()
	ok := s.battle.AdvanceEnemyTurn()
	s.annotate(span, ok)
	return nil
}

func (s *Session) wait(ctx context.Context) error {
	if s.pause <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.pause)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Snapshot returns a copy of the battle state.
func (s *Session) Snapshot() game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.battle.Snapshot()
}

// State returns the battle state as a protocol view.
func (s *Session) State() *StateView {
	return BuildStateView(s.ID, s.Snapshot())
}

// Phase returns the current battle phase.
func (s *Session) Phase() game.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.battle.Phase()
}

// Over reports whether the battle has been won or lost.
func (s *Session) Over() bool {
	return s.Phase().Terminal()
}

// Catalog returns the card catalog the battle uses.
func (s *Session) Catalog() *game.Catalog {
	return s.battle.Catalog()
}

// EventsSince returns a copy of the events logged after the first n.
func (s *Session) EventsSince(n int) []log.GameEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events.Since(n)
	out := make([]log.GameEvent, len(events))
	copy(out, events)
	return out
}

func (s *Session) annotate(span trace.Span, accepted bool) {
	snap := s.battle.Snapshot()
	span.SetAttributes(
		attribute.Bool("command.accepted", accepted),
		attribute.String("battle.phase", snap.Phase.String()),
		attribute.Int("player.health", snap.Player.Health),
		attribute.Int("player.energy", snap.Player.Energy),
		attribute.Int("opponent.health", snap.Opponent.Health),
	)
}

// ResultText is the banner shown when a battle ends.
func ResultText(phase game.Phase) string {
	switch phase {
	case game.PhaseVictory:
		return "VICTORY!"
	case game.PhaseDefeat:
		return "DEFEAT"
	default:
		return ""
	}
}
