package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/peterkuimelis/cosmicloot/internal/game"
	"github.com/peterkuimelis/cosmicloot/internal/log"
)

// Transport carries protocol messages between a session and one client.
type Transport interface {
	Send(msg ServerMessage) error
	Recv() (ClientMessage, error)
}

// NetworkController implements Transport over a TCP connection using
// newline-delimited JSON.
type NetworkController struct {
	conn net.Conn
	enc  *json.Encoder
	dec  *json.Decoder
	mu   sync.Mutex
}

// NewNetworkController creates a new controller for the given connection.
func NewNetworkController(conn net.Conn) *NetworkController {
	return &NetworkController{
		conn: conn,
		enc:  json.NewEncoder(conn),
		dec:  json.NewDecoder(conn),
	}
}

// Send implements Transport.
func (nc *NetworkController) Send(msg ServerMessage) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.enc.Encode(msg)
}

// Recv implements Transport.
func (nc *NetworkController) Recv() (ClientMessage, error) {
	var msg ClientMessage
	err := nc.dec.Decode(&msg)
	return msg, err
}

// BuildStateView converts a battle snapshot into the protocol view.
func BuildStateView(sessionID string, snap game.Snapshot) *StateView {
	sv := &StateView{
		SessionID:  sessionID,
		Turn:       snap.Turn,
		Phase:      snap.Phase.String(),
		IsYourTurn: snap.Phase == game.PhasePlayerTurn,
		Over:       snap.Phase.Terminal(),
	}

	p := snap.Player
	sv.You = PlayerView{
		Name:         p.Name,
		HP:           p.Health,
		MaxHP:        p.MaxHealth,
		Shield:       p.Shield,
		Energy:       p.Energy,
		MaxEnergy:    p.MaxEnergy,
		Hand:         make([]CardView, 0, len(p.Hand)),
		DeckCount:    p.DeckCount,
		DiscardCount: p.DiscardCount,
		Status:       p.Status,
	}
	for i, c := range p.Hand {
		sv.You.Hand = append(sv.You.Hand, CardView{
			Index:       i,
			Name:        c.Name,
			Cost:        c.Cost,
			Description: c.Description,
			Playable:    c.Playable,
		})
	}

	o := snap.Opponent
	sv.Opponent = OpponentView{
		Name:   o.Name,
		HP:     o.Health,
		MaxHP:  o.MaxHealth,
		Shield: o.Shield,
		Status: o.Status,
		Intent: o.NextAction.String(),
	}
	return sv
}

// BuildEventView converts a logged event into the protocol view.
func BuildEventView(e log.GameEvent) *EventView {
	return &EventView{
		Seq:     e.Seq,
		Turn:    e.Turn,
		Phase:   e.Phase,
		Actor:   e.Actor,
		Type:    e.Type.String(),
		Card:    e.Card,
		Details: e.Details,
	}
}

// ServeSession runs the command loop for one client: it streams new events
// and the current state after every command, and a game_over message once
// the battle ends. A quit message or a closed transport ends the loop early.
func ServeSession(ctx context.Context, sess *Session, t Transport) error {
	sent := 0
	flush := func() error {
		events := sess.EventsSince(sent)
		for _, e := range events {
			if err := t.Send(ServerMessage{Type: MsgNotify, Event: BuildEventView(e)}); err != nil {
				return fmt.Errorf("send notify: %w", err)
			}
		}
		sent += len(events)
		if err := t.Send(ServerMessage{Type: MsgState, State: sess.State()}); err != nil {
			return fmt.Errorf("send state: %w", err)
		}
		return nil
	}

	if err := flush(); err != nil {
		return err
	}

	for !sess.Over() {
		msg, err := t.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("recv command: %w", err)
		}

		switch msg.Type {
		case MsgPlay:
			sess.PlayCard(ctx, msg.Index)
		case MsgEndTurn:
			if sess.Pass(ctx) && !sess.Over() {
				// Show the enemy's turn before it resolves.
				if err := flush(); err != nil {
					return err
				}
				if err := sess.ResolveEnemyTurn(ctx); err != nil {
					return err
				}
			}
		case MsgQuit:
			return nil
		case MsgJoin:
			// Already joined; resend the state below.
		default:
			if err := t.Send(ServerMessage{Type: MsgError, Error: fmt.Sprintf("unknown command %q", msg.Type)}); err != nil {
				return fmt.Errorf("send error: %w", err)
			}
		}

		if err := flush(); err != nil {
			return err
		}
	}

	snap := sess.Snapshot()
	return t.Send(ServerMessage{
		Type:   MsgGameOver,
		State:  BuildStateView(sess.ID, snap),
		Result: ResultText(snap.Phase),
	})
}
