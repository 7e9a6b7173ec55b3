package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/peterkuimelis/cosmicloot/internal/game"
)

var (
	titleColor  = color.New(color.FgCyan, color.Bold)
	intentColor = color.New(color.FgYellow)
	statusColor = color.New(color.FgYellow, color.Italic)
	winColor    = color.New(color.FgGreen, color.Bold)
	loseColor   = color.New(color.FgRed, color.Bold)
	dimColor    = color.New(color.FgHiBlack)
)

// Client connects to a battle server and provides a terminal REPL.
type Client struct {
	conn net.Conn
	in   *bufio.Reader
	out  io.Writer
}

// NewClient wraps an established connection. Commands are read from in and
// the battle is rendered to out.
func NewClient(conn net.Conn, in io.Reader, out io.Writer) *Client {
	return &Client{conn: conn, in: bufio.NewReader(in), out: out}
}

// Connect connects to a server, sends the join handshake, and runs the REPL.
func Connect(ctx context.Context, addr string, in io.Reader, out io.Writer) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	if err := encodeJoin(conn); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	fmt.Fprintln(out, "Connected! Waiting for the battle to start...")
	return NewClient(conn, in, out).RunREPL(ctx)
}

// RunREPL reads server messages and handles them interactively.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case MsgNotify:
			c.renderEvent(msg.Event)

		case MsgError:
			loseColor.Fprintf(c.out, "! %s\n", msg.Error)

		case MsgState:
			c.renderState(msg.State)
			if msg.State == nil || !msg.State.IsYourTurn {
				continue
			}
			cmd, ok := c.readCommand(len(msg.State.You.Hand))
			if !ok {
				cmd = ClientMessage{Type: MsgQuit}
			}
			if err := enc.Encode(cmd); err != nil {
				return fmt.Errorf("send %s: %w", cmd.Type, err)
			}
			if cmd.Type == MsgQuit {
				return nil
			}

		case MsgGameOver:
			c.renderState(msg.State)
			c.renderResult(msg.Result)
			return nil
		}
	}
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	// Format like the TextLogger
	phase := ev.Phase
	for len(phase) < 12 {
		phase += " "
	}
	dimColor.Fprintf(c.out, "T%-2d %s| %s\n", ev.Turn, phase, ev.Details)
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}

	opp, you := sv.Opponent, sv.You

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "╔══════════════════════════════════════════════════════╗")
	titleColor.Fprintf(c.out, "║  %s", opp.Name)
	fmt.Fprintf(c.out, "  HP: %d/%d  Shield: %d\n", opp.HP, opp.MaxHP, opp.Shield)
	intentColor.Fprintf(c.out, "║  Next: %s\n", opp.Intent)
	if opp.Status != "" {
		statusColor.Fprintf(c.out, "║  %s\n", opp.Status)
	}
	fmt.Fprintln(c.out, "║──────────────────────────────────────────────────────")
	titleColor.Fprintf(c.out, "║  %s", you.Name)
	fmt.Fprintf(c.out, "  HP: %d/%d  Shield: %d  Energy: %d/%d\n",
		you.HP, you.MaxHP, you.Shield, you.Energy, you.MaxEnergy)
	fmt.Fprintf(c.out, "║  Deck: %d  Discard: %d\n", you.DeckCount, you.DiscardCount)
	if you.Status != "" {
		statusColor.Fprintf(c.out, "║  %s\n", you.Status)
	}
	fmt.Fprintln(c.out, "╚══════════════════════════════════════════════════════╝")
	fmt.Fprintf(c.out, "Turn %d | %s\n", sv.Turn, sv.Phase)

	if len(you.Hand) > 0 {
		fmt.Fprintln(c.out, "\nHand:")
		for _, card := range you.Hand {
			line := fmt.Sprintf("  %d) %s [%d] %s", card.Index+1, card.Name, card.Cost, card.Description)
			if card.Playable {
				fmt.Fprintln(c.out, line)
			} else {
				dimColor.Fprintln(c.out, line)
			}
		}
	}
}

func (c *Client) renderResult(result string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "═══════════════════════════════════")
	if result == ResultText(game.PhaseVictory) {
		winColor.Fprintf(c.out, "          %s\n", result)
	} else {
		loseColor.Fprintf(c.out, "          %s\n", result)
	}
	fmt.Fprintln(c.out, "═══════════════════════════════════")
}

// readCommand prompts until the player enters a card number, "e" or "q".
// It returns false when input is exhausted.
func (c *Client) readCommand(handSize int) (ClientMessage, bool) {
	for {
		if handSize > 0 {
			fmt.Fprintf(c.out, "\n[1-%d] play card, [e] end turn, [q] quit > ", handSize)
		} else {
			fmt.Fprint(c.out, "\n[e] end turn, [q] quit > ")
		}
		line, err := c.in.ReadString('\n')
		line = strings.ToLower(strings.TrimSpace(line))
		if line == "" && err != nil {
			return ClientMessage{}, false
		}

		switch line {
		case "e", "end":
			return ClientMessage{Type: MsgEndTurn}, true
		case "q", "quit":
			return ClientMessage{Type: MsgQuit}, true
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 1 || n > handSize {
			if handSize > 0 {
				fmt.Fprintf(c.out, "Enter a number between 1 and %d, e or q\n", handSize)
			} else {
				fmt.Fprintln(c.out, "Your hand is empty: [e] end turn, [q] quit")
			}
			if err != nil {
				return ClientMessage{}, false
			}
			continue
		}
		return ClientMessage{Type: MsgPlay, Index: n - 1}, true // convert to 0-indexed
	}
}
