package tui

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/peterkuimelis/cosmicloot/internal/log"
	cosmicnet "github.com/peterkuimelis/cosmicloot/internal/net"
)

const logLines = 8

// CommandKind is what a key press asks the battle to do.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdPlay
	CmdEndTurn
	CmdQuit
)

// Command is a decoded key press.
type Command struct {
	Kind  CommandKind
	Index int // hand index for CmdPlay
}

// KeyCommand maps a key event to a battle command: 1-9 play the matching
// hand card, e ends the turn, q or Escape quits.
func KeyCommand(ev *tcell.EventKey) Command {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Command{Kind: CmdQuit}
	case tcell.KeyEnter:
		return Command{Kind: CmdEndTurn}
	case tcell.KeyRune:
		r := ev.Rune()
		switch {
		case r >= '1' && r <= '9':
			return Command{Kind: CmdPlay, Index: int(r - '1')}
		case r == 'e' || r == 'E':
			return Command{Kind: CmdEndTurn}
		case r == 'q' || r == 'Q':
			return Command{Kind: CmdQuit}
		}
	}
	return Command{Kind: CmdNone}
}

// App runs one battle session on a terminal screen.
type App struct {
	screen tcell.Screen
	sess   *cosmicnet.Session
	log    []string
	seen   int
}

// NewApp returns an app drawing sess on an initialized screen.
func NewApp(screen tcell.Screen, sess *cosmicnet.Session) *App {
	return &App{screen: screen, sess: sess}
}

// Run draws the battle and handles keys until the player quits or ctx ends.
// The screen is left open; the caller finalizes it.
func (a *App) Run(ctx context.Context) error {
	for {
		a.draw()
		if err := ctx.Err(); err != nil {
			return err
		}

		ev := a.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			// Screen finalized.
			return nil
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventKey:
			cmd := KeyCommand(ev)
			switch cmd.Kind {
			case CmdQuit:
				return nil
			case CmdPlay:
				if !a.sess.Over() {
					a.sess.PlayCard(ctx, cmd.Index)
				}
			case CmdEndTurn:
				if !a.sess.Over() && a.sess.Pass(ctx) && !a.sess.Over() {
					a.draw()
					if err := a.sess.ResolveEnemyTurn(ctx); err != nil {
						return err
					}
				}
			}
		}
	}
}

func (a *App) draw() {
	for _, e := range a.sess.EventsSince(a.seen) {
		a.log = append(a.log, log.FormatEvent(e))
		a.seen++
	}
	if len(a.log) > logLines {
		a.log = a.log[len(a.log)-logLines:]
	}
	render(a.screen, Lines(a.sess.State(), a.log))
}
