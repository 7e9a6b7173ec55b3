package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/peterkuimelis/cosmicloot/internal/game"
	cosmicnet "github.com/peterkuimelis/cosmicloot/internal/net"
)

var (
	styleText    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleIntent  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Italic(true)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleVictory = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleDefeat  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// Line is one row of the battle screen.
type Line struct {
	Text  string
	Style tcell.Style
}

// Lines lays out the battle state, the most recent log lines and, once the
// battle is over, the result banner.
func Lines(sv *cosmicnet.StateView, log []string) []Line {
	you, opp := sv.You, sv.Opponent

	lines := []Line{
		{fmt.Sprintf("COSMIC LOOT | Turn %d | %s", sv.Turn, sv.Phase), styleTitle},
		{},
		{fmt.Sprintf("%s  HP %d/%d  Shield %d", opp.Name, opp.HP, opp.MaxHP, opp.Shield), styleText},
		{"Next: " + opp.Intent, styleIntent},
		{opp.Status, styleStatus},
		{},
		{fmt.Sprintf("%s  HP %d/%d  Shield %d  Energy %d/%d", you.Name, you.HP, you.MaxHP, you.Shield, you.Energy, you.MaxEnergy), styleText},
		{fmt.Sprintf("Deck %d  Discard %d", you.DeckCount, you.DiscardCount), styleDim},
		{you.Status, styleStatus},
		{},
		{"Hand:", styleTitle},
	}
	for _, c := range you.Hand {
		style := styleText
		if !c.Playable {
			style = styleDim
		}
		lines = append(lines, Line{fmt.Sprintf(" %d) %-16s [%d] %s", c.Index+1, c.Name, c.Cost, c.Description), style})
	}
	lines = append(lines, Line{})

	switch {
	case sv.Phase == game.PhaseVictory.String():
		lines = append(lines, Line{cosmicnet.ResultText(game.PhaseVictory), styleVictory}, Line{"[q] quit", styleDim})
	case sv.Phase == game.PhaseDefeat.String():
		lines = append(lines, Line{cosmicnet.ResultText(game.PhaseDefeat), styleDefeat}, Line{"[q] quit", styleDim})
	case sv.IsYourTurn:
		lines = append(lines, Line{"[1-9] play card  [e] end turn  [q] quit", styleDim})
	default:
		lines = append(lines, Line{"Enemy is acting...", styleIntent})
	}

	if len(log) > 0 {
		lines = append(lines, Line{})
		for _, l := range log {
			lines = append(lines, Line{l, styleDim})
		}
	}
	return lines
}

// render draws lines on the screen.
func render(s tcell.Screen, lines []Line) {
	s.Clear()
	for y, l := range lines {
		drawText(s, 1, y, l.Style, l.Text)
	}
	s.Show()
}
