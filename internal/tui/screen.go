// Package tui plays a battle in the terminal using tcell.
package tui

import "github.com/gdamore/tcell/v2"

// NewScreen creates and initializes a terminal screen.
func NewScreen() (tcell.Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.Clear()
	return s, nil
}

// drawText writes text starting at (x, y), clipped to the screen width.
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	width, _ := s.Size()
	for _, r := range text {
		if x >= width {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
