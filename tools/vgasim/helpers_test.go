package main

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"kterm/device/video/console"
)

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()

	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(console.Width, console.Height)

	return s
}

// rowText returns the runes shown on a screen row with trailing blanks removed.
func rowText(s tcell.SimulationScreen, row int) string {
	s.Show()
	cells, w, _ := s.GetContents()

	var sb strings.Builder
	for _, cell := range cells[row*w : (row+1)*w] {
		if len(cell.Runes) == 0 {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(cell.Runes[0])
	}
	return strings.TrimRight(sb.String(), " ")
}
