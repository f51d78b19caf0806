package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"kterm/kernel/hal"
	"kterm/kernel/kfmt"
)

func newTestSimulator(t *testing.T, cfg Config) (*simulator, tcell.SimulationScreen) {
	t.Helper()

	s := newTestScreen(t)
	sim, err := newSimulator(s, cfg, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("newSimulator error: %v", err)
	}
	t.Cleanup(func() { kfmt.SetOutputSink(nil) })

	return sim, s
}

func TestSimulatorBanner(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Display.Banner = "hello"
	cfg.Display.Foreground = "yellow"
	cfg.Display.Background = "blue"

	_, s := newTestSimulator(t, cfg)

	if exp, got := "hello", rowText(s, 0); got != exp {
		t.Fatalf("expected row 0 to be %q; got %q", exp, got)
	}

	cells, _, _ := s.GetContents()
	fg, bg, _ := cells[0].Style.Decompose()
	if fg != tcell.PaletteColor(11) || bg != tcell.PaletteColor(4) {
		t.Fatalf("expected yellow on blue; got %v/%v", fg, bg)
	}

	if x, y, visible := s.GetCursor(); !visible || x != 0 || y != 1 {
		t.Fatalf("expected visible cursor at (0, 1); got (%d, %d) visible: %t", x, y, visible)
	}
}

func TestSimulatorHandleEvent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Display.Banner = ""

	sim, s := newTestSimulator(t, cfg)

	specs := []struct {
		ev          tcell.Event
		expQuit     bool
		expTerminal int
		expRow0     string
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone), false, 0, "h"},
		{tcell.NewEventKey(tcell.KeyRune, 'i', tcell.ModNone), false, 0, "hi"},
		{tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone), false, 0, "hi"},
		{tcell.NewEventKey(tcell.KeyF2, 0, tcell.ModNone), false, 1, ""},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), false, 1, "x"},
		{tcell.NewEventResize(80, 25), false, 1, "x"},
		{tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), false, 0, "hi"},
		{tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), false, 0, "h"},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true, 0, "h"},
		{nil, true, 0, "h"},
	}

	for specIndex, spec := range specs {
		if got := sim.handleEvent(spec.ev); got != spec.expQuit {
			t.Errorf("[spec %d] expected quit to be %t; got %t", specIndex, spec.expQuit, got)
		}

		if got := hal.ActiveTerminalIndex(); got != spec.expTerminal {
			t.Errorf("[spec %d] expected terminal %d to be active; got %d", specIndex, spec.expTerminal, got)
		}

		if got := rowText(s, 0); got != spec.expRow0 {
			t.Errorf("[spec %d] expected row 0 to be %q; got %q", specIndex, spec.expRow0, got)
		}
	}
}

func TestNewSimulatorBadColors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Display.Foreground = "purple"

	if _, err := newSimulator(newTestScreen(t), cfg, zap.NewNop().Sugar()); err == nil {
		t.Fatal("expected newSimulator to reject unknown colors")
	}
}
