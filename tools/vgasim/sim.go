package main

import (
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"kterm/kernel/hal"
	"kterm/kernel/kfmt"
)

// simulator runs the terminal pool against a tcell screen.
type simulator struct {
	screen tcell.Screen
	frame  *screenFrame
	crtc   *crtc
	log    *zap.SugaredLogger
}

func newSimulator(screen tcell.Screen, cfg Config, log *zap.SugaredLogger) (*simulator, error) {
	fg, bg, err := cfg.Colors()
	if err != nil {
		return nil, err
	}

	s := &simulator{
		screen: screen,
		frame:  newScreenFrame(screen),
		crtc:   newCRTC(screen, cfg.Cursor.Blink, log),
		log:    log,
	}

	hal.AttachTerminals(s.frame, s.crtc.writePort)
	for i := 0; i < hal.NumTerminals; i++ {
		term := hal.Terminal(i)
		term.SetForegroundColor(fg)
		term.SetBackgroundColor(bg)
	}

	if cfg.Display.Banner != "" {
		kfmt.Printf("%s\n", cfg.Display.Banner)
	}

	s.screen.Show()
	log.Infow("simulator started", "terminals", hal.NumTerminals, "fg", fg.String(), "bg", bg.String())
	return s, nil
}

// handleEvent processes a single screen event and returns true if the
// simulator should exit.
func (s *simulator) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case nil:
		return true
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			s.log.Info("quit requested")
			return true
		}

		key, ok := translateKey(ev)
		if !ok {
			s.log.Debugw("ignoring unmapped key", "key", ev.Name())
			return false
		}

		hal.DispatchKey(key)
		s.log.Debugw("key dispatched", "kind", key.Kind, "terminal", hal.ActiveTerminalIndex())
	case *tcell.EventResize:
		s.screen.Sync()
	}

	s.screen.Show()
	return false
}

func (s *simulator) run() error {
	for !s.handleEvent(s.screen.PollEvent()) {
	}
	return nil
}
