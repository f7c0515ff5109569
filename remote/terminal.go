// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package remote

import (
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/spezifisch/mediakeys/logger"
	"github.com/spezifisch/mediakeys/mediakeys"
)

// DefaultBindings are the terminal keys used when no bindings are configured.
var DefaultBindings = map[rune]mediakeys.KeyEvent{
	'p': mediakeys.PlayPause,
	' ': mediakeys.PlayPause,
	'n': mediakeys.Next,
	'b': mediakeys.Prev,
}

const terminalHelp = "p/space play/pause  n next  b previous  q quit"

// ParseBindings turns a config table of event name -> key into bindings.
// Each key must be a single character bound to one event. The table is
// merged over DefaultBindings: a configured event drops its default keys,
// events missing from the table keep theirs.
func ParseBindings(table map[string]string) (map[rune]mediakeys.KeyEvent, error) {
	configured := make(map[rune]mediakeys.KeyEvent, len(table))
	events := make(map[mediakeys.KeyEvent]bool, len(table))
	for name, key := range table {
		event, err := mediakeys.ParseKeyEvent(name)
		if err != nil {
			return nil, err
		}
		if events[event] {
			return nil, fmt.Errorf("%s is configured more than once", event)
		}
		events[event] = true
		if utf8.RuneCountInString(key) != 1 {
			return nil, fmt.Errorf("binding for %s must be a single character, got %q", name, key)
		}
		r, _ := utf8.DecodeRuneInString(key)
		if isQuitKey(r) {
			return nil, fmt.Errorf("binding for %s uses the quit key %q", name, key)
		}
		if other, ok := configured[r]; ok {
			return nil, fmt.Errorf("key %q is bound to both %s and %s", key, other, event)
		}
		configured[r] = event
	}

	bindings := make(map[rune]mediakeys.KeyEvent, len(DefaultBindings)+len(configured))
	for r, event := range DefaultBindings {
		if !events[event] {
			bindings[r] = event
		}
	}
	for r, event := range configured {
		bindings[r] = event
	}
	return bindings, nil
}

func isQuitKey(r rune) bool {
	return r == 'q' || r == 'Q'
}

// TerminalKeySource turns key presses on a terminal screen into key events.
// The screen must already be initialized.
type TerminalKeySource struct {
	screen   tcell.Screen
	notifier KeyNotifier
	bindings map[rune]mediakeys.KeyEvent
	logger   logger.LoggerInterface
}

func NewTerminalKeySource(screen tcell.Screen, notifier KeyNotifier, bindings map[rune]mediakeys.KeyEvent, logger logger.LoggerInterface) *TerminalKeySource {
	if bindings == nil {
		bindings = DefaultBindings
	}
	return &TerminalKeySource{
		screen:   screen,
		notifier: notifier,
		bindings: bindings,
		logger:   logger,
	}
}

// Run polls the screen until the user quits or the screen is finalized.
func (t *TerminalKeySource) Run() {
	t.draw("")
	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return
			case tcell.KeyRune:
				if isQuitKey(ev.Rune()) {
					return
				}
				if event, ok := t.bindings[ev.Rune()]; ok {
					t.logger.Printf("terminal: key %q -> %s", ev.Rune(), event)
					t.notifier.NotifyKeyEvent(event)
					t.draw(event.String())
				}
			}
		}
	}
}

func (t *TerminalKeySource) draw(last string) {
	t.screen.Clear()
	drawText(t.screen, 0, 0, terminalHelp)
	if last != "" {
		drawText(t.screen, 0, 1, "sent "+last)
	}
	t.screen.Show()
}

func drawText(screen tcell.Screen, x, y int, text string) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, tcell.StyleDefault)
		x++
	}
}
