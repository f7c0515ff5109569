// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package mediakeys

import (
	"fmt"
	"strings"
)

// KeyEvent is a classified hardware media key press.
type KeyEvent int

const (
	PlayPause KeyEvent = iota
	Next
	Prev
)

func (e KeyEvent) String() string {
	switch e {
	case PlayPause:
		return "PlayPause"
	case Next:
		return "Next"
	case Prev:
		return "Prev"
	}
	return "Unknown"
}

// ParseKeyEvent is the inverse of KeyEvent.String. Matching ignores case,
// and "previous" is accepted for Prev.
func ParseKeyEvent(name string) (KeyEvent, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "playpause":
		return PlayPause, nil
	case "next":
		return Next, nil
	case "prev", "previous":
		return Prev, nil
	}
	return 0, fmt.Errorf("unknown key event %q", name)
}
