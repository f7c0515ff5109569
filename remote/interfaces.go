// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package remote

import "github.com/spezifisch/mediakeys/mediakeys"

// KeyNotifier is where key sources deliver the keys they capture.
type KeyNotifier interface {
	NotifyKeyEvent(event mediakeys.KeyEvent)
}

// SessionTracker is told about sessions appearing and vanishing.
type SessionTracker interface {
	Add(s mediakeys.Session)
	Remove(s mediakeys.Session) bool
}
