// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package mediakeys

// Listener receives media key events from an EventSource.
//
// Listeners are removed by identity, so implementations must be comparable
// (in practice, pointer types). EventSource.AddListener panics otherwise.
type Listener interface {
	OnKeyPressed(event KeyEvent)
}

// Session is a media playback session that can be toggled by the play/pause key.
type Session interface {
	IsPlaying() bool
	Play()
	Pause()
}

type SessionRegistry interface {
	// Returns the most recently added session, or false if there is none.
	GetActiveSession() (Session, bool)
}
