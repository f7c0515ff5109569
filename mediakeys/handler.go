// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package mediakeys

import (
	"fmt"

	"github.com/spezifisch/mediakeys/logger"
)

var _ Listener = (*KeyHandler)(nil)

// KeyHandler toggles playback of the registry's active session on PlayPause.
type KeyHandler struct {
	registry SessionRegistry
	logger   logger.LoggerInterface
}

func NewKeyHandler(registry SessionRegistry, logger logger.LoggerInterface) *KeyHandler {
	if registry == nil {
		panic("mediakeys: NewKeyHandler called with nil registry")
	}
	return &KeyHandler{registry: registry, logger: logger}
}

func (h *KeyHandler) OnKeyPressed(event KeyEvent) {
	h.logger.Printf("KeyHandler=%p, OnKeyPressed '%s'", h, event)

	switch event {
	case PlayPause:
		session, ok := h.registry.GetActiveSession()
		if !ok {
			return
		}
		if session.IsPlaying() {
			session.Pause()
		} else {
			session.Play()
		}
	case Next, Prev:
		// no session-level track navigation yet
	default:
		panic(fmt.Sprintf("mediakeys: unhandled key event %d", int(event)))
	}
}
