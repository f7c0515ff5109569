// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package session

import (
	"sync"

	"github.com/spezifisch/mediakeys/logger"
	"github.com/spezifisch/mediakeys/mediakeys"
)

var _ mediakeys.SessionRegistry = (*Registry)(nil)

// Registry tracks live media sessions. The active session is the one that
// was added most recently and has not been removed.
type Registry struct {
	logger logger.LoggerInterface

	mu       sync.Mutex
	sessions []mediakeys.Session
}

func NewRegistry(logger logger.LoggerInterface) *Registry {
	return &Registry{logger: logger}
}

// Add registers s as the most recent session. Adding a session that is
// already registered moves it to the front.
func (r *Registry) Add(s mediakeys.Session) {
	if s == nil {
		panic("session: Add called with nil session")
	}

	r.mu.Lock()
	r.remove(s)
	r.sessions = append(r.sessions, s)
	n := len(r.sessions)
	r.mu.Unlock()

	r.logger.Printf("Registry: add session %v (%d registered)", s, n)
}

// Remove unregisters s and reports whether it was registered.
func (r *Registry) Remove(s mediakeys.Session) bool {
	r.mu.Lock()
	removed := r.remove(s)
	n := len(r.sessions)
	r.mu.Unlock()

	if removed {
		r.logger.Printf("Registry: remove session %v (%d registered)", s, n)
	}
	return removed
}

func (r *Registry) remove(s mediakeys.Session) bool {
	for i, registered := range r.sessions {
		if registered == s {
			r.sessions = append(r.sessions[:i:i], r.sessions[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Registry) GetActiveSession() (mediakeys.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sessions) == 0 {
		return nil, false
	}
	return r.sessions[len(r.sessions)-1], true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
