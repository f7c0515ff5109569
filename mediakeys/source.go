// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package mediakeys

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/spezifisch/mediakeys/logger"
)

// EventSource broadcasts key events to its listeners in registration order.
//
// It is safe for concurrent use. NotifyKeyEvent delivers to a snapshot of the
// listeners taken when the call starts, so listeners may add or remove
// listeners (themselves included) from OnKeyPressed.
type EventSource struct {
	logger logger.LoggerInterface

	mu        sync.Mutex
	listeners []Listener
}

func NewEventSource(logger logger.LoggerInterface) *EventSource {
	return &EventSource{logger: logger}
}

// AddListener appends l. Adding the same listener twice makes it receive
// every event twice.
func (s *EventSource) AddListener(l Listener) {
	if l == nil {
		panic("mediakeys: AddListener called with nil listener")
	}
	if t := reflect.TypeOf(l); !t.Comparable() {
		panic(fmt.Sprintf("mediakeys: AddListener called with non-comparable listener type %s", t))
	}
	s.logger.Printf("EventSource=%p, Add listener %p", s, l)

	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// RemoveListener removes the first occurrence of l, if any.
func (s *EventSource) RemoveListener(l Listener) {
	if l == nil {
		panic("mediakeys: RemoveListener called with nil listener")
	}
	s.logger.Printf("EventSource=%p, Remove listener %p", s, l)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, registered := range s.listeners {
		if registered == l {
			s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
			return
		}
	}
}

func (s *EventSource) GetListenersCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

// Close drops all listeners without notifying them. The source stays usable.
func (s *EventSource) Close() {
	s.logger.Printf("EventSource=%p, Close source", s)

	s.mu.Lock()
	s.listeners = nil
	s.mu.Unlock()
}

// NotifyKeyEvent delivers event to every listener registered at the time of the call.
func (s *EventSource) NotifyKeyEvent(event KeyEvent) {
	s.mu.Lock()
	snapshot := make([]Listener, len(s.listeners))
	copy(snapshot, s.listeners)
	s.mu.Unlock()

	for _, l := range snapshot {
		l.OnKeyPressed(event)
	}
}
