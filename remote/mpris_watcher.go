// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package remote

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/spezifisch/mediakeys/logger"
)

const nameOwnerChanged = "org.freedesktop.DBus.NameOwnerChanged"

// MprisWatcher keeps a SessionTracker in sync with the MPRIS2 players on the
// session bus. Players are added in the order they appear.
type MprisWatcher struct {
	tracker SessionTracker
	logger  logger.LoggerInterface

	conn    *dbus.Conn
	signals chan *dbus.Signal
	quit    chan struct{}
	done    chan struct{}
	object  func(name string) dbus.BusObject

	mu       sync.Mutex
	sessions map[string]*MprisSession
}

func NewMprisWatcher(tracker SessionTracker, logger logger.LoggerInterface) *MprisWatcher {
	return &MprisWatcher{
		tracker:  tracker,
		logger:   logger,
		sessions: make(map[string]*MprisSession),
	}
}

// Start connects to the session bus, registers the players that are already
// running and follows players coming and going.
func (w *MprisWatcher) Start() (err error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("mpris: connect session bus: %w", err)
	}
	defer func() {
		if err != nil {
			conn.Close()
		}
	}()

	err = conn.AddMatchSignal(
		dbus.WithMatchObjectPath("/org/freedesktop/DBus"),
		dbus.WithMatchInterface("org.freedesktop.DBus"),
		dbus.WithMatchMember("NameOwnerChanged"),
	)
	if err != nil {
		return fmt.Errorf("mpris: match NameOwnerChanged: %w", err)
	}

	w.object = func(name string) dbus.BusObject {
		return conn.Object(name, mprisPath)
	}
	w.signals = make(chan *dbus.Signal, 16)
	w.quit = make(chan struct{})
	w.done = make(chan struct{})
	conn.Signal(w.signals)

	var names []string
	if err = conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names); err != nil {
		return fmt.Errorf("mpris: list names: %w", err)
	}
	sort.Strings(names)
	for _, name := range names {
		w.playerAppeared(name)
	}

	w.conn = conn
	go w.loop()
	return nil
}

func (w *MprisWatcher) loop() {
	defer close(w.done)
	for {
		select {
		case sig, ok := <-w.signals:
			if !ok {
				// godbus closes registered channels when the connection drops
				w.logger.Print("mpris: bus connection closed")
				return
			}
			w.handleSignal(sig)
		case <-w.quit:
			return
		}
	}
}

func (w *MprisWatcher) handleSignal(sig *dbus.Signal) {
	if sig == nil || sig.Name != nameOwnerChanged || len(sig.Body) != 3 {
		return
	}
	name, _ := sig.Body[0].(string)
	oldOwner, _ := sig.Body[1].(string)
	newOwner, _ := sig.Body[2].(string)

	if oldOwner != "" {
		w.playerVanished(name)
	}
	if newOwner != "" {
		w.playerAppeared(name)
	}
}

func (w *MprisWatcher) playerAppeared(name string) {
	if !strings.HasPrefix(name, mprisNamePrefix) {
		return
	}

	w.mu.Lock()
	if _, ok := w.sessions[name]; ok {
		w.mu.Unlock()
		return
	}
	s := NewMprisSession(name, w.object(name), w.logger)
	w.sessions[name] = s
	w.mu.Unlock()

	w.logger.Printf("mpris: player appeared %s", name)
	w.tracker.Add(s)
}

func (w *MprisWatcher) playerVanished(name string) {
	w.mu.Lock()
	s, ok := w.sessions[name]
	delete(w.sessions, name)
	w.mu.Unlock()

	if ok {
		w.logger.Printf("mpris: player vanished %s", name)
		w.tracker.Remove(s)
	}
}

// Close disconnects from the bus and unregisters all known players.
func (w *MprisWatcher) Close() {
	if w.conn != nil {
		w.conn.RemoveSignal(w.signals)
		if err := w.conn.Close(); err != nil {
			w.logger.PrintError("mpris Close", err)
		}
		close(w.quit)
		<-w.done
		w.conn = nil
	}

	w.mu.Lock()
	sessions := w.sessions
	w.sessions = make(map[string]*MprisSession)
	w.mu.Unlock()
	for _, s := range sessions {
		w.tracker.Remove(s)
	}
}
