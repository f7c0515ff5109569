// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package remote

import (
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/spezifisch/mediakeys/logger"
	"github.com/spezifisch/mediakeys/mediakeys"
)

const (
	gsdName  = "org.gnome.SettingsDaemon.MediaKeys"
	gsdPath  = dbus.ObjectPath("/org/gnome/SettingsDaemon/MediaKeys")
	gsdIface = "org.gnome.SettingsDaemon.MediaKeys"
)

// GsdKeySource grabs the hardware media keys from gnome-settings-daemon and
// forwards them to a KeyNotifier.
type GsdKeySource struct {
	app      string
	notifier KeyNotifier
	logger   logger.LoggerInterface

	conn    *dbus.Conn
	obj     dbus.BusObject
	signals chan *dbus.Signal
	quit    chan struct{}
	done    chan struct{}
}

func NewGsdKeySource(app string, notifier KeyNotifier, logger logger.LoggerInterface) *GsdKeySource {
	return &GsdKeySource{app: app, notifier: notifier, logger: logger}
}

// gsdKeyEvent maps the key names sent in MediaPlayerKeyPressed.
func gsdKeyEvent(key string) (mediakeys.KeyEvent, bool) {
	switch key {
	case "Play", "Pause":
		return mediakeys.PlayPause, true
	case "Next":
		return mediakeys.Next, true
	case "Previous":
		return mediakeys.Prev, true
	}
	return 0, false
}

func (g *GsdKeySource) Start() (err error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("gsd: connect session bus: %w", err)
	}
	defer func() {
		if err != nil {
			conn.Close()
		}
	}()

	err = conn.AddMatchSignal(
		dbus.WithMatchObjectPath(gsdPath),
		dbus.WithMatchInterface(gsdIface),
		dbus.WithMatchMember("MediaPlayerKeyPressed"),
	)
	if err != nil {
		return fmt.Errorf("gsd: match MediaPlayerKeyPressed: %w", err)
	}

	g.signals = make(chan *dbus.Signal, 16)
	g.quit = make(chan struct{})
	g.done = make(chan struct{})
	conn.Signal(g.signals)

	obj := conn.Object(gsdName, gsdPath)
	if err = obj.Call(gsdIface+".GrabMediaPlayerKeys", 0, g.app, uint32(0)).Err; err != nil {
		return fmt.Errorf("gsd: GrabMediaPlayerKeys: %w", err)
	}
	g.logger.Printf("gsd: media keys grabbed for %s", g.app)

	g.conn = conn
	g.obj = obj
	go g.loop()
	return nil
}

func (g *GsdKeySource) loop() {
	defer close(g.done)
	for {
		select {
		case sig, ok := <-g.signals:
			if !ok {
				// godbus closes registered channels when the connection drops
				g.logger.Print("gsd: bus connection closed")
				return
			}
			g.handleSignal(sig)
		case <-g.quit:
			return
		}
	}
}

func (g *GsdKeySource) handleSignal(sig *dbus.Signal) {
	if sig == nil || sig.Name != gsdIface+".MediaPlayerKeyPressed" || len(sig.Body) != 2 {
		return
	}
	app, _ := sig.Body[0].(string)
	key, _ := sig.Body[1].(string)
	if app != g.app {
		return
	}

	event, ok := gsdKeyEvent(key)
	if !ok {
		g.logger.Printf("gsd: ignoring key %q", key)
		return
	}
	g.notifier.NotifyKeyEvent(event)
}

// Close releases the key grab and disconnects.
func (g *GsdKeySource) Close() {
	if g.conn == nil {
		return
	}
	if err := g.obj.Call(gsdIface+".ReleaseMediaPlayerKeys", 0, g.app).Err; err != nil {
		g.logger.PrintError("gsd ReleaseMediaPlayerKeys", err)
	}
	g.conn.RemoveSignal(g.signals)
	if err := g.conn.Close(); err != nil {
		g.logger.PrintError("gsd Close", err)
	}
	close(g.quit)
	<-g.done
	g.conn = nil
}
