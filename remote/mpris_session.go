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
	mprisPath        = dbus.ObjectPath("/org/mpris/MediaPlayer2")
	mprisNamePrefix  = "org.mpris.MediaPlayer2."
	mprisPlayerIface = "org.mpris.MediaPlayer2.Player"
)

var _ mediakeys.Session = (*MprisSession)(nil)

// MprisSession controls one MPRIS2 player on the bus.
type MprisSession struct {
	name   string
	obj    dbus.BusObject
	logger logger.LoggerInterface
}

func NewMprisSession(name string, obj dbus.BusObject, logger logger.LoggerInterface) *MprisSession {
	return &MprisSession{name: name, obj: obj, logger: logger}
}

func (m *MprisSession) Name() string {
	return m.name
}

func (m *MprisSession) String() string {
	return m.name
}

func (m *MprisSession) IsPlaying() bool {
	v, err := m.obj.GetProperty(mprisPlayerIface + ".PlaybackStatus")
	if err != nil {
		m.logger.PrintError("mpris IsPlaying "+m.name, err)
		return false
	}
	status, ok := v.Value().(string)
	if !ok {
		m.logger.PrintError("mpris IsPlaying "+m.name, fmt.Errorf("unexpected PlaybackStatus %v", v))
		return false
	}
	return status == "Playing"
}

func (m *MprisSession) Play() {
	m.call("Play")
}

func (m *MprisSession) Pause() {
	m.call("Pause")
}

func (m *MprisSession) call(method string) {
	m.logger.Printf("mpris: %s -> %s", method, m.name)
	if err := m.obj.Call(mprisPlayerIface+"."+method, 0).Err; err != nil {
		m.logger.PrintError("mpris "+method+" "+m.name, err)
	}
}
