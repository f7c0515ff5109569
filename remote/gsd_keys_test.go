package remote

import (
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/spezifisch/mediakeys/logger"
	"github.com/spezifisch/mediakeys/mediakeys"
	"github.com/stretchr/testify/assert"
)

func TestGsdKeyEvent(t *testing.T) {
	testCases := []struct {
		key   string
		event mediakeys.KeyEvent
		ok    bool
	}{
		{key: "Play", event: mediakeys.PlayPause, ok: true},
		{key: "Pause", event: mediakeys.PlayPause, ok: true},
		{key: "Next", event: mediakeys.Next, ok: true},
		{key: "Previous", event: mediakeys.Prev, ok: true},
		{key: "Stop", ok: false},
		{key: "Rewind", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.key, func(t *testing.T) {
			event, ok := gsdKeyEvent(tc.key)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.event, event)
			}
		})
	}
}

func TestGsdHandleSignal(t *testing.T) {
	notifier := &recordingNotifier{}
	g := NewGsdKeySource("mediakeys", notifier, logger.Init())

	pressed := func(app, key string) *dbus.Signal {
		return &dbus.Signal{
			Name: gsdIface + ".MediaPlayerKeyPressed",
			Body: []interface{}{app, key},
		}
	}

	g.handleSignal(pressed("mediakeys", "Play"))
	g.handleSignal(pressed("mediakeys", "Next"))
	g.handleSignal(pressed("other-app", "Play"))
	g.handleSignal(pressed("mediakeys", "Stop"))
	g.handleSignal(pressed("mediakeys", "Previous"))
	g.handleSignal(&dbus.Signal{Name: gsdIface + ".Other", Body: []interface{}{"mediakeys", "Play"}})
	g.handleSignal(nil)

	assert.Equal(t, []mediakeys.KeyEvent{mediakeys.PlayPause, mediakeys.Next, mediakeys.Prev}, notifier.events)
}

func TestGsdCloseWithoutStart(t *testing.T) {
	g := NewGsdKeySource("mediakeys", &recordingNotifier{}, logger.Init())
	assert.NotPanics(t, g.Close)
}

func TestGsdLoopStopsWhenSignalsClose(t *testing.T) {
	l := logger.Init()
	g := NewGsdKeySource("mediakeys", &recordingNotifier{}, l)
	g.signals = make(chan *dbus.Signal)
	g.quit = make(chan struct{})
	g.done = make(chan struct{})

	close(g.signals)
	go g.loop()

	select {
	case <-g.done:
	case <-time.After(time.Second):
		t.Fatal("gsd loop kept running after the signal channel closed")
	}
	assert.Equal(t, "gsd: bus connection closed", <-l.Prints)
}
