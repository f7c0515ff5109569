package remote

import (
	"errors"

	"github.com/godbus/dbus/v5"
	"github.com/spezifisch/mediakeys/mediakeys"
)

type fakeBusObject struct {
	dbus.BusObject

	status  interface{}
	propErr error
	callErr error
	calls   []string
}

func (f *fakeBusObject) GetProperty(p string) (dbus.Variant, error) {
	if f.propErr != nil {
		return dbus.Variant{}, f.propErr
	}
	return dbus.MakeVariant(f.status), nil
}

func (f *fakeBusObject) Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call {
	f.calls = append(f.calls, method)
	return &dbus.Call{Err: f.callErr}
}

type recordingNotifier struct {
	events []mediakeys.KeyEvent
}

func (r *recordingNotifier) NotifyKeyEvent(event mediakeys.KeyEvent) {
	r.events = append(r.events, event)
}

var errBus = errors.New("bus error")
