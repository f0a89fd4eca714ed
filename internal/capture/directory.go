package capture

import (
	"github.com/pkg/errors"

	"github.com/netgrab/framecap/internal/core"
)

// Device is one capture interface visible to the engine.
type Device struct {
	Name        string
	Description string
	Addresses   []string
}

// enumerateDevices is the build-specific device discovery call. It is a
// package-level variable so tests can replace it without an OS-level
// capture stack.
var enumerateDevices = listDevices

// Directory enumerates and selects capture devices by name. It never
// mutates device state.
type Directory struct{}

func NewDirectory() *Directory {
	return &Directory{}
}

// List returns a snapshot of the devices currently visible.
func (d *Directory) List() ([]Device, error) {
	devs, err := enumerateDevices()
	if err != nil {
		return nil, errors.Wrap(err, "capture: enumerating devices")
	}
	return devs, nil
}

// Select resolves name against the current snapshot. It fails with
// core.ErrNoDevices when the snapshot is empty and with
// core.ErrDeviceNotFound when no device matches.
func (d *Directory) Select(name string) (Device, error) {
	devs, err := d.List()
	if err != nil {
		return Device{}, err
	}
	if len(devs) == 0 {
		return Device{}, core.ErrNoDevices
	}
	for _, dev := range devs {
		if dev.Name == name {
			return dev, nil
		}
	}
	return Device{}, errors.Wrapf(core.ErrDeviceNotFound, "capture: no device named %q", name)
}
