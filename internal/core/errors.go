// Package core defines sentinel errors.
package core

import "errors"

// Setup errors are fatal to a run and surface before capture starts.
var (
	ErrNoDevices      = errors.New("framecap: no capture devices available")
	ErrDeviceNotFound = errors.New("framecap: capture device not found")
)
