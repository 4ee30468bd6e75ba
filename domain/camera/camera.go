// Package camera defines the video device contract consumed by the presence sampler.
package camera

import (
	"errors"
	"image"
)

var (
	// ErrUnavailable is returned by an Opener when no device can be opened at the index.
	ErrUnavailable = errors.New("camera unavailable")
	// ErrReadFailed is returned by Device.Read when no frame could be grabbed.
	ErrReadFailed = errors.New("camera frame read failed")
)

// DefaultIndex is the system default video device.
const DefaultIndex = 0

// Device is an opened video source. Read may block until a frame is available
// and must not be called from the UI goroutine.
type Device interface {
	Opened() bool
	Read() (image.Image, error)
	Close() error
}

// Opener opens the device at index.
type Opener func(index int) (Device, error)
