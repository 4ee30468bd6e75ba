package model

import (
	"sync/atomic"
)

// PresenceModel is the single shared signal between the sampler goroutine and
// the UI tick. The zero value reports no camera and not focused; use
// NewPresenceModel or PinManual to set up the initial mode.
type PresenceModel struct {
	focused         atomic.Bool
	cameraAvailable atomic.Bool
}

// NewPresenceModel returns a model for a working camera; focused starts false
// until the first sample arrives.
func NewPresenceModel() *PresenceModel {
	m := &PresenceModel{}
	m.cameraAvailable.Store(true)
	return m
}

// PinManual switches to manual mode for the rest of the process: the camera is
// reported unavailable and focused is forced true.
func (m *PresenceModel) PinManual() {
	if m == nil {
		return
	}
	m.cameraAvailable.Store(false)
	m.focused.Store(true)
}

// Focused reports the latest published signal.
func (m *PresenceModel) Focused() bool {
	if m == nil {
		return false
	}
	return m.focused.Load()
}

// SetFocused stores the signal. Ignored in manual mode.
func (m *PresenceModel) SetFocused(b bool) {
	if m == nil || !m.cameraAvailable.Load() {
		return
	}
	m.focused.Store(b)
}

// CameraAvailable reports whether a camera drives the focused signal.
func (m *PresenceModel) CameraAvailable() bool {
	if m == nil {
		return false
	}
	return m.cameraAvailable.Load()
}
