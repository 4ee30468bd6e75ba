package model

// Status enumerates the mutually exclusive states shown by the status indicator.
type Status int

const (
	StatusReady         Status = iota // idle, camera available, never started
	StatusNoCameraReady               // idle, no camera, never started
	StatusFocused                     // running, face visible
	StatusDistracted                  // running, no face
	StatusManual                      // running without a camera
	StatusPaused                      // idle after at least one start
)

// String returns the label shown next to the icon.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusNoCameraReady:
		return "No Camera - Ready"
	case StatusFocused:
		return "Focused"
	case StatusDistracted:
		return "Distracted!"
	case StatusManual:
		return "Manual Mode"
	case StatusPaused:
		return "Paused"
	default:
		return "unknown"
	}
}

// Icon is the glyph drawn next to the status text.
func (s Status) Icon() string {
	switch s {
	case StatusFocused:
		return "🟢"
	case StatusDistracted:
		return "🔴"
	case StatusManual:
		return "🔵"
	case StatusPaused:
		return "⏸️"
	case StatusNoCameraReady:
		return "📷"
	default:
		return "⚪"
	}
}

// StatusFor derives the display state from the session and presence flags.
func StatusFor(running, started, focused, cameraAvailable bool) Status {
	switch {
	case running && !cameraAvailable:
		return StatusManual
	case running && focused:
		return StatusFocused
	case running:
		return StatusDistracted
	case started:
		return StatusPaused
	case !cameraAvailable:
		return StatusNoCameraReady
	default:
		return StatusReady
	}
}
