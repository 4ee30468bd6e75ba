package presence

import (
	"image"
	"time"
)

// FaceDetector reports how many faces are visible in a frame.
type FaceDetector interface {
	DetectFaces(img image.Image) (int, error)
}

// FocusSink receives the latest focused signal. Implementations must be safe
// for use from the sampler goroutine while the UI goroutine reads.
type FocusSink interface {
	SetFocused(bool)
}

// SamplerStats summarises sampler loop behaviour for instrumentation.
type SamplerStats struct {
	Frames        uint64
	FaceFrames    uint64
	ReadFailures  uint64
	ClosedWaits   uint64
	DetectErrors  uint64
	AvgInference  time.Duration
	LastSample    time.Time
	LastSampleAge time.Duration
}
