// Package presence runs the camera sampling loop that turns frames into a
// focused/not-focused signal.
package presence

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/soocke/focus-widget-go/config"
	"github.com/soocke/focus-widget-go/domain/camera"
)

const samplerStatsLogInterval = 5 * time.Second

// Options configures the sampler loop. Zero values fall back to config defaults.
type Options struct {
	FrameInterval time.Duration
	RetryDelay    time.Duration
	AnalysisScale float64
	Clock         clock.Clock
}

// OptionsFromConfig maps the sampling settings of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return Options{
		FrameInterval: cfg.FrameInterval(),
		RetryDelay:    cfg.RetryDelay(),
		AnalysisScale: cfg.AnalysisScale,
	}
}

// Sampler repeatedly reads a frame from the camera, runs face detection and
// publishes whether at least one face is present. It owns the device and
// closes it on Stop.
type Sampler struct {
	dev    camera.Device
	det    FaceDetector
	sink   FocusSink
	logger *slog.Logger
	clock  clock.Clock
	opts   Options

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	stopped bool
	running atomic.Bool

	frames       atomic.Uint64
	faceFrames   atomic.Uint64
	readFailures atomic.Uint64
	closedWaits  atomic.Uint64
	detectErrors atomic.Uint64
	inferNanos   atomic.Uint64
	lastSample   atomic.Int64 // unix nanos

	// touched only by the loop goroutine
	readFailing   bool
	detectFailing bool
	lastStatsLog  time.Time
}

// NewSampler constructs a sampler for an already opened device.
func NewSampler(dev camera.Device, det FaceDetector, sink FocusSink, logger *slog.Logger, opts Options) *Sampler {
	def := OptionsFromConfig(nil)
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = def.FrameInterval
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = def.RetryDelay
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Sampler{dev: dev, det: det, sink: sink, logger: logger, clock: opts.Clock, opts: opts}
}

// Start launches the sampling goroutine. It is a no-op if already running or stopped.
func (s *Sampler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || s.done != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.running.Store(true)
	go s.loop(ctx, s.done)
}

// Stop signals the loop to exit, waits for it and releases the camera. Idempotent.
func (s *Sampler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	if s.dev != nil {
		if err := s.dev.Close(); err != nil {
			s.logger.Error("camera release", "error", err)
		}
	}
	s.logger.Info("sampler stopped", "frames", s.frames.Load(), "face_frames", s.faceFrames.Load())
}

// Running reports whether the loop goroutine is active.
func (s *Sampler) Running() bool { return s.running.Load() }

// Stats returns a snapshot of the loop counters. Safe to call from any goroutine.
func (s *Sampler) Stats() SamplerStats {
	frames := s.frames.Load()
	total := s.inferNanos.Load()
	var avg time.Duration
	if frames > 0 && total > 0 {
		avg = time.Duration(total / frames)
	}
	var last time.Time
	var age time.Duration
	if ns := s.lastSample.Load(); ns != 0 {
		last = time.Unix(0, ns)
		age = s.clock.Now().Sub(last)
	}
	return SamplerStats{
		Frames:        frames,
		FaceFrames:    s.faceFrames.Load(),
		ReadFailures:  s.readFailures.Load(),
		ClosedWaits:   s.closedWaits.Load(),
		DetectErrors:  s.detectErrors.Load(),
		AvgInference:  avg,
		LastSample:    last,
		LastSampleAge: age,
	}
}

func (s *Sampler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer s.running.Store(false)
	s.lastStatsLog = s.clock.Now()
	for {
		if ctx.Err() != nil {
			return
		}
		delay := s.sampleOnce()
		if now := s.clock.Now(); now.Sub(s.lastStatsLog) >= samplerStatsLogInterval {
			s.lastStatsLog = now
			s.logStats()
		}
		select {
		case <-ctx.Done():
			return
		case <-s.clock.After(delay):
		}
	}
}

// sampleOnce runs one iteration and returns how long to wait before the next.
func (s *Sampler) sampleOnce() time.Duration {
	if !s.dev.Opened() {
		s.closedWaits.Add(1)
		return s.opts.RetryDelay
	}

	frame, err := s.dev.Read()
	if err != nil || frame == nil {
		s.readFailures.Add(1)
		if !s.readFailing {
			s.readFailing = true
			s.logger.Debug("camera read failed", "error", err)
		}
		return s.opts.FrameInterval
	}
	s.readFailing = false

	start := s.clock.Now()
	faces, err := s.det.DetectFaces(downscale(frame, s.opts.AnalysisScale))
	end := s.clock.Now()
	s.inferNanos.Add(elapsedNanos(start, end))
	s.frames.Add(1)
	s.lastSample.Store(end.UnixNano())

	if err != nil {
		s.detectErrors.Add(1)
		if !s.detectFailing {
			s.detectFailing = true
			s.logger.Warn("face detection failed", "error", err)
		}
		s.sink.SetFocused(false)
		return s.opts.FrameInterval
	}
	s.detectFailing = false

	focused := faces > 0
	if focused {
		s.faceFrames.Add(1)
	}
	s.sink.SetFocused(focused)
	return s.opts.FrameInterval
}

func (s *Sampler) logStats() {
	stats := s.Stats()
	s.logger.Debug("sampler.stats",
		"frames", stats.Frames,
		"face_frames", stats.FaceFrames,
		"read_failures", stats.ReadFailures,
		"closed_waits", stats.ClosedWaits,
		"detect_errors", stats.DetectErrors,
		"avg_inference", stats.AvgInference,
		"age", stats.LastSampleAge,
	)
}

// elapsedNanos is end-start, or zero when the clock stepped backwards.
func elapsedNanos(start, end time.Time) uint64 {
	d := end.Sub(start)
	if d < 0 {
		return 0
	}
	return uint64(d.Nanoseconds())
}
