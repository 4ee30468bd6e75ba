package presence

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/goleak"

	"github.com/soocke/focus-widget-go/domain/camera"
)

type fakeDevice struct {
	opened  atomic.Bool
	failing atomic.Bool
	reads   atomic.Int64
	closed  atomic.Int64
}

func newFakeDevice() *fakeDevice {
	d := &fakeDevice{}
	d.opened.Store(true)
	return d
}

func (d *fakeDevice) Opened() bool { return d.opened.Load() }
func (d *fakeDevice) Read() (image.Image, error) {
	d.reads.Add(1)
	if d.failing.Load() {
		return nil, camera.ErrReadFailed
	}
	return image.NewRGBA(image.Rect(0, 0, 64, 48)), nil
}
func (d *fakeDevice) Close() error { d.closed.Add(1); return nil }

type fakeDetector struct {
	faces atomic.Int64
	err   atomic.Bool
	calls atomic.Int64
}

func (f *fakeDetector) DetectFaces(img image.Image) (int, error) {
	f.calls.Add(1)
	if f.err.Load() {
		return 0, errors.New("inference failed")
	}
	return int(f.faces.Load()), nil
}

type recordingSink struct {
	mu      sync.Mutex
	focused bool
	writes  int
}

func (s *recordingSink) SetFocused(b bool) {
	s.mu.Lock()
	s.focused = b
	s.writes++
	s.mu.Unlock()
}

func (s *recordingSink) get() (bool, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focused, s.writes
}

// advanceUntil keeps moving the mock clock forward until cond holds or the
// real-time deadline passes.
func advanceUntil(t *testing.T, mock *clock.Mock, step time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		mock.Add(step)
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func newTestSampler(dev camera.Device, det FaceDetector, sink FocusSink, mock *clock.Mock) *Sampler {
	return NewSampler(dev, det, sink, nil, Options{
		FrameInterval: 30 * time.Millisecond,
		RetryDelay:    time.Second,
		Clock:         mock,
	})
}

func TestSampler_PublishesFocusFromFaces(t *testing.T) {
	dev := newFakeDevice()
	det := &fakeDetector{}
	det.faces.Store(1)
	sink := &recordingSink{}
	mock := clock.NewMock()
	s := newTestSampler(dev, det, sink, mock)
	s.Start(context.Background())
	defer s.Stop()

	advanceUntil(t, mock, 30*time.Millisecond, func() bool {
		f, n := sink.get()
		return n > 0 && f
	})

	det.faces.Store(0)
	advanceUntil(t, mock, 30*time.Millisecond, func() bool {
		f, _ := sink.get()
		return !f
	})

	st := s.Stats()
	if st.Frames == 0 || st.FaceFrames == 0 {
		t.Fatalf("expected frames and face frames counted, got %+v", st)
	}
}

func TestSampler_DetectorErrorMeansNotFocused(t *testing.T) {
	dev := newFakeDevice()
	det := &fakeDetector{}
	det.faces.Store(1)
	det.err.Store(true)
	sink := &recordingSink{focused: true}
	mock := clock.NewMock()
	s := newTestSampler(dev, det, sink, mock)
	s.Start(context.Background())
	defer s.Stop()

	advanceUntil(t, mock, 30*time.Millisecond, func() bool {
		f, n := sink.get()
		return n > 0 && !f
	})
	if s.Stats().DetectErrors == 0 {
		t.Fatalf("expected detect errors to be counted")
	}
}

func TestSampler_ReadFailureSkipsIteration(t *testing.T) {
	dev := newFakeDevice()
	dev.failing.Store(true)
	det := &fakeDetector{}
	sink := &recordingSink{}
	mock := clock.NewMock()
	s := newTestSampler(dev, det, sink, mock)
	s.Start(context.Background())
	defer s.Stop()

	advanceUntil(t, mock, 30*time.Millisecond, func() bool { return dev.reads.Load() >= 3 })
	if det.calls.Load() != 0 {
		t.Fatalf("detector must not run on failed reads")
	}
	if _, n := sink.get(); n != 0 {
		t.Fatalf("sink must not be written on failed reads, got %d writes", n)
	}

	// recovery
	det.faces.Store(1)
	dev.failing.Store(false)
	advanceUntil(t, mock, 30*time.Millisecond, func() bool {
		f, _ := sink.get()
		return f
	})
	if s.Stats().ReadFailures < 3 {
		t.Fatalf("expected read failures counted, got %d", s.Stats().ReadFailures)
	}
}

func TestSampler_ClosedCameraWaitsRetryDelay(t *testing.T) {
	dev := newFakeDevice()
	dev.opened.Store(false)
	det := &fakeDetector{}
	sink := &recordingSink{}
	mock := clock.NewMock()
	s := newTestSampler(dev, det, sink, mock)
	begin := mock.Now()
	s.Start(context.Background())
	defer s.Stop()

	advanceUntil(t, mock, 250*time.Millisecond, func() bool { return s.Stats().ClosedWaits >= 2 })
	// two closed waits require at least one full retry delay on the mock clock
	if elapsed := mock.Now().Sub(begin); elapsed < time.Second {
		t.Fatalf("expected at least one retry delay to elapse, got %v", elapsed)
	}
	if dev.reads.Load() != 0 {
		t.Fatalf("closed camera must not be read")
	}
}

func TestSampler_StopReleasesCameraAndIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dev := newFakeDevice()
	det := &fakeDetector{}
	sink := &recordingSink{}
	mock := clock.NewMock()
	s := newTestSampler(dev, det, sink, mock)
	s.Start(context.Background())
	advanceUntil(t, mock, 30*time.Millisecond, func() bool { return dev.reads.Load() > 0 })

	s.Stop()
	s.Stop()
	if s.Running() {
		t.Fatalf("sampler still running after Stop")
	}
	if dev.closed.Load() != 1 {
		t.Fatalf("expected camera closed once, got %d", dev.closed.Load())
	}
	// Start after Stop does nothing
	s.Start(context.Background())
	if s.Running() {
		t.Fatalf("sampler restarted after Stop")
	}
}

func TestSampler_ContextCancelStopsLoop(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dev := newFakeDevice()
	mock := clock.NewMock()
	s := newTestSampler(dev, &fakeDetector{}, &recordingSink{}, mock)
	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()

	deadline := time.Now().Add(time.Second)
	for s.Running() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if s.Running() {
		t.Fatalf("loop did not exit on context cancel")
	}
	s.Stop()
}

// rewindingDetector steps the mock clock backwards while "running inference".
type rewindingDetector struct {
	mock *clock.Mock
	by   time.Duration
}

func (r rewindingDetector) DetectFaces(image.Image) (int, error) {
	r.mock.Set(r.mock.Now().Add(-r.by))
	return 1, nil
}

func TestSampler_BackwardClockDoesNotInflateInference(t *testing.T) {
	mock := clock.NewMock()
	mock.Set(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	sink := &recordingSink{}
	s := newTestSampler(newFakeDevice(), rewindingDetector{mock: mock, by: time.Hour}, sink, mock)

	if d := s.sampleOnce(); d != 30*time.Millisecond {
		t.Fatalf("expected frame interval delay, got %v", d)
	}
	st := s.Stats()
	if st.Frames != 1 {
		t.Fatalf("expected one frame, got %+v", st)
	}
	if st.AvgInference != 0 {
		t.Fatalf("backward step must count as zero inference time, got %v", st.AvgInference)
	}
	if f, _ := sink.get(); !f {
		t.Fatalf("face should still be published")
	}
}

func TestElapsedNanos(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := elapsedNanos(t0, t0.Add(5*time.Millisecond)); got != uint64(5*time.Millisecond) {
		t.Fatalf("forward: got %d", got)
	}
	if got := elapsedNanos(t0, t0.Add(-time.Second)); got != 0 {
		t.Fatalf("backward: got %d", got)
	}
	if got := elapsedNanos(t0, t0); got != 0 {
		t.Fatalf("equal: got %d", got)
	}
}
