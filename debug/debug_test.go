package debug

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/goleak"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitFor(t *testing.T, mock *clock.Mock, step time.Duration, cond func() bool) {
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

func TestLoggersEmitAndStopWithContext(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	out := &syncBuffer{}
	logger := slog.New(slog.NewJSONHandler(out, nil))
	mock := clock.NewMock()
	ctx, cancel := context.WithCancel(context.Background())

	StartGoroutineLogger(ctx, mock, time.Second, logger)
	StartMemLogger(ctx, mock, time.Second, logger)

	waitFor(t, mock, time.Second, func() bool {
		s := out.String()
		return strings.Contains(s, "goroutine-stacks") && strings.Contains(s, "memstats")
	})
	cancel()
	// goleak verifies both goroutines exit
	time.Sleep(10 * time.Millisecond)
}

func TestReadGoroutineStats(t *testing.T) {
	st := ReadGoroutineStats()
	if st.Goroutines == 0 || st.StackSys == 0 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestProcessRSS(t *testing.T) {
	rss, err := processRSS()
	if err != nil {
		t.Skipf("rss unavailable: %v", err)
	}
	if rss == 0 {
		t.Fatalf("expected non-zero rss")
	}
}
