package debug

// Debug goroutine metrics logger. Started only when config.Debug is true.
// Emits goroutine count (runtime metrics) and stack usage at a fixed interval
// so a leaking sampler or tick loop shows up as a growing count.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"

	"github.com/benbjohnson/clock"
)

// GoroutineStats is one goroutine/stack sample.
type GoroutineStats struct {
	Goroutines uint64
	StackInuse uint64
	StackSys   uint64
	HeapAlloc  uint64
}

// ReadGoroutineStats samples the runtime.
func ReadGoroutineStats() GoroutineStats {
	samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
	metrics.Read(samples)
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return GoroutineStats{
		Goroutines: samples[0].Value.Uint64(),
		StackInuse: ms.StackInuse,
		StackSys:   ms.StackSys,
		HeapAlloc:  ms.HeapAlloc,
	}
}

// StartGoroutineLogger logs goroutine count and stack memory every interval until ctx is done.
func StartGoroutineLogger(ctx context.Context, clk clock.Clock, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = time.Second
	}
	if clk == nil {
		clk = clock.New()
	}
	go func() {
		t := clk.Ticker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				st := ReadGoroutineStats()
				logger.Info("goroutine-stacks",
					slog.Uint64("goroutines", st.Goroutines),
					slog.Uint64("stack_inuse", st.StackInuse),
					slog.Uint64("stack_sys", st.StackSys),
					slog.Uint64("heap_alloc", st.HeapAlloc),
				)
			}
		}
	}()
}
