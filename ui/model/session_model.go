package model

import (
	"fmt"
	"time"
)

// SessionModel accumulates focused time for a pausable session.
//
// While running, the model keeps start such that accumulated == now - start
// right after every focus or resume transition. Focused ticks advance
// accumulated from start; distracted ticks move start forward instead, so the
// gap is never counted and a later focused tick continues from the frozen value.
// The zero value is ready to use. Not safe for concurrent use: call it from the
// UI goroutine only.
type SessionModel struct {
	running     bool
	started     bool
	start       time.Time
	accumulated time.Duration
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// Start resumes accumulation from the current value.
func (m *SessionModel) Start(now time.Time) {
	if m == nil || m.running {
		return
	}
	m.start = now.Add(-m.accumulated)
	m.running = true
	m.started = true
}

// Pause freezes the accumulated value. No rebase is needed: ticks stop
// touching the model until Start.
func (m *SessionModel) Pause() {
	if m == nil {
		return
	}
	m.running = false
}

// Toggle starts a paused session or pauses a running one and reports the new running state.
func (m *SessionModel) Toggle(now time.Time) bool {
	if m == nil {
		return false
	}
	if m.running {
		m.Pause()
	} else {
		m.Start(now)
	}
	return m.running
}

// OnTick advances (focused) or freezes (distracted) the accumulated time.
// Call periodically from the timer tick. It is a no-op while paused.
func (m *SessionModel) OnTick(focused bool, now time.Time) {
	if m == nil || !m.running {
		return
	}
	if !focused {
		m.start = now.Add(-m.accumulated)
		return
	}
	elapsed := now.Sub(m.start)
	if elapsed < m.accumulated { // clock stepped back
		m.start = now.Add(-m.accumulated)
		return
	}
	m.accumulated = elapsed
}

// Running reports whether the session is accumulating.
func (m *SessionModel) Running() bool { return m != nil && m.running }

// Started reports whether the session was ever started.
func (m *SessionModel) Started() bool { return m != nil && m.started }

// Elapsed returns the accumulated focused time.
func (m *SessionModel) Elapsed() time.Duration {
	if m == nil {
		return 0
	}
	return m.accumulated
}

// FormatClock renders d as HH:MM:SS, truncating to whole seconds.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	hours, rem := total/3600, total%3600
	mins, secs := rem/60, rem%60
	return fmt.Sprintf("%02d:%02d:%02d", hours, mins, secs)
}
