package presenter

import "github.com/benbjohnson/clock"

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick on the sub-presenters and invokes a scheduler callback.
// The zero value is usable (methods are nil-safe).
type Loop struct {
	Session  *SessionPresenter
	Status   *StatusPresenter
	Clock    clock.Clock
	Schedule func()
}

func NewLoop(sess *SessionPresenter, status *StatusPresenter, clk clock.Clock, schedule func()) *Loop {
	if clk == nil {
		clk = clock.New()
	}
	return &Loop{Session: sess, Status: status, Clock: clk, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	if l.Clock == nil {
		l.Clock = clock.New()
	}
	now := l.Clock.Now()
	focused := l.Session.Tick(now)
	l.Status.Tick(focused)
	if l.Schedule != nil {
		l.Schedule()
	}
}
