package presenter

import (
	"time"

	"github.com/soocke/focus-widget-go/ui/model"
)

// PresenceSource reports the signal published by the sampler.
type PresenceSource interface {
	Focused() bool
	CameraAvailable() bool
}

// TimerView displays the formatted accumulated time.
type TimerView interface {
	SetElapsed(text string)
}

// SessionPresenter advances the session model from the presence signal and
// pushes the clock text to the view.
type SessionPresenter struct {
	sess     *model.SessionModel
	presence PresenceSource
	view     TimerView
	last     string
}

// NewSessionPresenter returns a new SessionPresenter.
func NewSessionPresenter(sess *model.SessionModel, presence PresenceSource, view TimerView) *SessionPresenter {
	return &SessionPresenter{sess: sess, presence: presence, view: view}
}

// Tick reads focused once, advances the model and refreshes the view when the
// text changes. It returns the focused value it consumed.
func (p *SessionPresenter) Tick(now time.Time) bool {
	if p == nil || p.sess == nil || p.presence == nil || p.view == nil {
		return false
	}
	if !p.sess.Running() {
		return false
	}
	focused := p.presence.Focused()
	p.sess.OnTick(focused, now)
	text := model.FormatClock(p.sess.Elapsed())
	if text != p.last {
		p.last = text
		p.view.SetElapsed(text)
	}
	return focused
}

// Refresh pushes the current value regardless of running state.
func (p *SessionPresenter) Refresh() {
	if p == nil || p.sess == nil || p.view == nil {
		return
	}
	p.last = model.FormatClock(p.sess.Elapsed())
	p.view.SetElapsed(p.last)
}
