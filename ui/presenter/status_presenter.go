package presenter

import (
	"github.com/soocke/focus-widget-go/ui/model"
)

// SessionState exposes the session flags the status depends on.
type SessionState interface {
	Running() bool
	Started() bool
}

// StatusView sets the status indicator.
type StatusView interface{ SetStatus(model.Status) }

// StatusPresenter derives the indicator state and updates the view on change.
type StatusPresenter struct {
	sess     SessionState
	presence PresenceSource
	view     StatusView
	latest   model.Status
	shown    bool
}

func NewStatusPresenter(sess SessionState, presence PresenceSource, view StatusView) *StatusPresenter {
	return &StatusPresenter{sess: sess, presence: presence, view: view}
}

// Current returns the state the indicator should show now.
func (p *StatusPresenter) Current() model.Status {
	if p == nil || p.presence == nil {
		return model.StatusReady
	}
	return p.statusFor(p.presence.Focused())
}

func (p *StatusPresenter) statusFor(focused bool) model.Status {
	if p.sess == nil || p.presence == nil {
		return model.StatusReady
	}
	return model.StatusFor(p.sess.Running(), p.sess.Started(), focused, p.presence.CameraAvailable())
}

// Tick recomputes the state from the focused value consumed by this tick.
// Idle states are set by Refresh from the toggle path, so a paused widget
// keeps its indicator untouched.
func (p *StatusPresenter) Tick(focused bool) {
	if p == nil || p.sess == nil || !p.sess.Running() {
		return
	}
	p.show(p.statusFor(focused))
}

// Refresh pushes the current state if it differs from the last one shown.
func (p *StatusPresenter) Refresh() {
	if p == nil {
		return
	}
	p.show(p.Current())
}

func (p *StatusPresenter) show(s model.Status) {
	if p.view == nil {
		return
	}
	if p.shown && s == p.latest {
		return
	}
	p.latest = s
	p.shown = true
	p.view.SetStatus(s)
}
