package presenter

import (
	"log/slog"
	"time"

	"github.com/soocke/focus-widget-go/ui/model"
)

const (
	LabelStart  = "Start Focus Session"
	LabelPause  = "Pause Session"
	LabelResume = "Resume Session"
)

// ToggleView updates the button affected by session toggling.
type ToggleView interface {
	SetToggleLabel(string)
}

// WidgetView is the full surface driven by the presenters.
type WidgetView interface {
	TimerView
	StatusView
	ToggleView
}

// TogglePresenter owns the start/pause flow of the session button.
type TogglePresenter struct {
	sess   *model.SessionModel
	status *StatusPresenter
	timer  *SessionPresenter
	view   ToggleView
	logger *slog.Logger
}

func NewTogglePresenter(sess *model.SessionModel, status *StatusPresenter, timer *SessionPresenter, view ToggleView, logger *slog.Logger) *TogglePresenter {
	return &TogglePresenter{sess: sess, status: status, timer: timer, view: view, logger: logger}
}

// Init shows the initial label, status and clock.
func (p *TogglePresenter) Init() {
	if p == nil || p.sess == nil || p.view == nil {
		return
	}
	p.view.SetToggleLabel(Label(p.sess))
	p.status.Refresh()
	p.timer.Refresh()
}

// Start resumes the session. Idempotent.
func (p *TogglePresenter) Start(now time.Time) {
	if p == nil || p.sess == nil || p.view == nil {
		return
	}
	if p.sess.Running() {
		return
	}
	p.sess.Start(now)
	p.view.SetToggleLabel(LabelPause)
	p.status.Refresh()
	if p.logger != nil {
		p.logger.Info("session started", "accumulated", p.sess.Elapsed())
	}
}

// Pause freezes the session and shows Paused. Idempotent.
func (p *TogglePresenter) Pause() {
	if p == nil || p.sess == nil || p.view == nil {
		return
	}
	if !p.sess.Running() {
		return
	}
	p.sess.Pause()
	p.view.SetToggleLabel(LabelResume)
	p.status.Refresh()
	p.timer.Refresh()
	if p.logger != nil {
		p.logger.Info("session paused", "accumulated", p.sess.Elapsed())
	}
}

// Toggle flips the running state delegating to Start/Pause.
func (p *TogglePresenter) Toggle(now time.Time) {
	if p == nil || p.sess == nil {
		return
	}
	if p.sess.Running() {
		p.Pause()
		return
	}
	p.Start(now)
}

// Label returns the button text for the session's current state.
func Label(sess *model.SessionModel) string {
	switch {
	case sess.Running():
		return LabelPause
	case sess.Started():
		return LabelResume
	default:
		return LabelStart
	}
}
