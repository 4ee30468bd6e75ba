package view

import (
	"log/slog"

	"github.com/soocke/focus-widget-go/ui/model"
	"github.com/soocke/focus-widget-go/ui/presenter"
	"github.com/soocke/focus-widget-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the widget layout: status row, clock and toggle button.
type RootView struct {
	logger *slog.Logger

	Status StatusIndicator
	Timer  TimerDisplay

	ToggleBtn *TButtonWidget
}

// UI is the view contract the presenters drive.
type UI interface {
	SetStatus(s model.Status)
	SetElapsed(text string)
	SetToggleLabel(text string)
}

var _ UI = (*RootView)(nil)

func NewRootView(logger *slog.Logger) *RootView {
	return &RootView{logger: logger}
}

// Build constructs the layout. onToggle is invoked when the button is pressed.
func (rv *RootView) Build(onToggle func()) {
	if rv == nil {
		return
	}
	statusFrame := TFrame()
	Pack(statusFrame, Pady("10p"))
	rv.Status = NewStatusIndicator(statusFrame)

	rv.Timer = NewTimerDisplay()

	rv.ToggleBtn = TButton(Txt(presenter.LabelStart), Style(theme.StylePrimaryButton), Command(onToggle))
	Pack(rv.ToggleBtn, Pady("15p"))
}

// SetStatus updates the status indicator.
func (rv *RootView) SetStatus(s model.Status) {
	if rv != nil && rv.Status != nil {
		rv.Status.SetStatus(s)
	}
}

// SetElapsed updates the clock.
func (rv *RootView) SetElapsed(text string) {
	if rv != nil && rv.Timer != nil {
		rv.Timer.SetElapsed(text)
	}
}

// SetToggleLabel updates the button text.
func (rv *RootView) SetToggleLabel(text string) {
	if rv != nil && rv.ToggleBtn != nil {
		rv.ToggleBtn.Configure(Txt(text))
	}
}
