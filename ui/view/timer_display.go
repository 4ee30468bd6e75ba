package view

import (
	"github.com/soocke/focus-widget-go/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// TimerDisplay renders the HH:MM:SS clock.
type TimerDisplay interface {
	SetElapsed(text string)
}

type timerDisplay struct {
	lbl *TLabelWidget
}

// NewTimerDisplay creates and packs the clock label.
func NewTimerDisplay() TimerDisplay {
	t := &timerDisplay{lbl: TLabel(Txt("00:00:00"), Style(theme.StyleTimerLabel))}
	Pack(t.lbl, Pady("5p"))
	return t
}

func (t *timerDisplay) SetElapsed(text string) {
	if t == nil || t.lbl == nil {
		return
	}
	t.lbl.Configure(Txt(text))
}
