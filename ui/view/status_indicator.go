package view

import (
	"github.com/soocke/focus-widget-go/ui/model"
	"github.com/soocke/focus-widget-go/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// StatusIndicator shows the status icon and text side by side.
type StatusIndicator interface {
	SetStatus(s model.Status)
}

type statusIndicator struct {
	icon *TLabelWidget
	text *TLabelWidget
}

// NewStatusIndicator packs the icon and text labels into parent.
func NewStatusIndicator(parent *TFrameWidget) StatusIndicator {
	s := &statusIndicator{
		icon: TLabel(Txt(model.StatusReady.Icon()), Style(theme.StyleStatusLabel), Font(theme.FontFamily, theme.FontIconSize)),
		text: TLabel(Txt(model.StatusReady.String()), Style(theme.StyleStatusLabel)),
	}
	Pack(s.icon, In(parent), Side("left"), Padx("5p"))
	Pack(s.text, In(parent), Side("left"))
	return s
}

// SetStatus updates icon, text and color.
func (s *statusIndicator) SetStatus(st model.Status) {
	if s == nil || s.icon == nil || s.text == nil {
		return
	}
	color := theme.StatusColor(st)
	s.icon.Configure(Txt(st.Icon()), Foreground(color))
	s.text.Configure(Txt(st.String()), Foreground(color))
}
