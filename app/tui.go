package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/soocke/focus-widget-go/ui/model"
	"github.com/soocke/focus-widget-go/ui/presenter"
	"github.com/soocke/focus-widget-go/ui/theme"
)

type tuiKeyMap struct {
	Toggle key.Binding
	Quit   key.Binding
}

func (k tuiKeyMap) ShortHelp() []key.Binding  { return []key.Binding{k.Toggle, k.Quit} }
func (k tuiKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

func newTUIKeyMap() tuiKeyMap {
	return tuiKeyMap{
		Toggle: key.NewBinding(key.WithKeys(" ", "space", "enter"), key.WithHelp("space", "start/pause")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// tuiView receives presenter updates; the bubbletea model renders it.
type tuiView struct {
	status  model.Status
	elapsed string
	label   string
}

func (v *tuiView) SetStatus(s model.Status)   { v.status = s }
func (v *tuiView) SetElapsed(text string)     { v.elapsed = text }
func (v *tuiView) SetToggleLabel(text string) { v.label = text }

var _ presenter.WidgetView = (*tuiView)(nil)

type tuiTickMsg time.Time

type tuiModel struct {
	c     *AppContainer
	view  *tuiView
	keys  tuiKeyMap
	help  help.Model
	tick  time.Duration
	title lipgloss.Style
	clock lipgloss.Style
	box   lipgloss.Style
}

func newTUIModel(c *AppContainer) tuiModel {
	v := &tuiView{elapsed: "00:00:00", label: presenter.LabelStart}
	c.Wire(v, nil)
	c.Toggle.Init()
	p := theme.PaletteFor(theme.IsDarkMode(c.Config.Theme))
	return tuiModel{
		c:     c,
		view:  v,
		keys:  newTUIKeyMap(),
		help:  help.New(),
		tick:  c.Config.Tick(),
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Primary)),
		clock: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Text)).Padding(1, 0),
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.TextMuted)).
			Padding(0, 2),
	}
}

func (m tuiModel) scheduleTick() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return tuiTickMsg(t) })
}

func (m tuiModel) Init() tea.Cmd { return m.scheduleTick() }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tuiTickMsg:
		m.c.Loop.Tick()
		return m, m.scheduleTick()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.c.Toggle.Toggle(m.c.Clock.Now())
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m tuiModel) View() string {
	status := lipgloss.NewStyle().Foreground(lipgloss.Color(tuiStatusColor(m.view.status)))
	var b strings.Builder
	b.WriteString(m.title.Render(WindowTitle))
	b.WriteString("\n\n")
	b.WriteString(status.Render(fmt.Sprintf("%s %s", m.view.status.Icon(), m.view.status)))
	b.WriteString("\n")
	b.WriteString(m.clock.Render(m.view.elapsed))
	b.WriteString("\n")
	b.WriteString("[ " + m.view.label + " ]")
	return m.box.Render(b.String()) + "\n" + m.help.View(m.keys) + "\n"
}

func tuiStatusColor(s model.Status) string {
	switch s {
	case model.StatusFocused:
		return "#22c55e"
	case model.StatusDistracted:
		return "#ef4444"
	case model.StatusPaused:
		return "#f97316"
	default:
		return theme.StatusColor(s)
	}
}

// RunTUI renders the widget in the terminal until the user quits or ctx is done.
func RunTUI(ctx context.Context, c *AppContainer, opts ...tea.ProgramOption) error {
	m := newTUIModel(c)
	c.Start(ctx)
	defer c.Shutdown()

	if c.ManualMode() {
		c.Logger.Info("running in manual mode")
	}
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("terminal ui: %w", err)
	}
	return nil
}
