package app

import (
	"context"
	"fmt"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/focus-widget-go/ui/theme"
	"github.com/soocke/focus-widget-go/ui/view"
)

const (
	WindowTitle  = "Focus Widget 🎯"
	WindowWidth  = 350
	WindowHeight = 200
)

type app struct {
	c       *AppContainer
	view    *view.RootView
	width   int
	height  int
	afterID string
	ctx     context.Context
	closed  bool
}

// NewApp prepares the main window. Widgets are created by Start.
func NewApp(title string, width, height int, c *AppContainer) *app {
	a := &app{c: c, width: width, height: height}

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

// Start builds the widget, launches the sampler and blocks in the Tk event
// loop until the window is closed.
func (a *app) Start(ctx context.Context) {
	a.ctx = ctx
	theme.SetDark(theme.IsDarkMode(a.c.Config.Theme))
	a.view = view.NewRootView(a.c.Logger)
	a.view.Build(func() { a.c.Toggle.Toggle(a.c.Clock.Now()) })
	a.c.Wire(a.view, a.scheduleUpdate)
	a.c.Toggle.Init()
	a.c.Start(ctx)

	if a.c.ManualMode() {
		a.c.Logger.Info("running in manual mode")
	}

	a.scheduleUpdate()
	App.Wait()
	a.c.Shutdown()
}

func (a *app) exitHandler() {
	if a.closed {
		return
	}
	a.closed = true
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	// Release the camera before the window goes away.
	a.c.Shutdown()
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	if a.closed {
		return
	}
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(a.c.Config.Tick(), a.update)
}

func (a *app) update() {
	// Context cancellation (signals) closes the window from the Tk thread.
	if a.ctx != nil && a.ctx.Err() != nil {
		a.exitHandler()
		return
	}
	a.c.Loop.Tick()
}
