package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/soocke/focus-widget-go/app"
	"github.com/soocke/focus-widget-go/config"
	"github.com/soocke/focus-widget-go/debug"
	"github.com/soocke/focus-widget-go/domain/camera"
	"github.com/soocke/focus-widget-go/domain/camera/opencv"
)

const debugStatsInterval = 5 * time.Second

// CLI is the kong command tree.
type CLI struct {
	Config string `short:"c" default:"focus-widget.json" type:"path" help:"Path to the JSON configuration file"`
	Debug  bool   `help:"Enable debug logging and runtime stats"`
	Camera int    `default:"-1" help:"Camera device index (overrides config; -1 keeps config value)"`

	Run        RunCmd        `cmd:"" default:"1" help:"Show the focus widget window"`
	TUI        TUICmd        `cmd:"" name:"tui" help:"Show the focus widget in the terminal"`
	InitConfig InitConfigCmd `cmd:"" help:"Write the effective configuration to the config path"`
}

// Globals carries what every command needs after flag parsing.
type Globals struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger
	Open       camera.Opener
	Clock      clock.Clock
	closeLog   func() error
}

// NewGlobals loads the configuration, applies flag overrides and builds the logger.
// logFallback receives logs when no log_file is configured.
func NewGlobals(c *CLI, logFallback io.Writer) *Globals {
	cfg, cfgErr := config.Load(c.Config)
	if c.Debug {
		cfg.Debug = true
	}
	if c.Camera >= 0 {
		cfg.CameraIndex = c.Camera
	}
	out, closeLog, logErr := openLogOutput(cfg.LogFile, logFallback)
	logger := NewLogger(logLevel(cfg.Debug), out)
	if cfgErr != nil {
		logger.Warn("config load failed, using defaults", "path", c.Config, "error", cfgErr)
	}
	if logErr != nil {
		logger.Warn("log file unavailable", "error", logErr)
	}
	return &Globals{
		Config:     cfg,
		ConfigPath: c.Config,
		Logger:     logger,
		Open:       opencv.Open,
		Clock:      clock.New(),
		closeLog:   closeLog,
	}
}

// Close flushes the log file, if any.
func (g *Globals) Close() error {
	if g == nil || g.closeLog == nil {
		return nil
	}
	return g.closeLog()
}

func (g *Globals) startDebug(ctx context.Context) {
	if !g.Config.Debug {
		return
	}
	debug.StartGoroutineLogger(ctx, g.Clock, debugStatsInterval, g.Logger)
	debug.StartMemLogger(ctx, g.Clock, debugStatsInterval, g.Logger)
}

func (g *Globals) container() *app.AppContainer {
	return app.BuildContainer(g.Config, g.Logger, g.Open, app.LoadFaceDetector, g.Clock)
}

// RunCmd shows the Tk widget.
type RunCmd struct{}

func (r *RunCmd) Run(ctx context.Context, g *Globals) error {
	g.startDebug(ctx)
	c := g.container()
	app.NewApp(app.WindowTitle, app.WindowWidth, app.WindowHeight, c).Start(ctx)
	return nil
}

// TUICmd shows the terminal widget.
type TUICmd struct{}

func (t *TUICmd) Run(ctx context.Context, g *Globals) error {
	g.startDebug(ctx)
	return app.RunTUI(ctx, g.container())
}

// InitConfigCmd writes the effective configuration.
type InitConfigCmd struct {
	Force bool   `short:"f" help:"Overwrite an existing file"`
	Out   string `type:"path" help:"Destination (defaults to --config)"`
}

func (i *InitConfigCmd) Run(g *Globals) error {
	path := i.Out
	if path == "" {
		path = g.ConfigPath
	}
	if !i.Force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force)", path)
		}
	}
	if err := g.Config.Save(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	g.Logger.Info("config written", "path", path)
	return nil
}
