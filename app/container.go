package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/benbjohnson/clock"

	"github.com/soocke/focus-widget-go/assets"
	"github.com/soocke/focus-widget-go/config"
	"github.com/soocke/focus-widget-go/domain/camera"
	"github.com/soocke/focus-widget-go/domain/face"
	"github.com/soocke/focus-widget-go/domain/presence"
	"github.com/soocke/focus-widget-go/ui/model"
	"github.com/soocke/focus-widget-go/ui/presenter"
)

// DetectorLoader builds the face detector from the cascade file. An empty
// path selects the embedded cascade.
type DetectorLoader func(path string, params face.Params) (presence.FaceDetector, error)

// LoadFaceDetector is the production DetectorLoader backed by pigo. An empty
// path uses the embedded facefinder cascade.
func LoadFaceDetector(path string, params face.Params) (presence.FaceDetector, error) {
	var (
		d   *face.Detector
		err error
	)
	if path == "" {
		cascade, cerr := assets.FaceCascade()
		if cerr != nil {
			return nil, fmt.Errorf("%w: %v", face.ErrNoCascade, cerr)
		}
		d, err = face.NewDetector(cascade, params)
	} else {
		d, err = face.LoadDetector(path, params)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// AppContainer assembles models, the sampler and presenters.
type AppContainer struct {
	Config   *config.Config
	Logger   *slog.Logger
	Clock    clock.Clock
	Presence *model.PresenceModel
	Session  *model.SessionModel
	Sampler  *presence.Sampler // nil in manual mode

	// Presenters, set by Wire.
	Timer  *presenter.SessionPresenter
	Status *presenter.StatusPresenter
	Toggle *presenter.TogglePresenter
	Loop   *presenter.Loop

	shutdown sync.Once
}

// BuildContainer constructs all components. It opens the camera and loads the
// cascade; if either fails the container falls back to manual mode.
func BuildContainer(cfg *config.Config, logger *slog.Logger, open camera.Opener, loadDetector DetectorLoader, clk clock.Clock) *AppContainer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if clk == nil {
		clk = clock.New()
	}
	c := &AppContainer{Config: cfg, Logger: logger, Clock: clk}
	c.Session = model.NewSessionModel()
	c.Presence = model.NewPresenceModel()

	if open == nil {
		logger.Warn("no camera opener, manual mode")
		c.Presence.PinManual()
		return c
	}
	dev, err := open(cfg.CameraIndex)
	if err != nil {
		logger.Warn("camera unavailable, manual mode", "index", cfg.CameraIndex, "error", err)
		c.Presence.PinManual()
		return c
	}
	if loadDetector == nil {
		loadDetector = LoadFaceDetector
	}
	det, err := loadDetector(cfg.CascadePath, face.ParamsFromConfig(cfg))
	if err != nil {
		logger.Warn("face detector unavailable, manual mode", "cascade_path", cfg.CascadePath, "error", err)
		if cerr := dev.Close(); cerr != nil {
			logger.Error("camera close", "error", cerr)
		}
		c.Presence.PinManual()
		return c
	}
	opts := presence.OptionsFromConfig(cfg)
	opts.Clock = clk
	c.Sampler = presence.NewSampler(dev, det, c.Presence, logger, opts)
	logger.Info("camera ready", "index", cfg.CameraIndex)
	return c
}

// ManualMode reports whether no camera drives the focused signal.
func (c *AppContainer) ManualMode() bool { return !c.Presence.CameraAvailable() }

// Wire creates the presenters for ui. schedule is called at the end of every
// loop tick (nil when the caller drives ticks itself).
func (c *AppContainer) Wire(ui presenter.WidgetView, schedule func()) {
	c.Timer = presenter.NewSessionPresenter(c.Session, c.Presence, ui)
	c.Status = presenter.NewStatusPresenter(c.Session, c.Presence, ui)
	c.Toggle = presenter.NewTogglePresenter(c.Session, c.Status, c.Timer, ui, c.Logger)
	c.Loop = presenter.NewLoop(c.Timer, c.Status, c.Clock, schedule)
}

// Start launches the sampler, if any.
func (c *AppContainer) Start(ctx context.Context) {
	if c.Sampler != nil {
		c.Sampler.Start(ctx)
	}
}

// Shutdown stops the sampler and releases the camera. Idempotent.
func (c *AppContainer) Shutdown() {
	c.shutdown.Do(func() {
		if c.Sampler != nil {
			c.Sampler.Stop()
		}
		c.Logger.Info("session ended", "focused", model.FormatClock(c.Session.Elapsed()))
	})
}
