package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key when reading overrides from the environment,
// e.g. FOCUS_CAMERA_INDEX=1.
const EnvPrefix = "FOCUS"

// Config holds runtime configuration for sampling, detection and app behavior.
// Fields may be loaded from a JSON file, overridden by FOCUS_* environment
// variables and finally by command-line flags.
type Config struct {
	Debug   bool   `json:"debug" mapstructure:"debug"`
	LogFile string `json:"log_file" mapstructure:"log_file"`
	Theme   string `json:"theme" mapstructure:"theme"`

	// Camera and sampling
	CameraIndex         int     `json:"camera_index" mapstructure:"camera_index"`
	TickMillis          int     `json:"tick_millis" mapstructure:"tick_millis"`
	FrameIntervalMillis int     `json:"frame_interval_millis" mapstructure:"frame_interval_millis"`
	RetryDelayMillis    int     `json:"retry_delay_millis" mapstructure:"retry_delay_millis"`
	AnalysisScale       float64 `json:"analysis_scale" mapstructure:"analysis_scale"`

	// Face detection parameters
	CascadePath  string  `json:"cascade_path" mapstructure:"cascade_path"` // empty uses the embedded cascade
	MinFaceSize  int     `json:"min_face_size" mapstructure:"min_face_size"`
	MaxFaceSize  int     `json:"max_face_size" mapstructure:"max_face_size"`
	ShiftFactor  float64 `json:"shift_factor" mapstructure:"shift_factor"`
	ScaleFactor  float64 `json:"scale_factor" mapstructure:"scale_factor"`
	IoUThreshold float64 `json:"iou_threshold" mapstructure:"iou_threshold"`
	MinQuality   float64 `json:"min_quality" mapstructure:"min_quality"`
	MaxFaces     int     `json:"max_faces" mapstructure:"max_faces"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:               false,
		LogFile:             "",
		Theme:               "dark",
		CameraIndex:         0,
		TickMillis:          100,
		FrameIntervalMillis: 30,
		RetryDelayMillis:    1000,
		AnalysisScale:       0.5,
		CascadePath:         "",
		MinFaceSize:         20,
		MaxFaceSize:         1000,
		ShiftFactor:         0.1,
		ScaleFactor:         1.1,
		IoUThreshold:        0.2,
		MinQuality:          5.0,
		MaxFaces:            1,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.CameraIndex < 0 {
		c.CameraIndex = 0
	}
	if c.TickMillis <= 0 {
		c.TickMillis = 100
	}
	c.TickMillis = lo.Clamp(c.TickMillis, 10, 1000)
	if c.FrameIntervalMillis <= 0 {
		c.FrameIntervalMillis = 30
	}
	c.FrameIntervalMillis = lo.Clamp(c.FrameIntervalMillis, 5, 5000)
	if c.RetryDelayMillis <= 0 {
		c.RetryDelayMillis = 1000
	}
	if c.AnalysisScale <= 0 || c.AnalysisScale > 1 {
		c.AnalysisScale = 1.0
	}
	c.AnalysisScale = lo.Clamp(c.AnalysisScale, 0.1, 1.0)
	if c.MinFaceSize <= 0 {
		c.MinFaceSize = 20
	}
	if c.MaxFaceSize < c.MinFaceSize {
		c.MaxFaceSize = c.MinFaceSize * 50
	}
	if c.ShiftFactor <= 0 || c.ShiftFactor >= 1 {
		c.ShiftFactor = 0.1
	}
	if c.ScaleFactor <= 1 {
		c.ScaleFactor = 1.1
	}
	c.IoUThreshold = lo.Clamp(c.IoUThreshold, 0, 1)
	if c.MinQuality < 0 {
		c.MinQuality = 0
	}
	if c.MaxFaces <= 0 {
		c.MaxFaces = 1
	}
	switch strings.ToLower(strings.TrimSpace(c.Theme)) {
	case "light":
		c.Theme = "light"
	default:
		c.Theme = "dark"
	}
	return nil
}

// Tick is the session timer period.
func (c *Config) Tick() time.Duration { return time.Duration(c.TickMillis) * time.Millisecond }

// FrameInterval is the pause between two sampler iterations.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMillis) * time.Millisecond
}

// RetryDelay is how long the sampler waits while the camera is not opened.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMillis) * time.Millisecond
}

// Load reads configuration from the given JSON file path layered over the defaults,
// then applies FOCUS_* environment overrides. If the file does not exist the
// defaults (plus environment) are returned. On decode error it returns defaults with the error.
func Load(path string) (*Config, error) {
	defaults, err := json.Marshal(DefaultConfig())
	if err != nil {
		return DefaultConfig(), err
	}
	v := viper.New()
	v.SetConfigType("json")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return DefaultConfig(), err
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), err
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Marshal returns the indented JSON form written by Save.
func (c *Config) Marshal() ([]byte, error) {
	_ = c.Validate()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	return writeFile(path, data)
}
