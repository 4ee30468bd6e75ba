// Package face detects faces in camera frames using the pigo pixel-intensity
// cascade classifier.
package face

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sync"

	pigo "github.com/esimov/pigo/core"

	"github.com/soocke/focus-widget-go/config"
)

// ErrNoCascade is returned when the cascade file is missing or cannot be unpacked.
var ErrNoCascade = errors.New("face cascade unavailable")

// Params tunes the cascade scan and the acceptance of detections.
type Params struct {
	MinSize      int
	MaxSize      int
	ShiftFactor  float64
	ScaleFactor  float64
	IoUThreshold float64
	MinQuality   float32
	MaxFaces     int
}

// ParamsFromConfig maps detection settings from cfg. A nil cfg uses defaults.
func ParamsFromConfig(cfg *config.Config) Params {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return Params{
		MinSize:      cfg.MinFaceSize,
		MaxSize:      cfg.MaxFaceSize,
		ShiftFactor:  cfg.ShiftFactor,
		ScaleFactor:  cfg.ScaleFactor,
		IoUThreshold: cfg.IoUThreshold,
		MinQuality:   float32(cfg.MinQuality),
		MaxFaces:     cfg.MaxFaces,
	}
}

// Detector counts faces in a frame. RunCascade shares classifier buffers, so
// calls are serialized.
type Detector struct {
	mu         sync.Mutex
	classifier *pigo.Pigo
	params     Params
}

// NewDetector unpacks a pigo cascade.
func NewDetector(cascade []byte, params Params) (*Detector, error) {
	if len(cascade) == 0 {
		return nil, ErrNoCascade
	}
	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCascade, err)
	}
	if params.MaxFaces <= 0 {
		params.MaxFaces = 1
	}
	return &Detector{classifier: classifier, params: params}, nil
}

// LoadDetector reads the cascade file at path and builds a Detector.
func LoadDetector(path string, params Params) (*Detector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCascade, err)
	}
	return NewDetector(data, params)
}

// DetectFaces returns the number of faces found in img, capped at MaxFaces.
func (d *Detector) DetectFaces(img image.Image) (int, error) {
	if d == nil || d.classifier == nil {
		return 0, ErrNoCascade
	}
	if img == nil {
		return 0, errors.New("nil frame")
	}
	src := pigo.ImgToNRGBA(img)
	cols, rows := src.Bounds().Max.X, src.Bounds().Max.Y
	if cols == 0 || rows == 0 {
		return 0, errors.New("empty frame")
	}
	pixels := pigo.RgbToGrayscale(src)

	d.mu.Lock()
	dets := d.classifier.RunCascade(pigo.CascadeParams{
		MinSize:     d.params.MinSize,
		MaxSize:     d.params.MaxSize,
		ShiftFactor: d.params.ShiftFactor,
		ScaleFactor: d.params.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pixels,
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}, 0.0)
	dets = d.classifier.ClusterDetections(dets, d.params.IoUThreshold)
	d.mu.Unlock()

	return countFaces(dets, d.params.MinQuality, d.params.MaxFaces), nil
}

// countFaces counts detections at or above minQ, stopping at max.
func countFaces(dets []pigo.Detection, minQ float32, max int) int {
	n := 0
	for _, det := range dets {
		if det.Q < minQ {
			continue
		}
		n++
		if max > 0 && n >= max {
			break
		}
	}
	return n
}
