package face

import (
	"errors"
	"image"
	_ "image/jpeg"
	"os"
	"path/filepath"
	"testing"

	pigo "github.com/esimov/pigo/core"

	"github.com/soocke/focus-widget-go/assets"
	"github.com/soocke/focus-widget-go/config"
)

func TestCountFaces_QualityAndCap(t *testing.T) {
	dets := []pigo.Detection{
		{Row: 10, Col: 10, Scale: 40, Q: 2.0},
		{Row: 50, Col: 50, Scale: 40, Q: 7.5},
		{Row: 90, Col: 90, Scale: 40, Q: 9.0},
	}
	if n := countFaces(dets, 5.0, 1); n != 1 {
		t.Fatalf("expected cap at 1 face, got %d", n)
	}
	if n := countFaces(dets, 5.0, 0); n != 2 {
		t.Fatalf("expected 2 faces above quality, got %d", n)
	}
	if n := countFaces(dets, 10.0, 3); n != 0 {
		t.Fatalf("expected no faces above 10.0, got %d", n)
	}
	if n := countFaces(nil, 0, 1); n != 0 {
		t.Fatalf("expected 0 for no detections, got %d", n)
	}
}

func TestNewDetector_EmptyCascade(t *testing.T) {
	if _, err := NewDetector(nil, Params{}); !errors.Is(err, ErrNoCascade) {
		t.Fatalf("expected ErrNoCascade, got %v", err)
	}
}

func TestLoadDetector_MissingFile(t *testing.T) {
	_, err := LoadDetector(filepath.Join(t.TempDir(), "facefinder"), Params{})
	if !errors.Is(err, ErrNoCascade) {
		t.Fatalf("expected ErrNoCascade, got %v", err)
	}
}

func TestDetectFaces_NilDetector(t *testing.T) {
	var d *Detector
	if _, err := d.DetectFaces(image.NewRGBA(image.Rect(0, 0, 4, 4))); !errors.Is(err, ErrNoCascade) {
		t.Fatalf("expected ErrNoCascade from nil detector, got %v", err)
	}
}

func TestParamsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MinQuality = 6.5
	cfg.MaxFaces = 2
	p := ParamsFromConfig(cfg)
	if p.MinQuality != 6.5 || p.MaxFaces != 2 || p.MinSize != cfg.MinFaceSize {
		t.Fatalf("unexpected params %+v", p)
	}
	if d := ParamsFromConfig(nil); d.MaxFaces != 1 {
		t.Fatalf("nil config should use defaults, got %+v", d)
	}
}

func loadTestImage(t *testing.T, name string) image.Image {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("open %s: %v", name, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", name, err)
	}
	return img
}

func TestDetectFaces_EmbeddedCascade(t *testing.T) {
	d, err := NewDetector(assets.Facefinder, ParamsFromConfig(nil))
	if err != nil {
		t.Fatalf("embedded cascade should unpack: %v", err)
	}

	n, err := d.DetectFaces(loadTestImage(t, "sample.jpg"))
	if err != nil {
		t.Fatalf("detect on sample: %v", err)
	}
	if n < 1 {
		t.Fatalf("expected at least one face in sample.jpg, got %d", n)
	}

	n, err = d.DetectFaces(image.NewRGBA(image.Rect(0, 0, 320, 240)))
	if err != nil {
		t.Fatalf("detect on blank frame: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no faces in a blank frame, got %d", n)
	}
}
