// Package opencv implements camera.Device on top of gocv (OpenCV bindings).
package opencv

import (
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"

	"github.com/soocke/focus-widget-go/domain/camera"
)

type device struct {
	mu    sync.Mutex
	index int
	vc    *gocv.VideoCapture
	mat   gocv.Mat
}

// Open opens the video capture device at index. It returns camera.ErrUnavailable
// (wrapped) if the device cannot be opened.
func Open(index int) (camera.Device, error) {
	vc, err := gocv.VideoCaptureDevice(index)
	if err != nil {
		return nil, fmt.Errorf("open device %d: %w: %v", index, camera.ErrUnavailable, err)
	}
	if !vc.IsOpened() {
		_ = vc.Close()
		return nil, fmt.Errorf("open device %d: %w", index, camera.ErrUnavailable)
	}
	return &device{index: index, vc: vc, mat: gocv.NewMat()}, nil
}

var _ camera.Opener = Open

func (d *device) Opened() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.vc != nil && d.vc.IsOpened()
}

// Read grabs one frame and converts it to an image.Image (BGR -> RGBA).
func (d *device) Read() (image.Image, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.vc == nil {
		return nil, camera.ErrUnavailable
	}
	if ok := d.vc.Read(&d.mat); !ok || d.mat.Empty() {
		return nil, camera.ErrReadFailed
	}
	img, err := d.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", camera.ErrReadFailed, err)
	}
	return img, nil
}

// Close releases the device. Safe to call more than once.
func (d *device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.vc == nil {
		return nil
	}
	err := d.vc.Close()
	_ = d.mat.Close()
	d.vc = nil
	return err
}
