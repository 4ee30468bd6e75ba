package presence

import (
	"image"
	"image/color"
	"math"
)

// downscale performs a nearest-neighbour resize of src by factor (0 < factor < 1),
// preserving aspect ratio. Factors outside that range return src unchanged.
func downscale(src image.Image, factor float64) image.Image {
	if src == nil || factor <= 0 || factor >= 1 {
		return src
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	newW := int(math.Max(1, math.Round(float64(w)*factor)))
	newH := int(math.Max(1, math.Round(float64(h)*factor)))
	if newW >= w && newH >= h {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	for y := 0; y < newH; y++ {
		sy := int(float64(y) * float64(h) / float64(newH))
		for x := 0; x < newW; x++ {
			sx := int(float64(x) * float64(w) / float64(newW))
			r, g, bl, a := src.At(b.Min.X+sx, b.Min.Y+sy).RGBA()
			dst.SetRGBA(x, y, color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8), uint8(a >> 8)})
		}
	}
	return dst
}
