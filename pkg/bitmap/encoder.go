package bitmap

import (
	"image"
)

// Encode thresholds src into a packed monochrome image anchored at the origin.
func Encode(src image.Image, threshold int) *Mono {
	b := src.Bounds()
	d := NewMono(image.Rect(0, 0, b.Dx(), b.Dy()))
	d.SetThreshold(threshold)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			d.Set(x-b.Min.X, y-b.Min.Y, src.At(x, y))
		}
	}

	return d
}
