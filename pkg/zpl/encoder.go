package zpl

import (
	"image"

	"github.com/disintegration/imaging"

	"zplogo/pkg/bitmap"
)

const (
	DefaultMaxWidth  = 400
	DefaultThreshold = bitmap.DefaultThreshold
)

func NewEncoder(opts ...Option) *Encoder {
	e := &Encoder{
		maxWidth:  DefaultMaxWidth,
		threshold: DefaultThreshold,
		filter:    imaging.Lanczos,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Encoder turns a grayscale image into a ^GF graphic field. It holds only
// its settings, so one Encoder can be shared and reused.
type Encoder struct {
	maxWidth  int
	threshold int
	compress  bool
	filter    imaging.ResampleFilter
}

func (e *Encoder) MaxWidth() int {
	return e.maxWidth
}

func (e *Encoder) Threshold() int {
	return e.threshold
}

// Encode downscales img if it is wider than the configured maximum, then
// thresholds, packs and wraps it into a graphic field.
func (e *Encoder) Encode(img image.Image) *GraphicField {
	mono := bitmap.Encode(e.Fit(img), e.threshold)
	return NewGraphicField(mono, e.compress)
}

// Fit applies the resize policy. Images no wider than the maximum are returned
// untouched; wider ones are resized to exactly the maximum width and a height
// of floor(height * maxWidth / width).
func (e *Encoder) Fit(img image.Image) image.Image {
	b := img.Bounds()
	if e.maxWidth <= 0 || b.Dx() <= e.maxWidth {
		return img
	}

	h := b.Dy() * e.maxWidth / b.Dx()
	if h == 0 {
		// imaging treats a zero height as "keep aspect ratio", so build the
		// degenerate result directly.
		return image.NewGray(image.Rect(0, 0, e.maxWidth, 0))
	}

	return imaging.Resize(img, e.maxWidth, h, e.filter)
}
