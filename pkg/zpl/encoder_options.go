package zpl

import (
	"github.com/disintegration/imaging"
)

type Option func(e *Encoder)

// WithMaxWidth caps the encoded width. Wider images are downscaled keeping
// their aspect ratio. A non-positive width disables resizing.
func WithMaxWidth(w int) Option {
	return func(e *Encoder) {
		e.maxWidth = w
	}
}

// WithThreshold sets the intensity cut: pixels strictly darker print.
func WithThreshold(t int) Option {
	return func(e *Encoder) {
		e.threshold = t
	}
}

// WithCompression switches the payload to ZPL ASCII compression.
func WithCompression(on bool) Option {
	return func(e *Encoder) {
		e.compress = on
	}
}

func WithFilter(f imaging.ResampleFilter) Option {
	return func(e *Encoder) {
		e.filter = f
	}
}
