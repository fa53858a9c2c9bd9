package zpl

import (
	"image"
	"image/color"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniform(w, h int, y uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = y
	}
	return img
}

func TestEncodeUniformImages(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
		want string
	}{
		{"all white 16x2", uniform(16, 2, 0xFF), "^GFA,4,4,2,00000000"},
		{"all black 16x2", uniform(16, 2, 0x00), "^GFA,4,4,2,FFFFFFFF"},
		{"black 10x2 padded", uniform(10, 2, 0x00), "^GFA,4,4,2,FFC0FFC0"},
		{"black 1x1", uniform(1, 1, 0x00), "^GFA,1,1,1,80"},
		{"zero width", uniform(0, 3, 0x00), "^GFA,0,0,0,"},
	}

	enc := NewEncoder(WithMaxWidth(400), WithThreshold(128))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, enc.Encode(tt.img).String())
		})
	}
}

func TestEncodeFieldArithmetic(t *testing.T) {
	img := uniform(37, 5, 0x40)
	f := NewEncoder().Encode(img)

	assert.Equal(t, 37, f.Width)
	assert.Equal(t, 5, f.Height)
	assert.Equal(t, 5, f.BytesPerRow)
	assert.Equal(t, 25, f.TotalBytes)
	assert.Len(t, f.Data, f.TotalBytes)

	payload := f.Payload()
	assert.Len(t, payload, 2*f.TotalBytes)
	assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]*$`), payload)

	for y := 0; y < f.Height; y++ {
		row := f.Data[y*f.BytesPerRow : (y+1)*f.BytesPerRow]
		// 37 ink bits leave 3 blank padding bits in the last byte
		assert.Equal(t, byte(0xF8), row[4])
	}
}

func TestEncodeThresholdBoundary(t *testing.T) {
	img := uniform(8, 1, 0xFF)
	img.SetGray(0, 0, color.Gray{Y: 100})
	img.SetGray(1, 0, color.Gray{Y: 99})

	f := NewEncoder(WithThreshold(100)).Encode(img)
	assert.Equal(t, "^GFA,1,1,1,40", f.String())
}

func TestEncodeDegenerateThresholds(t *testing.T) {
	img := uniform(8, 1, 0x00)
	assert.Equal(t, "^GFA,1,1,1,00", NewEncoder(WithThreshold(-1)).Encode(img).String())

	img = uniform(8, 1, 0xFF)
	assert.Equal(t, "^GFA,1,1,1,FF", NewEncoder(WithThreshold(300)).Encode(img).String())
}

func TestEncodeIsIdempotent(t *testing.T) {
	img := uniform(50, 20, 0xFF)
	for x := 0; x < 50; x += 3 {
		img.SetGray(x, x%20, color.Gray{Y: 10})
	}

	enc := NewEncoder(WithCompression(true))
	assert.Equal(t, enc.Encode(img).String(), enc.Encode(img).String())
}

func TestFitKeepsNarrowImages(t *testing.T) {
	img := uniform(300, 7, 0xFF)
	enc := NewEncoder(WithMaxWidth(400))

	assert.Same(t, img, enc.Fit(img))

	exact := uniform(400, 7, 0xFF)
	assert.Same(t, exact, enc.Fit(exact))

	f := enc.Encode(img)
	assert.Equal(t, 300, f.Width)
	assert.Equal(t, 7, f.Height)
}

func TestFitDownscalesWideImages(t *testing.T) {
	tests := []struct {
		w, h  int
		wantH int
	}{
		{800, 10, 5},
		{800, 3, 1},
		{1200, 301, 100},
		{401, 400, 399},
	}

	enc := NewEncoder(WithMaxWidth(400))
	for _, tt := range tests {
		got := enc.Fit(uniform(tt.w, tt.h, 0xFF)).Bounds()
		assert.Equal(t, 400, got.Dx(), "%dx%d", tt.w, tt.h)
		assert.Equal(t, tt.wantH, got.Dy(), "%dx%d", tt.w, tt.h)
	}
}

func TestEncodeResizedWhite(t *testing.T) {
	f := NewEncoder(WithMaxWidth(400)).Encode(uniform(800, 3, 0xFF))

	require.Equal(t, 400, f.Width)
	require.Equal(t, 1, f.Height)
	assert.Equal(t, "^GFA,50,50,50,"+strings.Repeat("0", 100), f.String())
}

func TestEncodeZeroHeightAfterResize(t *testing.T) {
	f := NewEncoder(WithMaxWidth(400)).Encode(uniform(1000, 1, 0x00))

	assert.Equal(t, 400, f.Width)
	assert.Equal(t, 0, f.Height)
	assert.Equal(t, "^GFA,0,0,50,", f.String())
}

func TestGraphicFieldImage(t *testing.T) {
	img := uniform(10, 2, 0xFF)
	img.SetGray(9, 1, color.Gray{Y: 0})

	mono := NewEncoder().Encode(img).Image()
	assert.Equal(t, image.Rect(0, 0, 10, 2), mono.Bounds())
	assert.True(t, mono.Bit(9, 1))
	assert.False(t, mono.Bit(8, 1))
}
