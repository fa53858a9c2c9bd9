package bitmap

import (
	"image"
	"image/color"
)

// Ink and Blank are the two colors a Mono pixel can take.
var (
	Ink   = color.Gray{Y: 0}
	Blank = color.Gray{Y: 0xFF}
)

// DefaultThreshold is the intensity cut used by Set when no threshold is given.
const DefaultThreshold = 128

// BytesPerRow returns the number of bytes needed to hold width bits.
func BytesPerRow(width int) int {
	if width <= 0 {
		return 0
	}
	return (width + 7) / 8
}

func NewMono(r image.Rectangle) *Mono {
	stride := BytesPerRow(r.Dx())
	return &Mono{
		Pix:       make([]byte, stride*maxInt(r.Dy(), 0)),
		Stride:    stride,
		Rect:      r,
		threshold: DefaultThreshold,
	}
}

// Mono is a 1-bit image packed 8 pixels per byte, most significant bit first.
// A set bit is ink (printed), a cleared bit is blank. Rows are padded on the
// right with blank bits up to a whole byte. It implements the draw.Image
// interface.
type Mono struct {
	Pix       []byte
	Stride    int
	Rect      image.Rectangle
	threshold int
}

// SetThreshold changes the cut used by Set: intensities strictly below t are ink.
func (m *Mono) SetThreshold(t int) {
	m.threshold = t
}

// Bounds implements the image.Image (and draw.Image) interface.
func (m *Mono) Bounds() image.Rectangle {
	return m.Rect
}

// ColorModel implements the image.Image (and draw.Image) interface.
func (m *Mono) ColorModel() color.Model {
	return color.ModelFunc(func(c color.Color) color.Color {
		if IsInk(Intensity(c), m.threshold) {
			return Ink
		}
		return Blank
	})
}

// At implements the image.Image (and draw.Image) interface.
func (m *Mono) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(m.Rect)) {
		return Blank
	}
	if m.Bit(x, y) {
		return Ink
	}
	return Blank
}

// Set implements the draw.Image interface.
func (m *Mono) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(m.Rect)) {
		return
	}
	m.SetBit(x, y, IsInk(Intensity(c), m.threshold))
}

// Opaque reports that every pixel is fully opaque.
func (m *Mono) Opaque() bool {
	return true
}

func (m *Mono) Bit(x, y int) bool {
	i, mask := m.offset(x, y)
	return m.Pix[i]&mask != 0
}

func (m *Mono) SetBit(x, y int, ink bool) {
	i, mask := m.offset(x, y)
	if ink {
		m.Pix[i] |= mask
	} else {
		m.Pix[i] &^= mask
	}
}

// Row returns the packed bytes of scan line y, padding included.
func (m *Mono) Row(y int) []byte {
	start := (y - m.Rect.Min.Y) * m.Stride
	return m.Pix[start : start+m.Stride]
}

// Bits returns the unpadded bits of scan line y, left to right.
func (m *Mono) Bits(y int) []bool {
	bits := make([]bool, 0, m.Rect.Dx())
	for x := m.Rect.Min.X; x < m.Rect.Max.X; x++ {
		bits = append(bits, m.Bit(x, y))
	}
	return bits
}

func (m *Mono) offset(x, y int) (int, byte) {
	dx := x - m.Rect.Min.X
	// bit 7 holds the leftmost pixel of each byte
	return (y-m.Rect.Min.Y)*m.Stride + dx/8, byte(0x80 >> uint(dx&7))
}

// Intensity reduces any color to its 8-bit luma using the standard gray
// model. Alpha is ignored; callers flatten transparency beforehand.
func Intensity(c color.Color) uint8 {
	return color.GrayModel.Convert(c).(color.Gray).Y
}

// IsInk reports whether a pixel of the given intensity prints. The
// comparison is strict, so an intensity equal to the threshold is blank.
// Thresholds outside [0,255] are allowed and give all-blank or all-ink output.
func IsInk(intensity uint8, threshold int) bool {
	return int(intensity) < threshold
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
