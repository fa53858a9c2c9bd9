package zpl

import (
	"encoding/hex"
	"fmt"
	"image"
	"strings"

	"zplogo/pkg/bitmap"
)

// FormatASCII is the ^GF compression type for ASCII hexadecimal data.
const FormatASCII = 'A'

// NewGraphicField wraps packed rows into a field. The data is shared with
// mono, not copied.
func NewGraphicField(mono *bitmap.Mono, compressed bool) *GraphicField {
	w, h := mono.Rect.Dx(), mono.Rect.Dy()
	bpr := bitmap.BytesPerRow(w)

	return &GraphicField{
		Width:       w,
		Height:      h,
		BytesPerRow: bpr,
		TotalBytes:  bpr * h,
		Data:        mono.Pix,
		Compressed:  compressed,
	}
}

// GraphicField is a monochrome bitmap ready to be emitted as a ZPL ^GF
// command. Data holds TotalBytes bytes, row-major, MSB first.
type GraphicField struct {
	Width       int
	Height      int
	BytesPerRow int
	TotalBytes  int
	Data        []byte
	Compressed  bool
}

// Hex renders Data as uppercase hexadecimal with no separators.
func (f *GraphicField) Hex() string {
	return strings.ToUpper(hex.EncodeToString(f.Data))
}

// Payload is the data section of the command: plain hex, or the compressed
// form when Compressed is set.
func (f *GraphicField) Payload() string {
	if f.Compressed {
		return Compress(f.Data, f.BytesPerRow)
	}
	return f.Hex()
}

// String renders the full command. Both byte-count fields carry the
// uncompressed total, and no ^FS terminator is appended.
func (f *GraphicField) String() string {
	return fmt.Sprintf("^GF%c,%d,%d,%d,%s", FormatASCII, f.TotalBytes, f.TotalBytes, f.BytesPerRow, f.Payload())
}

// Image unpacks the field back into a monochrome image.
func (f *GraphicField) Image() *bitmap.Mono {
	m := bitmap.NewMono(image.Rect(0, 0, f.Width, f.Height))
	copy(m.Pix, f.Data)
	return m
}
