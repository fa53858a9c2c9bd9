package zpl

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNotGraphicField   = errors.New("not a ^GF command")
	ErrUnsupportedFormat = errors.New("unsupported ^GF format")
)

// MaxBytesPerRow is the largest row width a printer accepts in ^GF.
const MaxBytesPerRow = 99999

// Parse reads a single ^GFA command, as produced by GraphicField.String or
// by other converters, with or without a trailing ^FS. The width of a parsed
// field is the padded width, BytesPerRow*8.
func Parse(s string) (*GraphicField, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "^FS")

	if !strings.HasPrefix(s, "^GF") {
		return nil, ErrNotGraphicField
	}

	parts := strings.SplitN(s[3:], ",", 5)
	if len(parts) != 5 {
		return nil, errors.Wrapf(ErrNotGraphicField, "expected 5 parameters, got %d", len(parts))
	}
	if parts[0] != string(FormatASCII) {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", parts[0])
	}

	nums := make([]int, 3)
	for i, p := range parts[1:4] {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return nil, errors.Wrapf(ErrNotGraphicField, "bad numeric parameter %q", p)
		}
		nums[i] = n
	}
	total, bpr := nums[0], nums[2]
	if err := checkGeometry(total, bpr); err != nil {
		return nil, err
	}

	data, err := Decompress(parts[4], bpr)
	if err != nil {
		return nil, err
	}
	if len(data) != total {
		return nil, errors.Wrapf(ErrMalformedPayload, "declared %d bytes, payload holds %d", total, len(data))
	}

	height := 0
	if bpr > 0 {
		height = total / bpr
	}

	return &GraphicField{
		Width:       bpr * 8,
		Height:      height,
		BytesPerRow: bpr,
		TotalBytes:  total,
		Data:        data,
		Compressed:  strings.ContainsAny(parts[4], "GHIJKLMNOPQRSTUVWXYghijklmnopqrstuvwxyz,!:"),
	}, nil
}

func checkGeometry(total, bpr int) error {
	switch {
	case bpr > MaxBytesPerRow:
		return errors.Wrapf(ErrMalformedPayload, "bytes per row %d exceeds %d", bpr, MaxBytesPerRow)
	case total > 0 && bpr == 0:
		return errors.Wrap(ErrMalformedPayload, "data declared with zero bytes per row")
	case total > 0 && bpr > total:
		return errors.Wrapf(ErrMalformedPayload, "bytes per row %d exceeds total %d", bpr, total)
	case bpr > 0 && total%bpr != 0:
		return errors.Wrapf(ErrMalformedPayload, "total %d is not a multiple of row width %d", total, bpr)
	}
	return nil
}
