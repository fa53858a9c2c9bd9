package zpl

import (
	"encoding/hex"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// ZPL ASCII compression:
//
//	G..Y   repeat the next hex digit 1..19 times
//	g..z   repeat the next hex digit 20..400 times (steps of 20), added to G..Y
//	,      fill the rest of the row with 0
//	!      fill the rest of the row with F
//	:      repeat the previous row
const (
	maxRunUnit = 400
	fillZero   = ','
	fillOne    = '!'
	repeatRow  = ':'
)

var ErrMalformedPayload = errors.New("malformed graphic field payload")

// Compress encodes packed rows with the ZPL ASCII compression scheme.
func Compress(data []byte, bytesPerRow int) string {
	if bytesPerRow <= 0 {
		return ""
	}

	var sb strings.Builder
	var prev string

	for start := 0; start+bytesPerRow <= len(data); start += bytesPerRow {
		row := strings.ToUpper(hex.EncodeToString(data[start : start+bytesPerRow]))
		if start > 0 && row == prev {
			sb.WriteByte(repeatRow)
			continue
		}
		compressRow(&sb, row)
		prev = row
	}

	return sb.String()
}

func compressRow(sb *strings.Builder, row string) {
	for i := 0; i < len(row); {
		c := row[i]
		j := i
		for j < len(row) && row[j] == c {
			j++
		}

		if j == len(row) && (c == '0' || c == 'F') {
			sb.WriteByte(lo.Ternary[byte](c == '0', fillZero, fillOne))
			return
		}

		sb.WriteString(runLength(j - i))
		sb.WriteByte(c)
		i = j
	}
}

// runLength returns the repeat prefix for a run of n identical digits.
func runLength(n int) string {
	if n <= 1 {
		return ""
	}

	var sb strings.Builder
	for n > maxRunUnit {
		sb.WriteByte('z')
		n -= maxRunUnit
	}
	if n >= 20 {
		sb.WriteByte(byte('g' + n/20 - 1))
		n %= 20
	}
	if n > 0 {
		sb.WriteByte(byte('G' + n - 1))
	}

	return sb.String()
}

// Decompress expands a ^GFA payload, compressed or plain, into packed rows.
// Whitespace is ignored as printers do.
func Decompress(payload string, bytesPerRow int) ([]byte, error) {
	if bytesPerRow < 0 || bytesPerRow > math.MaxInt/2 {
		return nil, errors.Wrapf(ErrMalformedPayload, "bytes per row %d out of range", bytesPerRow)
	}
	rowLen := 2 * bytesPerRow
	if rowLen == 0 {
		if strings.TrimSpace(payload) != "" {
			return nil, errors.Wrap(ErrMalformedPayload, "data present with zero bytes per row")
		}
		return nil, nil
	}

	var out strings.Builder
	var row, prev []byte
	count := 0

	flush := func() {
		out.Write(row)
		prev = row
		row = nil
	}
	fill := func(c byte) {
		for len(row) < rowLen {
			row = append(row, c)
		}
		flush()
	}

	for i := 0; i < len(payload); i++ {
		c := payload[i]
		switch {
		case c >= 'G' && c <= 'Y':
			count += int(c-'G') + 1
		case c >= 'g' && c <= 'z':
			count += (int(c-'g') + 1) * 20
		case c == fillZero:
			fill('0')
			count = 0
		case c == fillOne:
			fill('F')
			count = 0
		case c == repeatRow:
			if len(row) != 0 || prev == nil {
				return nil, errors.Wrapf(ErrMalformedPayload, "row repeat at offset %d", i)
			}
			row = append(row, prev...)
			flush()
		case isHexDigit(c):
			n := lo.Ternary(count > 0, count, 1)
			if len(row)+n > rowLen {
				return nil, errors.Wrapf(ErrMalformedPayload, "run overflows row at offset %d", i)
			}
			for k := 0; k < n; k++ {
				row = append(row, c)
			}
			count = 0
			if len(row) == rowLen {
				flush()
			}
		case c == ' ' || c == '\n' || c == '\r' || c == '\t':
		default:
			return nil, errors.Wrapf(ErrMalformedPayload, "unexpected %q at offset %d", c, i)
		}
	}

	if len(row) != 0 {
		return nil, errors.Wrap(ErrMalformedPayload, "truncated last row")
	}

	data, err := hex.DecodeString(out.String())
	if err != nil {
		return nil, errors.Wrap(ErrMalformedPayload, err.Error())
	}
	return data, nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}
