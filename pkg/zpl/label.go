package zpl

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DefaultOrigin is the field origin used in usage examples.
var DefaultOrigin = image.Pt(50, 20)

// Label places a graphic field on a label.
type Label struct {
	Origin image.Point
	Field  *GraphicField
}

// FieldOrigin renders the ^FO positioning command.
func (l Label) FieldOrigin() string {
	return fmt.Sprintf("^FO%d,%d", l.Origin.X, l.Origin.Y)
}

// Snippet returns the three lines needed to embed the field in a template:
// position, graphic field and field separator.
func (l Label) Snippet() []string {
	return []string{l.FieldOrigin(), l.Field.String(), "^FS"}
}

// String renders a complete printable label.
func (l Label) String() string {
	return "^XA\n" + strings.Join(l.Snippet(), "") + "\n^XZ"
}

// ParseOrigin parses an "x,y" pair in dots.
func ParseOrigin(s string) (image.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return image.Point{}, errors.Errorf("origin %q: expected x,y", s)
	}

	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil || x < 0 {
		return image.Point{}, errors.Errorf("origin %q: bad x", s)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil || y < 0 {
		return image.Point{}, errors.Errorf("origin %q: bad y", s)
	}

	return image.Pt(x, y), nil
}
