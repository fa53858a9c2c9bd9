package report

import (
	"bytes"
	"image"
	"text/template"

	"github.com/inhies/go-bytesize"

	"zplogo/pkg/zpl"
)

// Report is the advisory text produced alongside a conversion.
type Report struct {
	Source    string
	DPI       int
	Threshold int
	Origin    image.Point
	Field     *zpl.GraphicField
	// FullLabel also includes a printable ^XA..^XZ label.
	FullLabel bool
}

var tpl = template.Must(template.New("report").Parse(`ZPL graphic field for {{.Source}}
Image: {{.Field.Width}}x{{.Field.Height}} pixels
Print size: {{printf "%.2f" .WidthInches}}x{{printf "%.2f" .HeightInches}} in at {{.DPI}} dpi
Threshold: {{.Threshold}}
Bytes per row: {{.Field.BytesPerRow}}
Total bytes: {{.Field.TotalBytes}} ({{.Size}})

ZPL command:
{{.Command}}

Usage example:
{{range .Label.Snippet}}{{.}}
{{end}}{{if .FullLabel}}
Full label:
{{.Label}}
{{end}}`))

func (r *Report) Label() zpl.Label {
	return zpl.Label{Origin: r.Origin, Field: r.Field}
}

func (r *Report) Command() string {
	return r.Field.String()
}

func (r *Report) Size() string {
	return bytesize.New(float64(r.Field.TotalBytes)).String()
}

func (r *Report) WidthInches() float64 {
	return r.inches(r.Field.Width)
}

func (r *Report) HeightInches() float64 {
	return r.inches(r.Field.Height)
}

func (r *Report) inches(dots int) float64 {
	if r.DPI <= 0 {
		return 0
	}
	return float64(dots) / float64(r.DPI)
}

// Render returns the report text.
func (r *Report) Render() (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}
