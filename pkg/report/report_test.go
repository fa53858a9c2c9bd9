package report

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"zplogo/pkg/zpl"
)

func whiteField(t *testing.T) *zpl.GraphicField {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 16, 2))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	return zpl.NewEncoder().Encode(img)
}

func TestRender(t *testing.T) {
	r := &Report{
		Source:    "logo.png",
		DPI:       203,
		Threshold: 128,
		Origin:    zpl.DefaultOrigin,
		Field:     whiteField(t),
	}

	text, err := r.Render()
	require.NoError(t, err)

	assert.Contains(t, text, "Image: 16x2 pixels\n")
	assert.Contains(t, text, "Total bytes: 4 (")
	assert.Contains(t, text, "ZPL command:\n^GFA,4,4,2,00000000\n")
	assert.Contains(t, text, "Usage example:\n^FO50,20\n^GFA,4,4,2,00000000\n^FS\n")
	assert.NotContains(t, text, "^XA")
}

func TestRenderFullLabel(t *testing.T) {
	r := &Report{Source: "logo.png", DPI: 300, Origin: zpl.DefaultOrigin, Field: whiteField(t), FullLabel: true}

	text, err := r.Render()
	require.NoError(t, err)
	assert.Contains(t, text, "^XA\n^FO50,20^GFA,4,4,2,00000000^FS\n^XZ")
	assert.Contains(t, text, "at 300 dpi")
}

func TestWriterWritesFileAndConsole(t *testing.T) {
	fs := afero.NewMemMapFs()
	var console bytes.Buffer
	w := NewWriter(fs, &console, zap.NewNop())

	r := &Report{Source: "logo.png", DPI: 203, Origin: zpl.DefaultOrigin, Field: whiteField(t)}
	require.NoError(t, w.Write("out/logo_zpl.txt", r))

	saved, err := afero.ReadFile(fs, "out/logo_zpl.txt")
	require.NoError(t, err)
	assert.Equal(t, console.String(), string(saved))

	entries, err := afero.ReadDir(fs, "out")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestWriterFailsOnReadOnlyFs(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	w := NewWriter(fs, nil, zap.NewNop())

	r := &Report{Source: "logo.png", DPI: 203, Field: whiteField(t)}
	assert.Error(t, w.Write("logo_zpl.txt", r))
}

func TestWritePreview(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs, nil, zap.NewNop())

	f := whiteField(t)
	require.NoError(t, w.WritePreview("preview.png", f.Image()))

	bs, err := afero.ReadFile(fs, "preview.png")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(bs))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 2), img.Bounds())
}
