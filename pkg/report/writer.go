package report

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"

	"github.com/rs/xid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func NewWriter(fs afero.Fs, console io.Writer, logger *zap.Logger) *Writer {
	return &Writer{
		fs:      fs,
		console: console,
		log:     logger,
	}
}

// Writer is the output sink: it stores reports in files and mirrors them to
// the console.
type Writer struct {
	fs      afero.Fs
	console io.Writer
	log     *zap.Logger
}

// Write renders r, stores it at path and prints it to the console. The file
// only appears once it is complete.
func (w *Writer) Write(path string, r *Report) error {
	text, err := r.Render()
	if err != nil {
		return fmt.Errorf("render report failed: %w", err)
	}

	if err := w.save(path, []byte(text)); err != nil {
		return err
	}

	w.log.With(zap.String("path", path), zap.Int("bytes", len(text))).Debug("report saved")

	if w.console != nil {
		if _, err := io.WriteString(w.console, text); err != nil {
			return err
		}
	}

	return nil
}

// WritePreview stores img as a PNG at path.
func (w *Writer) WritePreview(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode preview failed: %w", err)
	}

	if err := w.save(path, buf.Bytes()); err != nil {
		return err
	}

	w.log.With(zap.String("path", path)).Debug("preview saved")
	return nil
}

func (w *Writer) save(path string, bs []byte) error {
	dir := filepath.Dir(path)

	if exists, err := afero.DirExists(w.fs, dir); err != nil {
		return err
	} else if !exists {
		if err2 := w.fs.MkdirAll(dir, 0755); err2 != nil {
			return err2
		}
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp", xid.New().String()))
	if err := afero.WriteFile(w.fs, tmp, bs, 0644); err != nil {
		_ = w.fs.Remove(tmp)
		return fmt.Errorf("write %s failed: %w", path, err)
	}

	if err := w.fs.Rename(tmp, path); err != nil {
		_ = w.fs.Remove(tmp)
		return fmt.Errorf("move into %s failed: %w", path, err)
	}

	return nil
}
