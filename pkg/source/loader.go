package source

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("source image not found")

func NewLoader(fs afero.Fs, logger *zap.Logger, opts ...Option) *Loader {
	l := &Loader{
		fs:  fs,
		cli: resty.New().SetDoNotParseResponse(true),
		log: logger,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Loader reads source images from a filesystem or over http(s) and turns
// them into grayscale pixel grids.
type Loader struct {
	fs       afero.Fs
	cli      *resty.Client
	log      *zap.Logger
	progress io.Writer
}

// Load fetches, decodes and converts the image at path, which is either a
// filesystem path or an http(s) URL.
func (l *Loader) Load(path string) (*Image, error) {
	bs, err := l.Fetch(path)
	if err != nil {
		return nil, err
	}

	img, err := Decode(bs, path)
	if err != nil {
		return nil, fmt.Errorf("decode %s failed: %w", path, err)
	}

	b := img.Gray.Bounds()
	l.log.With(
		zap.String("path", path),
		zap.String("format", img.Format),
		zap.Int("w", b.Dx()),
		zap.Int("h", b.Dy()),
	).Debug("source loaded")

	return img, nil
}

// Fetch returns the raw bytes of the source. A missing file or a 404
// response yields ErrNotFound.
func (l *Loader) Fetch(path string) ([]byte, error) {
	if isRemote(path) {
		return l.fetchRemote(path)
	}
	return l.fetchLocal(path)
}

func (l *Loader) fetchLocal(path string) ([]byte, error) {
	info, err := l.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrNotFound, path)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, errors.Wrapf(ErrNotFound, "%s is a directory", path)
	}

	f, err := l.fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	return l.read(f, info.Size(), fmt.Sprintf("Reading %s", path))
}

func (l *Loader) fetchRemote(path string) ([]byte, error) {
	resp, err := l.cli.R().Get(path)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = resp.RawBody().Close()
	}()

	switch code := resp.StatusCode(); {
	case code == http.StatusNotFound:
		return nil, errors.Wrap(ErrNotFound, path)
	case code >= http.StatusBadRequest:
		return nil, errors.Errorf("fetch %s: %s", path, resp.Status())
	}

	return l.read(resp.RawBody(), resp.RawResponse.ContentLength, fmt.Sprintf("Downloading %s", path))
}

func (l *Loader) read(r io.Reader, size int64, desc string) ([]byte, error) {
	var buf bytes.Buffer
	var w io.Writer = &buf

	if l.progress != nil {
		bar := progressbar.NewOptions64(
			size,
			progressbar.OptionSetWriter(l.progress),
			progressbar.OptionSetDescription(desc),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		)
		defer func() {
			_ = bar.Finish()
		}()
		w = io.MultiWriter(&buf, bar)
	}

	if _, err := io.Copy(w, r); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func isRemote(path string) bool {
	u, err := url.Parse(path)
	if err != nil {
		return false
	}
	return lo.Contains([]string{"http", "https"}, u.Scheme) && u.Host != ""
}
