package source

import (
	"io"

	"github.com/go-resty/resty/v2"
)

type Option func(l *Loader)

// WithProgress draws a byte progress bar on w while the source is read.
func WithProgress(w io.Writer) Option {
	return func(l *Loader) {
		l.progress = w
	}
}

func WithClient(cli *resty.Client) Option {
	return func(l *Loader) {
		l.cli = cli.SetDoNotParseResponse(true)
	}
}
