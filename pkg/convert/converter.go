package convert

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"zplogo/pkg/report"
	"zplogo/pkg/source"
	"zplogo/pkg/zpl"
)

func New(cfg Config, loader *source.Loader, writer *report.Writer, logger *zap.Logger) *Converter {
	return &Converter{
		cfg:    cfg,
		loader: loader,
		writer: writer,
		log:    logger,
	}
}

// Converter runs one conversion: load, encode, report.
type Converter struct {
	cfg    Config
	loader *source.Loader
	writer *report.Writer
	log    *zap.Logger
}

// Run performs the conversion. Nothing is written unless the image was
// loaded and encoded successfully.
func (c *Converter) Run() (*zpl.GraphicField, error) {
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}
	if !c.cfg.ThresholdInRange() {
		c.log.With(zap.Int("threshold", c.cfg.Threshold)).Warn("threshold outside 0-255, output will be uniform")
	}

	img, err := c.loader.Load(c.cfg.SourcePath)
	if err != nil {
		if errors.Is(err, ErrSourceNotFound) {
			return nil, err
		}
		return nil, processErr("load", err)
	}

	c.log.With(
		zap.String("source", c.cfg.SourcePath),
		zap.Int("width", img.Width()),
		zap.Int("height", img.Height()),
	).Info("image loaded")

	enc := zpl.NewEncoder(
		zpl.WithMaxWidth(c.cfg.MaxWidth),
		zpl.WithThreshold(c.cfg.Threshold),
		zpl.WithCompression(c.cfg.Compress),
	)

	field := enc.Encode(img.Gray)
	if field.Width != img.Width() {
		c.log.With(
			zap.Int("from", img.Width()),
			zap.Int("to", field.Width),
			zap.Int("height", field.Height),
		).Info("image resized")
	}

	c.log.With(
		zap.Int("width", field.Width),
		zap.Int("height", field.Height),
		zap.Int("bytes_per_row", field.BytesPerRow),
		zap.Int("total_bytes", field.TotalBytes),
		zap.Int("hex_length", len(field.Payload())),
		zap.Bool("compressed", field.Compressed),
	).Info("image encoded")

	r := &report.Report{
		Source:    c.cfg.SourcePath,
		DPI:       c.cfg.DPI,
		Threshold: c.cfg.Threshold,
		Origin:    c.cfg.Origin,
		Field:     field,
		FullLabel: c.cfg.FullLabel,
	}
	if err := c.writer.Write(c.cfg.OutputPath, r); err != nil {
		return nil, processErr("write report", err)
	}

	switch {
	case c.cfg.PreviewPath == "":
	case field.Width == 0 || field.Height == 0:
		c.log.With(
			zap.String("preview", c.cfg.PreviewPath),
			zap.Int("width", field.Width),
			zap.Int("height", field.Height),
		).Warn("empty bitmap, preview skipped")
	default:
		if err := c.writer.WritePreview(c.cfg.PreviewPath, field.Image()); err != nil {
			return nil, processErr("write preview", err)
		}
	}

	c.log.With(zap.String("output", c.cfg.OutputPath)).Info("conversion done")
	return field, nil
}
