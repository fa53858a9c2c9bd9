package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"zplogo/pkg/convert"
	"zplogo/pkg/report"
	"zplogo/pkg/source"
	"zplogo/pkg/zpl"
)

var output = flag.StringP("output", "o", convert.DefaultOutput, "report file")
var maxWidth = flag.IntP("max-width", "w", zpl.DefaultMaxWidth, "downscale images wider than this many dots")
var threshold = flag.IntP("threshold", "t", zpl.DefaultThreshold, "pixels darker than this print (0-255)")
var dpi = flag.Int("dpi", convert.DefaultDPI, "printer resolution, 203 or 300 (informational)")
var compress = flag.Bool("compress", false, "use ZPL ASCII compression for the payload")
var origin = flag.String("origin", "50,20", "field origin x,y used in the usage example")
var label = flag.Bool("label", false, "include a complete ^XA..^XZ label in the report")
var preview = flag.String("preview", "", "also write the 1-bit result as PNG")
var debug = flag.Bool("debug", false, "set debug")
var quiet = flag.BoolP("quiet", "q", false, "hide the progress bar")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [image|url]\n\nConverts an image to a ZPL ^GF graphic field.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config()
	if err != nil {
		exit(err)
	}

	var runErr error
	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		fx.Provide(
			newLogger,
			func() afero.Fs { return afero.NewOsFs() },
			newLoader,
			func(fs afero.Fs, logger *zap.Logger) *report.Writer {
				return report.NewWriter(fs, os.Stdout, logger)
			},
			convert.New,
		),
		fx.Invoke(func(c *convert.Converter, logger *zap.Logger) {
			_, runErr = c.Run()
			_ = logger.Sync()
		}),
	)

	if runErr == nil {
		runErr = app.Err()
	}
	if runErr != nil {
		exit(runErr)
	}
}

func config() (convert.Config, error) {
	cfg := convert.DefaultConfig()
	if flag.NArg() > 0 {
		cfg.SourcePath = flag.Arg(0)
	}
	cfg.OutputPath = *output
	cfg.PreviewPath = *preview
	cfg.MaxWidth = *maxWidth
	cfg.Threshold = *threshold
	cfg.DPI = *dpi
	cfg.Compress = *compress
	cfg.FullLabel = *label

	o, err := zpl.ParseOrigin(*origin)
	if err != nil {
		return cfg, errors.Wrap(convert.ErrInvalidConfig, err.Error())
	}
	cfg.Origin = o

	return cfg, cfg.Validate()
}

func newLogger() (*zap.Logger, error) {
	c := zap.NewDevelopmentConfig()
	if !*debug {
		c.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		c.DisableStacktrace = true
		c.DisableCaller = true
	}
	return c.Build()
}

func newLoader(fs afero.Fs, logger *zap.Logger) *source.Loader {
	if *quiet {
		return source.NewLoader(fs, logger)
	}
	return source.NewLoader(fs, logger, source.WithProgress(os.Stderr))
}

func exit(err error) {
	fmt.Fprintln(os.Stderr, convert.Message(err))
	if errors.Is(err, convert.ErrInvalidConfig) {
		fmt.Fprintln(os.Stderr)
		flag.Usage()
	}
	os.Exit(1)
}
