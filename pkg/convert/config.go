package convert

import (
	"image"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"zplogo/pkg/zpl"
)

const (
	DefaultSource = "logo.png"
	DefaultOutput = "logo_zpl.txt"
	DefaultDPI    = 203
)

// Config holds everything one conversion needs.
type Config struct {
	SourcePath  string `validate:"required"`
	OutputPath  string `validate:"required"`
	PreviewPath string
	MaxWidth    int `validate:"gt=0"`
	// Threshold is not range checked: values outside [0,255] give an all
	// blank or all ink result.
	Threshold int
	// DPI is informational; it only affects the print size in the report.
	DPI       int `validate:"oneof=203 300"`
	Compress  bool
	Origin    image.Point
	FullLabel bool
}

func DefaultConfig() Config {
	return Config{
		SourcePath: DefaultSource,
		OutputPath: DefaultOutput,
		MaxWidth:   zpl.DefaultMaxWidth,
		Threshold:  zpl.DefaultThreshold,
		DPI:        DefaultDPI,
		Origin:     zpl.DefaultOrigin,
	}
}

var validate = validator.New()

func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}

	fields := lo.Map(verrs, func(fe validator.FieldError, _ int) string {
		if fe.Param() != "" {
			return fe.Field() + " must be " + fe.Tag() + " " + fe.Param()
		}
		return fe.Field() + " is " + fe.Tag()
	})
	return errors.Wrap(ErrInvalidConfig, strings.Join(fields, ", "))
}

func (c *Config) ThresholdInRange() bool {
	return c.Threshold >= 0 && c.Threshold <= 255
}
