package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aleister1102/sitemapfinder/internal/urlhandler"
	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	validate := newValidator()

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("configuration validation error: %w", err)
	}

	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := fmt.Sprintf("Validation failed for '%s': rule '%s'", e.Namespace(), e.Tag())
		if e.Param() != "" {
			msg += fmt.Sprintf(" (expected: %s)", e.Param())
		}
		if e.Value() != nil && e.Value() != "" {
			msg += fmt.Sprintf(", actual: '%v'", e.Value())
		}
		messages = append(messages, msg)
	}
	return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(messages, "\n  "))
}

func newValidator() *validator.Validate {
	validate := validator.New()

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "trace", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("outputformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "json", "csv", "parquet", "xlsx":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("parquetcompression", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "none", "snappy", "gzip", "zstd":
			return true
		default:
			return false
		}
	})

	// Catalog entries are absolute paths joined onto each probe target.
	_ = validate.RegisterValidation("sitemappath", func(fl validator.FieldLevel) bool {
		path := fl.Field().String()
		return strings.HasPrefix(path, "/") && !strings.ContainsAny(path, " \t\r\n")
	})

	_ = validate.RegisterValidation("proxyurl", func(fl validator.FieldLevel) bool {
		return urlhandler.ValidateURLFormat(fl.Field().String()) == nil
	})

	return validate
}
