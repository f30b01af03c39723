package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"github.com/henrykdz/pathment/internal/common"
	"github.com/henrykdz/pathment/internal/pathment"
)

// ValidateConfig performs validation on the GlobalConfig structure. Every
// failed rule becomes a common.ConfigurationError naming its section and
// field.
func ValidateConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return common.NewConfigurationError("", "", "nil config")
	}

	validate := newValidator()
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return common.WrapError(err, "configuration validation error")
	}

	var collector common.ErrorCollector
	for _, e := range errs {
		section, field, _ := strings.Cut(strings.TrimPrefix(e.Namespace(), "GlobalConfig."), ".")
		reason := fmt.Sprintf("rule '%s'", e.Tag())
		if e.Param() != "" {
			reason += fmt.Sprintf(" (expected: %s)", e.Param())
		}
		if e.Value() != nil && e.Value() != "" {
			reason += fmt.Sprintf(", actual: '%v'", e.Value())
		}
		collector.Add(common.NewConfigurationError(section, field, reason))
	}
	return collector.Error()
}

func newValidator() *validator.Validate {
	validate := validator.New()

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "trace", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		}
		return false
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		}
		return false
	})

	_ = validate.RegisterValidation("reportformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "text", "json", "yaml", "html":
			return true
		}
		return false
	})

	_ = validate.RegisterValidation("compression", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "none", "zstd", "snappy", "gzip":
			return true
		}
		return false
	})

	_ = validate.RegisterValidation("globs", func(fl validator.FieldLevel) bool {
		patterns, ok := stringSlice(fl)
		if !ok {
			return false
		}
		for _, p := range patterns {
			if !doublestar.ValidatePattern(p) {
				return false
			}
		}
		return true
	})

	_ = validate.RegisterValidation("regexes", func(fl validator.FieldLevel) bool {
		patterns, ok := stringSlice(fl)
		if !ok {
			return false
		}
		for _, p := range patterns {
			if _, err := regexp.Compile(p); err != nil {
				return false
			}
		}
		return true
	})

	_ = validate.RegisterValidation("pathmenttype", func(fl validator.FieldLevel) bool {
		name := strings.TrimSpace(fl.Field().String())
		return strings.EqualFold(name, pathment.Unspecified.String()) || pathment.ParseType(name) != pathment.Unspecified
	})

	return validate
}

func stringSlice(fl validator.FieldLevel) ([]string, bool) {
	if fl.Field().Kind() != reflect.Slice {
		return nil, false
	}
	values, ok := fl.Field().Interface().([]string)
	return values, ok
}
