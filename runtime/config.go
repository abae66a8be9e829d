package runtime

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// url_format: absolute URL with scheme and host, e.g. a node's base_url.
	_ = v.RegisterValidation("url_format", func(fl validator.FieldLevel) bool {
		u, err := url.Parse(fl.Field().String())
		return err == nil && u.Scheme != "" && u.Host != ""
	})

	return v
}

// InitializeConfig fills config, a pointer to a tagged Config struct, from a
// definition's config map. Tag defaults are applied first, raw values
// override them and the merged struct is validated last.
func InitializeConfig(config any, rawValues map[string]any) error {
	configType := fmt.Sprintf("%T", config)

	if err := ApplyDefaults(config); err != nil {
		slog.Error("Applying config defaults failed", "config_type", configType, "error", err)
		return fmt.Errorf("failed to apply defaults: %w", err)
	}

	// Environment references were resolved when the definition was loaded.
	if len(rawValues) > 0 {
		if err := mapToStructFromYAML(rawValues, config); err != nil {
			slog.Error("Merging config values failed",
				"config_type", configType,
				"raw_values", rawValues,
				"error", err)
			return fmt.Errorf("failed to apply config values: %w", err)
		}
	}

	value := reflect.ValueOf(config)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if err := validateConfig(value.Interface()); err != nil {
		slog.Error("Config is invalid", "config_type", configType, "error", err)
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// ApplyDefaults sets every field carrying a `default` tag that is still zero.
func ApplyDefaults(config any) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := defaults.Set(config); err != nil {
		return fmt.Errorf("failed to apply default values: %w", err)
	}
	return nil
}

func validateConfig(config any) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	err := validate.Struct(config)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("config validation failed: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed validation: %s (rule: %s)", fe.Field(), fe.Error(), fe.Tag()))
	}
	return fmt.Errorf("config validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
