package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const envPrefix = "DEVEMPIRE"

// Validator checks a loaded Config and reports problems by config key, with
// the environment variable that sets each one.
type Validator struct {
	validate *validator.Validate
}

// NewValidator names fields by their mapstructure keys so errors read like
// the yaml file
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		key := configKey(e.Namespace())
		messages = append(messages, fmt.Sprintf("%s %s (got %v, set %s)", key, describe(e), e.Value(), EnvVar(key)))
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
}

// describe phrases one failed rule
func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "required_if":
		field, value, _ := strings.Cut(e.Param(), " ")
		return fmt.Sprintf("is required when %s is %s", snakeCase(field), value)
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(e.Param()), ", ")
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "startswith":
		return "must start with " + e.Param()
	default:
		return fmt.Sprintf("fails %s=%s", e.Tag(), e.Param())
	}
}

// configKey drops the root type from a validator namespace:
// "Config.game.tick_interval" -> "game.tick_interval"
func configKey(namespace string) string {
	_, key, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return key
}

// EnvVar is the environment variable that overrides a config key
func EnvVar(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func snakeCase(field string) string {
	var b strings.Builder
	for i, r := range field {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg)
}
