package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/banshee-data/survey-planner/internal/survey"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator returns the shared validator. Field names are reported by
// their koanf keys so errors name the setting a user actually writes.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("koanf"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks every setting and the extra camera profiles. The first
// violation is returned as a *survey.FieldError.
func (c *Config) Validate() error {
	if err := c.ValidateFootprint(); err != nil {
		return err
	}
	return c.ValidateShutter()
}

// ValidateFootprint checks the footprint section, the elevation range it
// describes and the extra camera profiles.
func (c *Config) ValidateFootprint() error {
	if err := validateSection("footprint", &c.Footprint); err != nil {
		return err
	}
	if _, err := c.ElevationRange(); err != nil {
		return err
	}
	if _, err := c.Registry(); err != nil {
		return err
	}
	return nil
}

// ValidateShutter checks the shutter section only.
func (c *Config) ValidateShutter() error {
	return validateSection("shutter", &c.Shutter)
}

func validateSection(prefix string, section any) error {
	err := getValidator().Struct(section)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %w", survey.ErrInvalidConfig, err)
	}
	return toFieldError(prefix, verrs[0])
}

func toFieldError(prefix string, fe validator.FieldError) *survey.FieldError {
	// Namespace is "FootprintConfig.export.table_name"; swap the root type
	// for the section key.
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		ns = rest
	}
	return &survey.FieldError{Field: prefix + "." + ns, Reason: reason(fe)}
}

var reasonWithParam = map[string]string{
	"oneof": "must be one of: %s",
	"gte":   "must be greater than or equal to %s",
	"lte":   "must be less than or equal to %s",
	"gt":    "must be greater than %s",
	"lt":    "must be less than %s",
}

func reason(fe validator.FieldError) string {
	if tmpl, ok := reasonWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, fe.Param()) + fmt.Sprintf(", got %v", fe.Value())
	}
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_if":
		return "is required when export is enabled"
	case "gtefield":
		return fmt.Sprintf("must not be below %s, got %v", fieldKey(fe.Param()), fe.Value())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// fieldKey converts a Go field name used as a validator parameter
// (ElevationMin) into its koanf key (elevation_min).
func fieldKey(goName string) string {
	if f, ok := reflect.TypeOf(FootprintConfig{}).FieldByName(goName); ok {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		return name
	}
	return goName
}
