package presets

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrPresetNotFound is returned when no preset carries the requested name.
	ErrPresetNotFound = errors.New("preset not found")
	// ErrModelNotFound is returned when the requested model key is missing from the bucket.
	ErrModelNotFound = errors.New("model not found")
	// ErrInvalidName is returned for preset or model names that cannot be used as object keys.
	ErrInvalidName = errors.New("invalid name")
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidateName checks that name is usable as a preset key.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// ValidateModel checks a model key relative to the model prefix.
func ValidateModel(model string) error {
	if model == "" || strings.HasPrefix(model, "/") || strings.Contains(model, "..") {
		return fmt.Errorf("%w: model %q", ErrInvalidName, model)
	}
	return nil
}
