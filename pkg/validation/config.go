// Package validation provides configuration validation utilities.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidMapboxToken is returned for tokens that are not public Mapbox
// tokens. Secret tokens ("sk.") must never reach the browser.
var ErrInvalidMapboxToken = errors.New("mapbox token must be a public token starting with 'pk.'")

// ErrMissingMapboxToken is returned when a token is required but empty.
var ErrMissingMapboxToken = errors.New("mapbox token is required")

// ErrInvalidRequest wraps every failure reported by Struct.
var ErrInvalidRequest = errors.New("invalid request")

var validate = validator.New()

// Struct validates a struct's `validate` tags and flattens the failures into a
// single readable error.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			messages = append(messages, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			messages = append(messages, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(messages, "; "))
}

// ValidateMapboxToken enforces the public-token rule. An empty token is
// rejected with ErrMissingMapboxToken.
func ValidateMapboxToken(token string) error {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return ErrMissingMapboxToken
	}
	if !strings.HasPrefix(trimmed, "pk.") {
		return ErrInvalidMapboxToken
	}
	return nil
}

// ValidateEfficiency warns when a panel or system efficiency fraction lies
// outside (0, 1].
func ValidateEfficiency(name string, value float64) string {
	if value <= 0 || value > 1 {
		return fmt.Sprintf("%s efficiency %.3f is outside (0, 1]; estimates will scale accordingly", name, value)
	}
	return ""
}

// ValidatePanelDimensions warns about panel models with a non-positive size.
func ValidatePanelDimensions(model string, widthMm, heightMm float64) string {
	if widthMm <= 0 || heightMm <= 0 {
		return fmt.Sprintf("panel model '%s' has non-positive dimensions (%.0f x %.0f mm)", model, widthMm, heightMm)
	}
	return ""
}

// ValidateElectricityRate warns when the kWh price would make payback undefined
// or negative.
func ValidateElectricityRate(rate float64) string {
	if rate <= 0 {
		return fmt.Sprintf("electricity rate %.2f is not positive; payback periods will be undefined or negative", rate)
	}
	return ""
}
