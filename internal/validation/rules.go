// Package validation provides custom validation rules for the application.
package validation

import (
	"strconv"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/tokenshare/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// MaxBytes limits the encoded size of a string. validation.Length counts runes, which
// lets multi-byte input exceed a byte budget.
type MaxBytes int

// Validate implements validation.Rule. A non-positive limit disables the check.
func (m MaxBytes) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_max_bytes_type", "must be a string")
	}
	if m > 0 && len(s) > int(m) {
		return validation.NewError(
			"validation_max_bytes",
			"must be no more than "+strconv.Itoa(int(m))+" bytes",
		)
	}
	return nil
}
