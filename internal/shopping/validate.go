package shopping

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxDescription is the longest accepted description, in runes.
const MaxDescription = 200

var validate = validator.New()

type descriptionInput struct {
	Description string `validate:"required,max=200"`
}

// ValidationError reports input rejected before it reached the store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func validateDescription(s string) (string, error) {
	in := descriptionInput{Description: strings.TrimSpace(s)}
	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			switch fieldErrs[0].Tag() {
			case "required":
				return "", &ValidationError{Field: "description", Reason: "cannot be empty"}
			case "max":
				return "", &ValidationError{Field: "description", Reason: fmt.Sprintf("longer than %d characters", MaxDescription)}
			}
		}
		return "", &ValidationError{Field: "description", Reason: err.Error()}
	}
	return in.Description, nil
}
