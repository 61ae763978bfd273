package impl

import (
	"github.com/go-playground/validator/v10"

	domainerrors "plunder/internal/domain/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput runs struct-tag validation on a usecase input and converts
// failures into the validation variant of the error taxonomy.
func validateInput(input any) error {
	if err := validate.Struct(input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
