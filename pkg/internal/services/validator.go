package services

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validation = validator.New(validator.WithRequiredStructEnabled())

func validateInput(what string, in any) error {
	if err := validation.Struct(in); err != nil {
		return fmt.Errorf("%s: %w: %v", what, ErrInvalidInput, err)
	}
	return nil
}
