package app

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"magic_villa/internal/domain"
)

var validate = newValidator()

// newValidator adds notblank, which also rejects whitespace-only strings.
func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// validateDTO runs the struct tags and converts failures into field-level messages.
func validateDTO(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewValidationError("", err.Error())
	}
	out := &domain.ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, domain.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "max":
		return fmt.Sprintf("The field %s must have a maximum length of %s.", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("The field %s must be greater than or equal to %s.", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("The field %s must be greater than %s.", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("The field %s is invalid (%s).", fe.Field(), fe.Tag())
}
