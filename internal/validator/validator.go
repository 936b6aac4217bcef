package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Seat numbers follow the "<row><column letter>" convention, e.g. "1A", "12C".
var seatNoRgx = regexp.MustCompile(`^[0-9]{1,3}[A-Z]$`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("seat_no", validateSeatNo)

	return validator
}

func validateSeatNo(fl validator.FieldLevel) bool {
	return seatNoRgx.MatchString(fl.Field().String())
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must contain at least %s item(s)", err.Param())
	case "unique":
		return "must not contain duplicates"
	case "seat_no":
		return "must be a valid seat number such as 1A"
	default:
		return "is invalid"
	}
}
