package validators

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	_ = validate.RegisterValidation("password", passwordRule)
}

// passwordRule requires at least 8 chars with a lowercase, an uppercase,
// a digit and a special character.
func passwordRule(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return lower && upper && digit && special
}

// Check validates a payload struct and returns a field → message map,
// empty when the payload is valid.
func Check(payload interface{}) map[string]string {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["payload"] = "Invalid request body!"
		return errors
	}
	for _, fieldError := range validationErrors {
		field := strings.ToLower(fieldError.Field())
		errors[field] = message(fieldError)
	}
	return errors
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required!"
	case "email":
		return "Invalid email!"
	case "password":
		return "Password must be at least 8 characters with upper, lower, digit and special characters!"
	case "min":
		return "Value is too short or too small!"
	case "max":
		return "Value is too long or too large!"
	case "oneof":
		return "Value is not one of the allowed options!"
	case "gte":
		return "Value is too small!"
	case "lte":
		return "Value is too large!"
	case "gt":
		return "Value must be greater than " + fe.Param() + "!"
	case "url":
		return "Invalid URL!"
	default:
		return "Invalid value!"
	}
}
