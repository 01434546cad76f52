package forms

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared rule engine. Fields carry validator tag
// expressions ("required,min=2,notonlywhitespace") evaluated per value.
var validate *validator.Validate

// emailPattern is deliberately stricter than the validator's built-in
// email rule; it matches what the order backend accepts.
var emailPattern = regexp.MustCompile(`^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,4}$`)

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("notonlywhitespace", validateNotOnlyWhitespace); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("shopemail", validateShopEmail); err != nil {
		panic(err)
	}
}

// validateNotOnlyWhitespace rejects strings that contain characters but
// only whitespace ones. Empty strings pass; "required" owns that case.
func validateNotOnlyWhitespace(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return true
	}
	if s == "" {
		return true
	}
	return strings.TrimSpace(s) != ""
}

func validateShopEmail(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return emailPattern.MatchString(s)
}
