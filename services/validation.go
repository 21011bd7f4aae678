package services

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var twoDecimalRe = regexp.MustCompile(`^\d+(\.\d{2})?$`)

// newValidator builds the shared validator with the custom "price"
// rule: a decimal string that is either a whole amount or carries
// exactly two fraction digits.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		return twoDecimalRe.MatchString(fl.Field().String())
	})
	return v
}
