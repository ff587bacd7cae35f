package middlewares

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateCategoryNames sanity-checks a submitted category-name list before
// it is matched against the registry: names must be non-empty printable
// ASCII of bounded length, without the cookie codec's delimiters (":" and
// "|", 0x7C below). Registry membership is checked separately so an unknown
// name surfaces as UnknownCategoryError, not a validation error.
func ValidateCategoryNames(names []string) error {
	return validate.Var(names, "max=64,dive,required,printascii,max=64,excludesall=:0x7C")
}
