package validation

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct checks the `validate` tags on a request payload. Handlers run this
// before a payload reaches the services, which assume well-formed input.
func Struct(payload any) error {
	return validate.Struct(payload)
}
