package user

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trainhub/trainhub/core"
)

var (
	roleTag  = "role"
	roleText = "unknown role"
)

// RegisterValidators registers the user package's custom validation tags.
func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(validate, translator, roleTag, roleText)
}

// roleValidation only allows known role names.
func roleValidation(fl validator.FieldLevel) bool {
	return ParseRole(fl.Field().String()).Recognized()
}
