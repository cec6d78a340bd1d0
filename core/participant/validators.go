package participant

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trainhub/trainhub/core"
)

var (
	profileTag  = "profile"
	profileText = "unknown profile"
)

// RegisterValidators registers the participant package's custom validation tags.
func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(profileTag, profileValidation)
	core.RegisterCustomTranslation(validate, translator, profileTag, profileText)
}

// profileValidation only allows known profile names.
func profileValidation(fl validator.FieldLevel) bool {
	return ParseProfile(fl.Field().String()).Recognized()
}
