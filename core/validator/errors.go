package validator

import (
	"errors"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

type validationErrorsImpl struct {
	fieldErrors []FieldError
	message     string
}

func (ve *validationErrorsImpl) Error() string {
	return ve.message
}

func (ve *validationErrorsImpl) Errors() []FieldError {
	return ve.fieldErrors
}

func (ve *validationErrorsImpl) HasErrors() bool {
	return len(ve.fieldErrors) > 0
}

type fieldErrorImpl struct {
	fieldError  validator.FieldError
	message     string
	translators map[string]ut.Translator
}

func (fe *fieldErrorImpl) Field() string {
	return fe.fieldError.Field()
}

func (fe *fieldErrorImpl) Tag() string {
	return fe.fieldError.Tag()
}

func (fe *fieldErrorImpl) Value() any {
	return fe.fieldError.Value()
}

func (fe *fieldErrorImpl) Message() string {
	return fe.message
}

func (fe *fieldErrorImpl) Translate(lang string) string {
	if trans, exists := fe.translators[lang]; exists {
		return fe.fieldError.Translate(trans)
	}
	return fe.message
}

// Fields maps field name to message, for error metadata
func Fields(err error) map[string]string {
	var ve ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make(map[string]string, len(ve.Errors()))
	for _, fe := range ve.Errors() {
		out[fe.Field()] = fe.Message()
	}
	return out
}

// HasFieldError reports whether field failed
func HasFieldError(err error, field string) bool {
	_, ok := Fields(err)[field]
	return ok
}

// IsValidationError reports whether err came from a failed validation
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}
