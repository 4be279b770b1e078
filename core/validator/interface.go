package validator

import (
	"context"

	"github.com/go-playground/validator/v10"
)

// Validator validates payloads at the client boundary
type Validator interface {
	Struct(s any) error
	StructCtx(ctx context.Context, s any) error
	// StructLang validates and translates messages to lang ("en", "es")
	StructLang(s any, lang string) error
	GetValidator() *validator.Validate
}

// ValidationErrors lists every field that failed
type ValidationErrors interface {
	error
	Errors() []FieldError
	HasErrors() bool
}

// FieldError describes one failing field, named by its json tag
type FieldError interface {
	Field() string
	Tag() string
	Value() any
	Message() string
	Translate(lang string) string
}

// ValidationOption configures a validator
type ValidationOption func(*validatorImpl)

// WithTagName sets the struct tag read for rules
func WithTagName(tagName string) ValidationOption {
	return func(v *validatorImpl) {
		v.validator.SetTagName(tagName)
	}
}

// WithDefaultLang sets the language used by Struct
func WithDefaultLang(lang string) ValidationOption {
	return func(v *validatorImpl) {
		v.defaultLang = lang
	}
}
