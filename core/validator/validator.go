package validator

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	es_translations "github.com/go-playground/validator/v10/translations/es"
)

type validatorImpl struct {
	validator   *validator.Validate
	uni         *ut.UniversalTranslator
	translators map[string]ut.Translator
	defaultLang string
}

// Validate is the shared validator instance
var (
	Validate Validator
	once     sync.Once
)

func init() {
	once.Do(func() {
		Validate = New()
	})
}

// New creates a validator with English and Spanish messages
func New(opts ...ValidationOption) Validator {
	v := &validatorImpl{
		validator:   validator.New(validator.WithRequiredStructEnabled()),
		translators: make(map[string]ut.Translator, 2),
		defaultLang: "en",
	}

	// report fields by their wire name so messages match the API contract
	v.validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	enLocale := en.New()
	v.uni = ut.New(enLocale, enLocale, es.New())

	for _, opt := range opts {
		opt(v)
	}

	if trans, found := v.uni.GetTranslator("en"); found {
		v.translators["en"] = trans
		_ = en_translations.RegisterDefaultTranslations(v.validator, trans)
	}
	if trans, found := v.uni.GetTranslator("es"); found {
		v.translators["es"] = trans
		_ = es_translations.RegisterDefaultTranslations(v.validator, trans)
	}

	return v
}

func (v *validatorImpl) Struct(s any) error {
	return v.StructLang(s, v.defaultLang)
}

func (v *validatorImpl) StructCtx(ctx context.Context, s any) error {
	if s == nil {
		return errors.New("validation target cannot be nil")
	}
	return v.translateError(v.validator.StructCtx(ctx, s), v.defaultLang)
}

func (v *validatorImpl) StructLang(s any, lang string) error {
	if s == nil {
		return errors.New("validation target cannot be nil")
	}
	return v.translateError(v.validator.Struct(s), lang)
}

func (v *validatorImpl) GetValidator() *validator.Validate {
	return v.validator
}

func (v *validatorImpl) translateError(err error, lang string) error {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	trans, exists := v.translators[lang]
	if !exists {
		trans, exists = v.translators[v.defaultLang]
		if !exists {
			return err
		}
	}

	fieldErrors := make([]FieldError, 0, len(validationErrors))
	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fieldError := &fieldErrorImpl{
			fieldError:  fe,
			message:     fe.Translate(trans),
			translators: v.translators,
		}
		fieldErrors = append(fieldErrors, fieldError)
		messages = append(messages, fieldError.Message())
	}

	return &validationErrorsImpl{
		fieldErrors: fieldErrors,
		message:     strings.Join(messages, "; "),
	}
}
