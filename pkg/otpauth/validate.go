package otpauth

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// ErrTranslatorNotFound indicates the English validation messages are unavailable.
var ErrTranslatorNotFound = errors.New("otpauth: translator not found")

type optsValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

var loadValidator = sync.OnceValues(newOptsValidator)

func newOptsValidator() (*optsValidator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their option name rather than the Go field name
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("name"); name != "" {
			return name
		}
		return f.Name
	})

	enLang := en.New()
	uni := ut.New(enLang, enLang)
	enTrans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, enTrans); err != nil {
		return nil, err
	}

	return &optsValidator{validate: validate, translator: enTrans}, nil
}

// validateOpts checks opts against its struct tags and joins every failure
// into one ErrInvalidParameter.
func validateOpts(opts GenerateOpts) error {
	v, err := loadValidator()
	if err != nil {
		return fmt.Errorf("otpauth: failed to build validator: %w", err)
	}

	if err := v.validate.Struct(opts); err != nil {
		var validateErrs validator.ValidationErrors
		if !errors.As(err, &validateErrs) {
			return err
		}

		msgs := make([]string, 0, len(validateErrs))
		for _, fe := range validateErrs {
			msgs = append(msgs, fe.Translate(v.translator))
		}
		return fmt.Errorf("%w: %s", ErrInvalidParameter, strings.Join(msgs, "; "))
	}

	return nil
}
