package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/ilyadubrovsky/tracking-attendance/internal/calendar"
	"github.com/ilyadubrovsky/tracking-attendance/internal/domain"
	ierrors "github.com/ilyadubrovsky/tracking-attendance/internal/errors"
)

var (
	dateTag  = "date"
	dateText = "{0} must be a YYYY-MM-DD date"

	clockTag   = "clock"
	clockText  = "{0} must be a HH:MM time"
	clockRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

	requiredTag  = "required"
	requiredText = "{0} is required"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error)
	}
	return fmt.Sprintf("%s: %s", ierrors.ErrValidation, strings.Join(msgs, "; "))
}

func (e *Error) Unwrap() error {
	return ierrors.ErrValidation
}

// Fields extracts the field errors of err, if it is a validation error.
func Fields(err error) []FieldError {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}

type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func New() *Validator {
	locale := en.New()
	translator, _ := ut.New(locale, locale).GetTranslator("en")

	validate := validator.New()
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(dateTag, func(fl validator.FieldLevel) bool {
		return calendar.IsDate(fl.Field().String())
	})
	registerTranslation(validate, translator, dateTag, dateText)

	_ = validate.RegisterValidation(clockTag, func(fl validator.FieldLevel) bool {
		return clockRegex.MatchString(fl.Field().String())
	})
	registerTranslation(validate, translator, clockTag, clockText)

	registerTranslation(validate, translator, requiredTag, requiredText, true)

	return &Validator{
		validate:   validate,
		translator: translator,
	}
}

func registerTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

func (v *Validator) fieldErrors(s interface{}) []FieldError {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Error: err.Error()}}
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field: fe.Field(),
			Error: fe.Translate(v.translator),
		})
	}
	return fields
}

func result(fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &Error{Fields: fields}
}

// CourseConfig rejects malformed fields and an inverted date range.
func (v *Validator) CourseConfig(cfg domain.CourseConfig) error {
	fields := v.fieldErrors(cfg)
	if len(fields) == 0 && cfg.Start > cfg.End {
		fields = append(fields, FieldError{Field: "end", Error: "end must not be before start"})
	}
	return result(fields)
}

// Unit checks the stored shape of a unit. Range problems are advisory and
// reported by unitdays instead.
func (v *Validator) Unit(unit domain.Unit) error {
	fields := v.fieldErrors(unit)
	if unit.ID == domain.TotalUnitID {
		fields = append(fields, FieldError{Field: "id", Error: ierrors.ErrReservedUnitID.Error()})
	}
	return result(fields)
}

func (v *Validator) Student(student domain.Student) error {
	return result(v.fieldErrors(student))
}
