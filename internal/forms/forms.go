// Package forms проверяет входные формы через validator/v10 и собирает
// ошибки по полям в виде, удобном для повторного рендера формы.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// NonField — ключ для ошибок, не привязанных к конкретному полю.
const NonField = "__all__"

type Errors map[string][]string

func (e Errors) Add(field, msg string) { e[field] = append(e[field], msg) }

func (e Errors) Has(field string) bool { return len(e[field]) > 0 }

func (e Errors) Get(field string) []string { return e[field] }

func (e Errors) Valid() bool { return len(e) == 0 }

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for f, msgs := range e {
		parts = append(parts, f+": "+strings.Join(msgs, " "))
	}
	return strings.Join(parts, "; ")
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"form", "json"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})
	})
	return validate
}

// Validate возвращает nil, если форма валидна.
func Validate(form any) Errors {
	err := instance().Struct(form)
	if err == nil {
		return nil
	}

	out := Errors{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out.Add(NonField, err.Error())
		return out
	}
	for _, fe := range verrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Select a valid choice (%s).", fe.Param())
	default:
		return "Enter a valid value."
	}
}
