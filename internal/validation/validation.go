// Package validation checks request structs against their `binding` tags.
// The HTTP layer installs it as gin's validator and the CLI calls it
// directly, so both surfaces reject the same input with the same messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// TagName is the struct tag holding the rules.
const TagName = "binding"

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator. Field errors are reported under
// the field's JSON name.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.SetTagName(TagName)
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Error lists every rule a request broke.
type Error struct {
	Fields []FieldError
}

// FieldError is one broken rule.
type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (e FieldError) String() string {
	switch e.Rule {
	case "required":
		return e.Field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", e.Field, e.Param)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", e.Field, e.Param)
	case "url":
		return e.Field + " must be a valid URL"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field, strings.ReplaceAll(e.Param, " ", ", "))
	default:
		return fmt.Sprintf("%s failed the %s check", e.Field, e.Rule)
	}
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return strings.Join(parts, "; ")
}

// Struct validates v, which may be a struct, a pointer to one, or a slice of
// either. It returns nil or an *Error.
func Struct(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return convert(Validator().Struct(rv.Interface()), "")
	case reflect.Slice, reflect.Array:
		out := &Error{}
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i)
			if elem.Kind() == reflect.Pointer && elem.IsNil() {
				out.Fields = append(out.Fields, FieldError{Field: fmt.Sprintf("[%d]", i), Rule: "required"})
				continue
			}
			err := convert(Validator().Struct(elem.Interface()), fmt.Sprintf("[%d].", i))
			var verr *Error
			if errors.As(err, &verr) {
				out.Fields = append(out.Fields, verr.Fields...)
			} else if err != nil {
				return err
			}
		}
		if len(out.Fields) > 0 {
			return out
		}
		return nil
	default:
		return nil
	}
}

func convert(err error, prefix string) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: prefix + fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}
