// Package inputval validates form input structs with go-playground/validator
// and turns the failures into user-facing messages.
//
// Fields declare their rules with a validate tag and their display name with
// a label tag:
//
//	type conferenceInput struct {
//		Name  string `validate:"required,max=200" label:"Conference name"`
//		Email string `validate:"omitempty,email" label:"Email"`
//	}
//
//	if res := inputval.Validate(in); res.HasErrors() {
//		renderWithError(res.First())
//		return
//	}
package inputval

import (
	"fmt"
	"net/mail"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldError is one failed rule on one field.
type FieldError struct {
	Field   string
	Label   string
	Tag     string
	Message string
}

// Result collects every failed rule of a Validate call, in field order.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool { return r != nil && len(r.Errors) > 0 }

// First returns the first message, or "" when the input is valid.
func (r *Result) First() string {
	if !r.HasErrors() {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	if !r.HasErrors() {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if l := f.Tag.Get("label"); l != "" {
				return l
			}
			return f.Name
		})
		mustRegister("email", func(fl validator.FieldLevel) bool { return IsValidEmail(fl.Field().String()) })
		mustRegister("httpurl", func(fl validator.FieldLevel) bool { return IsValidHTTPURL(fl.Field().String()) })
		mustRegister("year", func(fl validator.FieldLevel) bool { return IsValidYear(fl.Field().String()) })
		mustRegister("phone", func(fl validator.FieldLevel) bool { return IsValidPhone(fl.Field().String()) })
	})
	return v
}

func mustRegister(tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("inputval: register %q: %v", tag, err))
	}
}

// Validate runs the struct's validate tags. A non-struct argument yields a
// single generic error rather than a panic.
func Validate(s any) *Result {
	res := &Result{}
	err := instance().Struct(s)
	if err == nil {
		return res
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.Errors = append(res.Errors, FieldError{Message: "The submitted form could not be read."})
		return res
	}
	for _, fe := range verrs {
		res.Errors = append(res.Errors, FieldError{
			Field:   fe.StructField(),
			Label:   fe.Field(),
			Tag:     fe.Tag(),
			Message: message(fe.Field(), fe),
		})
	}
	return res
}

// ValidateValue checks a single value against rules (a validate tag such as
// "required,max=200") and returns the first message, or "" when it passes.
// It serves forms whose fields are declared at runtime rather than as tags.
func ValidateValue(label string, value any, rules string) string {
	if rules == "" {
		return ""
	}
	err := instance().Var(value, rules)
	if err == nil {
		return ""
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return label + " is invalid."
	}
	return message(label, verrs[0])
}

func message(label string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s.", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return "A valid email address is required."
	case "httpurl":
		return label + " must be a valid http(s) URL."
	case "year":
		return label + " must be a four-digit year."
	case "phone":
		return label + " must be a valid phone number."
	case "eqfield":
		return label + " does not match."
	case "numeric":
		return label + " must contain digits only."
	case "alphanum":
		return label + " must contain letters and digits only."
	default:
		return label + " is invalid."
	}
}

// IsValidEmail accepts a bare addr-spec: no display name, no whitespace,
// no leading, trailing or doubled dots in either part. Single-label domains
// such as "localhost" are allowed.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t\r\n<>") {
		return false
	}
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	if !cleanDots(s[:at]) || !cleanDots(s[at+1:]) {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func cleanDots(part string) bool {
	return !strings.HasPrefix(part, ".") && !strings.HasSuffix(part, ".") && !strings.Contains(part, "..")
}
