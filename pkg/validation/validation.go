// Package validation checks tagged request structs with go-playground/validator
// and reports every failing field with a coarse error kind.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind classifies why a field failed.
type Kind string

const (
	KindMissing   Kind = "missing"
	KindType      Kind = "type"
	KindMalformed Kind = "malformed"
	KindTooLong   Kind = "too_long"
)

// FieldError describes one failing field.
type FieldError struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Errors is the full set of field failures for one request.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields returns the names of the failing fields in report order.
func (e Errors) Fields() []string {
	fields := make([]string, len(e))
	for i, fe := range e {
		fields[i] = fe.Field
	}
	return fields
}

// Validator wraps a validator.Validate configured to name fields by their
// form or json tag and to classify tags into kinds.
type Validator struct {
	validate *validator.Validate
	kinds    map[string]Kind
}

var defaultKinds = map[string]Kind{
	"required":  KindMissing,
	"numeric":   KindType,
	"number":    KindType,
	"float":     KindType,
	"email":     KindMalformed,
	"latitude":  KindMalformed,
	"longitude": KindMalformed,
	"min":       KindMalformed,
	"len":       KindMalformed,
	"max":       KindTooLong,
}

// New creates a Validator with the "float" validation registered. It panics
// if the registration fails.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)

	kinds := make(map[string]Kind, len(defaultKinds))
	for tag, kind := range defaultKinds {
		kinds[tag] = kind
	}

	val := &Validator{validate: v, kinds: kinds}
	if err := val.Register("float", isFloat, KindType); err != nil {
		panic(err)
	}
	return val
}

// Register adds a custom validation tag and the kind it reports.
func (v *Validator) Register(tag string, fn validator.Func, kind Kind) error {
	if err := v.validate.RegisterValidation(tag, fn); err != nil {
		return fmt.Errorf("register %s: %w", tag, err)
	}
	v.kinds[tag] = kind
	return nil
}

// Struct validates s. It returns nil, Errors, or the underlying error when
// s cannot be validated at all.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		kind := v.kind(fe.Tag())
		out = append(out, FieldError{
			Field:   fe.Field(),
			Kind:    kind,
			Message: message(fe, kind),
		})
	}
	return out
}

func (v *Validator) kind(tag string) Kind {
	if k, ok := v.kinds[tag]; ok {
		return k
	}
	return KindMalformed
}

func message(fe validator.FieldError, kind Kind) string {
	switch kind {
	case KindMissing:
		return fmt.Sprintf("%s is required", fe.Field())
	case KindType:
		return fmt.Sprintf("%s must be a number", fe.Field())
	case KindTooLong:
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	}

	switch fe.Tag() {
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "latitude", "longitude":
		return fmt.Sprintf("%s must be a valid %s", fe.Field(), fe.Tag())
	}
	return fmt.Sprintf("%s is malformed", fe.Field())
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"form", "json"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func isFloat(fl validator.FieldLevel) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(fl.Field().String()), 64)
	return err == nil
}
