// Package validator checks inbound form payloads against struct tags and
// reports failures under the JSON field names clients actually sent.
package validator

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationError is one failed rule on one field.
type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param"`
}

// ValidationErrors collects every failed rule from a single payload.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}

	var b strings.Builder
	for i, failure := range v {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(failure.Field)
		b.WriteString(" failed on ")
		b.WriteString(failure.Tag)
		if failure.Param != "" {
			b.WriteByte('=')
			b.WriteString(failure.Param)
		}
	}
	return b.String()
}

// ValidateStruct runs the tagged rules on a form struct. It returns nil,
// a ValidationErrors listing each failed field, or the raw error when the
// value is not validatable at all.
func ValidateStruct(form interface{}) error {
	err := forms().Struct(form)
	if err == nil {
		return nil
	}

	var raw validator.ValidationErrors
	if !errors.As(err, &raw) {
		return err
	}

	failures := make(ValidationErrors, 0, len(raw))
	for _, fe := range raw {
		failures = append(failures, ValidationError{
			Field: fe.Field(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return failures
}

var forms = sync.OnceValue(func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	return v
})

// jsonFieldName resolves the wire name for a struct field so error messages
// match the payload, falling back to the Go name for untagged fields.
func jsonFieldName(field reflect.StructField) string {
	tag, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if tag == "" || tag == "-" {
		return field.Name
	}
	return tag
}
