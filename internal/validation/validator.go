// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package validation wraps go-playground/validator v10 with a shared validator
// instance and error messages shaped for the HTTP API and config loader.
//
// Field names in errors come from the struct's json tag (or koanf tag when no
// json tag is present), so messages line up with what clients actually send:
//
//	type query struct {
//	    Mode string `json:"mode" validate:"required,oneof=movie mood"`
//	    TopN int    `json:"top_n" validate:"min=0,max=50"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    ...
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// CodeValidation is the API error code for rejected input.
const CodeValidation = "VALIDATION_ERROR"

var (
	shared     *validator.Validate
	sharedOnce sync.Once
)

// GetValidator returns the process-wide validator. Safe for concurrent use.
func GetValidator() *validator.Validate {
	sharedOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(tagName)
		if err := v.RegisterValidation("notblank", notBlank); err != nil {
			panic(fmt.Sprintf("register notblank: %v", err))
		}
		shared = v
	})
	return shared
}

// notBlank rejects strings that are empty after trimming whitespace.
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimFunc(fl.Field().String(), unicode.IsSpace) != ""
}

func tagName(f reflect.StructField) string {
	for _, key := range []string{"json", "koanf"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		switch name {
		case "-":
			return ""
		case "":
			continue
		default:
			return name
		}
	}
	return f.Name
}

// FieldError is one failed constraint, serialisable as API error detail.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// RequestValidationError collects every failed field of one struct.
type RequestValidationError struct {
	Fields []FieldError
}

func (e *RequestValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// APIError is the client-facing form of a validation failure.
type APIError struct {
	Code    string
	Message string
	Details map[string]any
}

// ToAPIError converts the collected errors into one API error whose
// details list every failed field.
func (e *RequestValidationError) ToAPIError() *APIError {
	msg := e.Error()
	if len(e.Fields) == 0 {
		msg = "Validation failed"
	}
	return &APIError{
		Code:    CodeValidation,
		Message: msg,
		Details: map[string]any{"fields": e.Fields},
	}
}

// ValidateStruct validates s with the shared validator and returns nil when
// s is valid.
func ValidateStruct(s any) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// InvalidValidationError: s was not a struct.
		return &RequestValidationError{Fields: []FieldError{{Field: "", Rule: "struct", Message: err.Error()}}}
	}

	out := &RequestValidationError{Fields: make([]FieldError, len(fieldErrs))}
	for i, fe := range fieldErrs {
		name := fieldPath(fe)
		out.Fields[i] = FieldError{
			Field:   name,
			Rule:    fe.Tag(),
			Param:   fe.Param(),
			Message: describe(fe, name),
		}
	}
	return out
}

// fieldPath drops the root type name so nested config fields read as
// "server.port" rather than "Config.server.port".
func fieldPath(fe validator.FieldError) string {
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok && strings.Contains(rest, ".") {
		return rest
	}
	return fe.Field()
}

// ruleMessages maps a rule to a format taking the field name and the rule
// parameter. Rules with a separate wording for strings use the "/string"
// suffix.
var ruleMessages = map[string]string{
	"required":   "%s is required",
	"notblank":   "%s must not be blank",
	"url":        "%s must be a valid URL",
	"hostname":   "%s must be a valid hostname",
	"file":       "%s must be an existing file",
	"oneof":      "%s must be one of: %s",
	"gte":        "%s must be greater than or equal to %s",
	"gt":         "%s must be greater than %s",
	"lte":        "%s must be less than or equal to %s",
	"lt":         "%s must be less than %s",
	"ltefield":   "%s must be less than or equal to %s",
	"min":        "%s must be at least %s",
	"max":        "%s must be at most %s",
	"min/string": "%s must be at least %s characters",
	"max/string": "%s must be at most %s characters",
}

func describe(fe validator.FieldError, name string) string {
	rule := fe.Tag()
	if fe.Kind() == reflect.String {
		if f, ok := ruleMessages[rule+"/string"]; ok {
			return fmt.Sprintf(f, name, fe.Param())
		}
	}
	f, ok := ruleMessages[rule]
	if !ok {
		return fmt.Sprintf("%s failed %s validation", name, rule)
	}
	if strings.Count(f, "%s") == 1 {
		return fmt.Sprintf(f, name)
	}
	return fmt.Sprintf(f, name, fe.Param())
}
