package validator

import (
	"github.com/go-playground/validator/v10"
)

// RequestValidator adapts go-playground/validator to echo's Validator
// interface so handlers can call c.Validate on bound request DTOs.
// Field-level rules the minutes and meeting usecases enforce (missing
// create fields, audio format and duration) stay in the usecases; this
// hook covers tag-annotated payloads only.
type RequestValidator struct {
	validate *validator.Validate
}

// New creates the validator echo is configured with at startup.
func New() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate checks a bound request struct against its validate tags.
func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.validate.Struct(i)
}
