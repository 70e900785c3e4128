// Package validation checks request payloads with go-playground/validator and
// the claim-specific tags registered here.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "insuro/internal/errors"
	"insuro/internal/models"
)

// FieldError is a single failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldErrors collects every failed rule of one payload.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validator validates structs against their `validate` tags.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// New creates a validator using the wall clock.
func New() *Validator {
	return NewWithClock(time.Now)
}

// NewWithClock creates a validator whose notfuture rule uses now.
func NewWithClock(now func() time.Time) *Validator {
	v := &Validator{validate: validator.New(), now: now}

	// report json names instead of Go field names
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	fieldValidators := map[string]func(validator.FieldLevel) bool{
		"claimtype":   validateClaimType,
		"claimstatus": validateClaimStatus,
		"notfuture":   v.validateNotFuture,
	}
	for tag, fn := range fieldValidators {
		// registration only fails on an empty tag or nil func
		_ = v.validate.RegisterValidation(tag, fn)
	}
	return v
}

// Struct validates s and returns a Validation DomainError listing every
// failed field, or nil. Safe for concurrent use.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Validation("invalid payload", err)
	}

	fields := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return apperrors.Validation("validation failed", fields)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "url":
		return "must be a valid URL"
	case "uuid4", "uuid":
		return "must be a valid id"
	case "claimtype":
		return "must be a claim type"
	case "claimstatus":
		return "must be a claim status"
	case "notfuture":
		return "must be a date (YYYY-MM-DD) not in the future"
	case "datetime":
		return fmt.Sprintf("must match layout %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q", fe.Tag())
	}
}

func validateClaimType(field validator.FieldLevel) bool {
	s := field.Field().String()
	if len(s) > MaxClaimTypeLength {
		return false
	}
	_, ok := models.ParseClaimType(s)
	return ok
}

func validateClaimStatus(field validator.FieldLevel) bool {
	return models.ClaimStatus(field.Field().String()).IsValid()
}

// validateNotFuture accepts dates up to the end of the current day in the
// furthest-ahead time zone (UTC+14).
func (v *Validator) validateNotFuture(field validator.FieldLevel) bool {
	var t time.Time
	switch val := field.Field().Interface().(type) {
	case time.Time:
		t = val
	case string:
		if val == "" {
			return true
		}
		parsed, err := time.Parse(DateLayout, val)
		if err != nil {
			return false
		}
		t = parsed
	default:
		return false
	}
	if t.IsZero() {
		return true
	}
	endOfDay := v.now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	return t.Before(endOfDay.Add(14 * time.Hour))
}
