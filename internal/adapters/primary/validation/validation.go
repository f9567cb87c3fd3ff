// Package validation provides request body decoding, a chainable field
// validator, and query parameter parsing for the HTTP adapter.
package validation

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/mail"
	"regexp"
	"strconv"
	"strings"

	apperrors "github.com/lorrc/customer-service-backend/internal/core/errors"
)

var objectIDRegex = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// IsObjectID reports whether value is a 24-character hex document ID.
func IsObjectID(value string) bool {
	return objectIDRegex.MatchString(value)
}

// Validator collects field validation failures across chained checks. Each
// check records a failure instead of stopping, so a response can name every
// problem with a payload at once.
type Validator struct {
	errors *apperrors.ValidationErrors
}

func NewValidator() *Validator {
	return &Validator{errors: apperrors.NewValidationErrors()}
}

func (v *Validator) HasErrors() bool { return v.errors.HasErrors() }

// Errors returns the collected failures. The result satisfies error and is
// what handlers pass to the error handler on a failed Validate.
func (v *Validator) Errors() *apperrors.ValidationErrors { return v.errors }

// Required fails when value is empty or whitespace.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.errors.Add(field, "This field is required")
	}
	return v
}

func (v *Validator) MinLength(field, value string, min int) *Validator {
	if len(value) < min {
		v.errors.Add(field, fmt.Sprintf("Must be at least %d characters", min))
	}
	return v
}

func (v *Validator) MaxLength(field, value string, max int) *Validator {
	if len(value) > max {
		v.errors.Add(field, fmt.Sprintf("Must be at most %d characters", max))
	}
	return v
}

// Email fails on addresses net/mail cannot parse. Empty values pass; pair
// with Required when the field is mandatory.
func (v *Validator) Email(field, value string) *Validator {
	if value == "" {
		return v
	}
	if _, err := mail.ParseAddress(value); err != nil {
		v.errors.Add(field, "Must be a valid email address")
	}
	return v
}

// ObjectID fails on values that are not well-formed document IDs. Empty
// values pass.
func (v *Validator) ObjectID(field, value string) *Validator {
	if value != "" && !objectIDRegex.MatchString(value) {
		v.errors.Add(field, "Must be a valid 24-character hex ID")
	}
	return v
}

func (v *Validator) Range(field string, value, min, max int) *Validator {
	if value < min || value > max {
		v.errors.Add(field, fmt.Sprintf("Must be between %d and %d", min, max))
	}
	return v
}

// OneOf fails when value is present but not in allowed. Empty values pass.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" {
		return v
	}
	for _, candidate := range allowed {
		if value == candidate {
			return v
		}
	}
	v.errors.Add(field, "Must be one of: "+strings.Join(allowed, ", "))
	return v
}

// Custom records message against field when valid is false.
func (v *Validator) Custom(field string, valid bool, message string) *Validator {
	if !valid {
		v.errors.Add(field, message)
	}
	return v
}

// DecodeAndValidate decodes the request body into T. Malformed JSON comes
// back as a 400 AppError rather than a bare decode error.
func DecodeAndValidate[T any](r *http.Request) (*T, error) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, apperrors.NewBadRequestError(err, "Invalid request body")
	}
	return &req, nil
}

// ParseLimit reads the limit query parameter. Missing, malformed, or
// non-positive values fall back to defaultLimit; maxLimit is always the
// ceiling.
func ParseLimit(r *http.Request, defaultLimit, maxLimit int) int {
	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit
}

// ParseStringQueryParam returns the query parameter as a pointer, nil when
// absent, so repositories can tell "not filtered" from "filtered by empty".
func ParseStringQueryParam(r *http.Request, key string) *string {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil
	}
	return &value
}
