package handler

import (
	"strings"
	"unicode/utf8"

	dErrors "chimera/pkg/domain-errors"
)

// CreateRequest is the HTTP request body for POST /presentations. An empty
// body is allowed and screens the default subject.
type CreateRequest struct {
	Subject string `json:"subject"`
}

// Validate implements httputil.Validatable.
func (r *CreateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Subject = strings.TrimSpace(r.Subject)
	if utf8.RuneCountInString(r.Subject) > 128 {
		return dErrors.New(dErrors.CodeValidation, "subject must be at most 128 characters")
	}
	return nil
}
