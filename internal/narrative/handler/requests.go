package handler

import (
	"strings"
	"unicode/utf8"

	"chimera/internal/presentation/scenes"
	dErrors "chimera/pkg/domain-errors"
)

const maxNameLength = 128

// GenerateRequest is the HTTP request body for POST /narrative.
type GenerateRequest struct {
	Name     string `json:"name"`
	Verified *bool  `json:"verified,omitempty"`
	Score    *int   `json:"score,omitempty"`
}

// Validate implements httputil.Validatable.
func (r *GenerateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if utf8.RuneCountInString(r.Name) > maxNameLength {
		return dErrors.New(dErrors.CodeValidation, "name must be at most 128 characters")
	}
	if r.Score != nil && (*r.Score < 0 || *r.Score > 100) {
		return dErrors.New(dErrors.CodeValidation, "score must be between 0 and 100")
	}
	return nil
}

// IsVerified defaults to true, as on the report slide.
func (r *GenerateRequest) IsVerified() bool {
	return r.Verified == nil || *r.Verified
}

// RiskScore defaults to the score the AML scene settles on.
func (r *GenerateRequest) RiskScore() int {
	if r.Score == nil {
		return scenes.FinalRiskScore
	}
	return *r.Score
}

// GenerateResponse is the HTTP response body for POST /narrative.
type GenerateResponse struct {
	Narrative string `json:"narrative"`
}
