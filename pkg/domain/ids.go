package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "chimera/pkg/domain-errors"
)

// PresentationID identifies one running presentation (one screen).
// Invariant: never the nil UUID once parsed.
type PresentationID uuid.UUID

// NewPresentationID returns a fresh random ID.
func NewPresentationID() PresentationID {
	return PresentationID(uuid.New())
}

// ParsePresentationID validates s at a trust boundary.
func ParsePresentationID(s string) (PresentationID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return PresentationID{}, err
	}
	return PresentationID(u), nil
}

func (id PresentationID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether id is the zero value.
func (id PresentationID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

// MarshalText renders the canonical UUID form so JSON carries a string.
func (id PresentationID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText parses with the same rules as ParsePresentationID.
func (id *PresentationID) UnmarshalText(b []byte) error {
	parsed, err := ParsePresentationID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func parseUUID(s string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must be a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be nil")
	}
	return u, nil
}
