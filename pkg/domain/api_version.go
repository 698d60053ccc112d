package domain

import (
	"fmt"
	"strings"

	dErrors "chimera/pkg/domain-errors"
)

// APIVersion is the version segment routes are mounted under ("/v1").
type APIVersion string

const APIVersionV1 APIVersion = "v1"

// served lists the mounted versions, oldest first.
var served = []APIVersion{APIVersionV1}

// ParseAPIVersion reads a client-supplied version such as "v1", "V1" or "1".
// Versions that are not served are a bad request.
func ParseAPIVersion(s string) (APIVersion, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	parsed := APIVersion(v)
	if parsed.rank() == 0 {
		return "", dErrors.New(dErrors.CodeBadRequest,
			fmt.Sprintf("unsupported API version %q; supported: %s", s, joinVersions(served)))
	}
	return parsed, nil
}

func (v APIVersion) String() string {
	return string(v)
}

// IsNil returns true if the API version is empty.
func (v APIVersion) IsNil() bool {
	return v == ""
}

// IsAtLeast reports whether v can serve a request written against other.
// Neither side may be unknown.
func (v APIVersion) IsAtLeast(other APIVersion) bool {
	mine, theirs := v.rank(), other.rank()
	return mine > 0 && theirs > 0 && mine >= theirs
}

// rank is the 1-based position of v in served, or 0 when unknown.
func (v APIVersion) rank() int {
	for i, s := range served {
		if s == v {
			return i + 1
		}
	}
	return 0
}

func joinVersions(vs []APIVersion) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}
