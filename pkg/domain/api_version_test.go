package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "chimera/pkg/domain-errors"
)

func TestParseAPIVersion(t *testing.T) {
	for _, raw := range []string{"v1", "V1", " 1 "} {
		v, err := ParseAPIVersion(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, APIVersionV1, v)
	}

	for _, raw := range []string{"v9", "", "latest"} {
		_, err := ParseAPIVersion(raw)
		require.Error(t, err, raw)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
		assert.Contains(t, dErrors.MessageOf(err), "supported: v1")
	}
}

func TestAPIVersion_IsAtLeast(t *testing.T) {
	assert.True(t, APIVersionV1.IsAtLeast(APIVersionV1))
	assert.False(t, APIVersionV1.IsAtLeast(APIVersion("v2")), "unknown versions are never satisfied")
	assert.False(t, APIVersion("v0").IsAtLeast(APIVersionV1))
	assert.True(t, APIVersion("").IsNil())
}
