package secrets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "listly/pkg/domain-errors"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, Verify("correct horse battery staple", hash))
}

func TestVerify_WrongPassword(t *testing.T) {
	hash, err := Hash("password123")
	require.NoError(t, err)

	err = Verify("password124", hash)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestHash_EmptyPassword(t *testing.T) {
	_, err := Hash("")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestHash_TooLong(t *testing.T) {
	_, err := Hash(strings.Repeat("a", 100))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}
