package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	m := NewManager("test-secret")

	token, err := m.GenerateToken("op-1", "jdoe", "supervisor")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "op-1", claims.OperatorID)
	assert.Equal(t, "jdoe", claims.Username)
	assert.Equal(t, "supervisor", claims.Role)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a").GenerateToken("op-1", "jdoe", "picker")
	require.NoError(t, err)

	_, err = NewManager("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := NewManager("secret").ValidateToken("not-a-token")
	assert.Error(t, err)
}
