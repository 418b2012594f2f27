package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := Generate("secret", "u1", "c1", "VENDEDOR", "ventas-api", 10)
	require.NoError(t, err)

	claims, err := Parse("secret", tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "c1", claims.CompanyID)
	assert.Equal(t, "VENDEDOR", claims.Role)
	assert.Equal(t, "ventas-api", claims.Issuer)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := Generate("secret", "u1", "c1", "ADMIN", "ventas-api", 10)
	require.NoError(t, err)

	_, err = Parse("otro", tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	tok, err := Generate("secret", "u1", "c1", "ADMIN", "ventas-api", -1)
	require.NoError(t, err)

	_, err = Parse("secret", tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := Generate("", "u1", "c1", "ADMIN", "x", 10)
	assert.Error(t, err)
}
