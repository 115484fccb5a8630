package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenManager_GenerateAndValidate(t *testing.T) {
	tm := NewTokenManager(testSecret)

	token, err := tm.Generate(42, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.PartyID)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "rentledger", claims.Issuer)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	tm := NewTokenManager(testSecret)

	token, err := tm.Generate(42, -time.Minute)
	require.NoError(t, err)

	_, err = tm.Validate(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager(testSecret)
	other := NewTokenManager("another-secret-another-secret-xx")

	token, err := tm.Generate(42, time.Hour)
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	tm := NewTokenManager(testSecret)

	_, err := tm.Validate("not.a.token")
	assert.Error(t, err)
}
