package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	assert.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.True(t, CheckPassword("correct horse battery", hash))
	assert.False(t, CheckPassword("wrong password", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	secret := "unit-test-secret-0123456789abcdef"

	token, err := GenerateToken(secret, "actor-1", RoleAvocat)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	actorID, role, err := ParseToken(secret, token)
	assert.NoError(t, err)
	assert.Equal(t, "actor-1", actorID)
	assert.Equal(t, RoleAvocat, role)

	t.Run("Wrong secret rejected", func(t *testing.T) {
		_, _, err := ParseToken("another-secret-0123456789abcdef", token)
		assert.Error(t, err)
	})

	t.Run("Garbage token rejected", func(t *testing.T) {
		_, _, err := ParseToken(secret, "not.a.token")
		assert.Error(t, err)
	})
}
