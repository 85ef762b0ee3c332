package jwthelper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("test-key")

func TestGenerateAndParse(t *testing.T) {
	token, err := GenerateToken(testKey, 7, "curl/8", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(testKey, token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "curl/8", claims.UserAgent)
	assert.NotEmpty(t, claims.ID)
}

func TestParseToken_Rejects(t *testing.T) {
	expired, err := GenerateToken(testKey, 1, "", -time.Minute)
	require.NoError(t, err)
	other, err := GenerateToken([]byte("other-key"), 1, "", time.Hour)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":   expired,
		"wrong key": other,
		"garbage":   "not.a.jwt",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseToken(testKey, token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestBlocklist(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	b := NewBlocklist()
	b.now = func() time.Time { return now }

	b.Revoke("a", now.Add(time.Hour))
	assert.True(t, b.IsRevoked("a"))
	assert.False(t, b.IsRevoked("b"))

	now = now.Add(2 * time.Hour)
	b.Revoke("b", now.Add(time.Hour))
	assert.False(t, b.IsRevoked("a"))
	assert.True(t, b.IsRevoked("b"))
}
