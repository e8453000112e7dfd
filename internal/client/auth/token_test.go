package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpetrovs/prodhub/internal/common"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestUserID(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "user-42", "email": "a@b.c"})

	id, err := UserID(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", id)
}

func TestUserID_MissingSubject(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"email": "a@b.c"})

	_, err := UserID(token)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestUserID_Garbage(t *testing.T) {
	_, err := UserID("not-a-jwt")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
