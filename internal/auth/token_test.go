package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenRoundtrip(t *testing.T) {
	tokens := NewTokenService("test-secret")
	userID := primitive.NewObjectID()

	token, err := tokens.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, resolved)
}

func TestTokenExpiry(t *testing.T) {
	tokens := NewTokenServiceWithTTL("test-secret", -time.Minute)

	token, err := tokens.Issue(primitive.NewObjectID())
	require.NoError(t, err)

	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWrongSecret(t *testing.T) {
	userID := primitive.NewObjectID()

	token, err := NewTokenService("secret-a").Issue(userID)
	require.NoError(t, err)

	_, err = NewTokenService("secret-b").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenGarbage(t *testing.T) {
	tokens := NewTokenService("test-secret")

	_, err := tokens.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
