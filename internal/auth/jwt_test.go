package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifier_RoundTrip(t *testing.T) {
	v := NewVerifier("secret", "finebook")
	token, err := v.Issue("uid-1", time.Hour)
	require.NoError(t, err)

	id, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", id.Subject)
}

func TestVerifier_Rejects(t *testing.T) {
	v := NewVerifier("secret", "finebook")

	expired, err := v.Issue("uid-1", -time.Minute)
	require.NoError(t, err)
	_, err = v.Verify(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, err := NewVerifier("other", "finebook").Issue("uid-1", time.Hour)
	require.NoError(t, err)
	_, err = v.Verify(other)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongIssuer, err := NewVerifier("secret", "someone").Issue("uid-1", time.Hour)
	require.NoError(t, err)
	_, err = v.Verify(wrongIssuer)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = v.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, FromContext(ctx))

	ctx = WithIdentity(ctx, &Identity{Subject: "s"})
	require.NotNil(t, FromContext(ctx))
	assert.Equal(t, "s", FromContext(ctx).Subject)
}
