package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Roundtrip(t *testing.T) {
	m := NewManager("secret", 12*time.Hour)

	tok, exp, err := m.Issue("alice", "2b1f7f8e-9c3a-4c57-9d5e-1f0b2f8e6a11")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(12*time.Hour), exp, 5*time.Second)

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "2b1f7f8e-9c3a-4c57-9d5e-1f0b2f8e6a11", claims.UserID)
	assert.Equal(t, exp.Unix(), claims.ExpiresAt.Unix())
}

func TestManager_Expired(t *testing.T) {
	m := NewManager("secret", 12*time.Hour)
	m.now = func() time.Time { return time.Now().Add(-13 * time.Hour) }

	tok, _, err := m.Issue("alice", "u-1")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(tok)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestManager_WrongSecret(t *testing.T) {
	tok, _, err := NewManager("secret", time.Hour).Issue("alice", "u-1")
	require.NoError(t, err)

	_, err = NewManager("other", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestManager_RejectsOtherAlgorithms(t *testing.T) {
	m := NewManager("secret", time.Hour)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: "u-1",
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Parse(none)
	assert.Error(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.Parse(hs512)
	assert.Error(t, err)
}

func TestManager_RequiresClaims(t *testing.T) {
	m := NewManager("secret", time.Hour)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"},
		UserID:           "u-1",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.Parse(noExp)
	assert.Error(t, err)

	noUser, _, err := m.Issue("alice", "")
	require.NoError(t, err)
	_, err = m.Parse(noUser)
	assert.Error(t, err)
}

func TestManager_Malformed(t *testing.T) {
	_, err := NewManager("secret", time.Hour).Parse("not.a.token")
	assert.Error(t, err)
}
