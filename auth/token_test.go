package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParseUser(t *testing.T) {
	iss := NewIssuer("secret")
	tok, err := iss.Issue(UserPrincipal(7, "alice", "alice@example.com", "TALENT"))
	require.NoError(t, err)

	p, err := iss.Parse(tok)
	require.NoError(t, err)
	assert.True(t, p.IsUser())
	assert.False(t, p.IsCompany())
	assert.Equal(t, uint(7), p.ID)
	assert.Equal(t, "alice", p.Name)
	assert.Equal(t, "TALENT", p.Role)
}

func TestTokenExpiryByKind(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	iss := NewIssuer("secret")
	iss.now = func() time.Time { return start }

	userTok, err := iss.Issue(UserPrincipal(1, "alice", "a@x.io", "TALENT"))
	require.NoError(t, err)
	companyTok, err := iss.Issue(CompanyPrincipal(1, "Acme", "acme@x.io"))
	require.NoError(t, err)

	iss.now = func() time.Time { return start.Add(48 * time.Hour) }
	_, err = iss.Parse(userTok)
	assert.NoError(t, err)
	_, err = iss.Parse(companyTok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	iss.now = func() time.Time { return start.Add(8 * 24 * time.Hour) }
	_, err = iss.Parse(userTok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsForeignSecretAndAlgorithm(t *testing.T) {
	tok, err := NewIssuer("other").Issue(CompanyPrincipal(2, "Acme", "acme@x.io"))
	require.NoError(t, err)
	_, err = NewIssuer("secret").Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id": 1, "type": "user", "exp": time.Now().Add(time.Hour).Unix(),
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = NewIssuer("secret").Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewIssuer("secret").Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPrincipalOwns(t *testing.T) {
	c := CompanyPrincipal(3, "Acme", "acme@x.io")
	u := UserPrincipal(3, "alice", "a@x.io", "TALENT")
	var anon *Principal

	assert.True(t, c.Owns(3))
	assert.False(t, c.Owns(4))
	assert.False(t, u.Owns(3))
	assert.False(t, anon.Owns(3))
	assert.False(t, anon.IsUser())
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)
	assert.True(t, CheckPassword(hash, "password123"))
	assert.False(t, CheckPassword(hash, "nope"))
}
