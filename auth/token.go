package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	UserTokenTTL    = 7 * 24 * time.Hour
	CompanyTokenTTL = 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	ID    uint   `json:"id"`
	Type  Kind   `json:"type"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 session tokens.
type Issuer struct {
	secret []byte
	now    func() time.Time
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret), now: time.Now}
}

// Issue returns a signed token for p. Users get 7 days, companies 24 hours.
func (i *Issuer) Issue(p Principal) (string, error) {
	ttl := UserTokenTTL
	if p.Kind == KindCompany {
		ttl = CompanyTokenTTL
	}
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		ID:    p.ID,
		Type:  p.Kind,
		Name:  p.Name,
		Email: p.Email,
		Role:  p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the token and rebuilds the principal from its claims.
func (i *Issuer) Parse(tokenString string) (Principal, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.ID == 0 || (c.Type != KindUser && c.Type != KindCompany) {
		return Principal{}, ErrInvalidToken
	}
	return Principal{Kind: c.Type, ID: c.ID, Name: c.Name, Email: c.Email, Role: c.Role}, nil
}
