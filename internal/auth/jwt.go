package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents JWT payload. The user id travels in the registered
// subject claim.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the token subject.
func (c Claims) UserID() string {
	return c.Subject
}

// TokenIssuer signs time-bound bearer tokens with a server-held secret.
// No revocation list exists: a token stays valid until its expiry.
type TokenIssuer struct {
	issuer string
	key    []byte
	ttl    time.Duration
}

// NewTokenIssuer creates an issuer.
func NewTokenIssuer(issuer, key string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{issuer: issuer, key: []byte(key), ttl: ttl}
}

// Issue signs a token encoding the user identity and role.
func (t *TokenIssuer) Issue(userID, email, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
}

// Parse validates a token and returns its claims. Tokens with a bad
// signature, wrong issuer, or an expiry in the past are rejected.
func Parse(tokenStr, key, issuer string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(key), nil
	})
	if err != nil {
		return Claims{}, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Claims{}, errors.New("invalid token")
	}
	if issuer != "" && claims.Issuer != issuer {
		return Claims{}, errors.New("issuer mismatch")
	}
	return *claims, nil
}

// Parse validates a token against this issuer's key and issuer name.
func (t *TokenIssuer) Parse(tokenStr string) (Claims, error) {
	return Parse(tokenStr, string(t.key), t.issuer)
}
