package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a bearer token fails signature
// verification, is malformed, or has expired.
var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer issues and verifies HS256 bearer tokens. The signing secret
// is injected from configuration at startup and read-only afterwards, so
// concurrent use needs no synchronization. Tokens are stateless; expiry is
// the only invalidation mechanism.
type TokenIssuer struct {
	Secret []byte        // symmetric signing key
	Issuer string        // value of the iss claim
	TTL    time.Duration // token lifetime (15 days in production config)
}

// NewTokenIssuer builds a TokenIssuer from the configured secret and a TTL
// in days.
func NewTokenIssuer(secret, issuer string, ttlDays int) *TokenIssuer {
	return &TokenIssuer{
		Secret: []byte(secret),
		Issuer: issuer,
		TTL:    time.Duration(ttlDays) * 24 * time.Hour,
	}
}

// Issue builds and signs a token whose subject is the customer's email and
// whose roles claim embeds the granted authorities.
func (ti *TokenIssuer) Issue(subject string, roles []string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   subject,
		"roles": roles,
		"iss":   ti.Issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(ti.TTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.Secret)
}

// Subject parses and signature-verifies a token and returns its subject.
// Expired, malformed or foreign-signed tokens yield ErrInvalidToken.
func (ti *TokenIssuer) Subject(token string) (string, error) {
	tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return ti.Secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	sub, err := tok.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

// IsValid reports whether the token verifies, is unexpired, and was issued
// for the expected subject.
func (ti *TokenIssuer) IsValid(token, expectedSubject string) bool {
	sub, err := ti.Subject(token)
	return err == nil && sub == expectedSubject
}
