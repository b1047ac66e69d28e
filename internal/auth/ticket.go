// Package auth issues and checks recovery tickets: short-lived HS256 JWTs
// proving that a username passed the security-question check.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the verified username in the standard subject claim.
type Claims struct {
	jwt.RegisteredClaims
}

// Issuer signs and validates recovery tickets.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer returns an Issuer signing with secret. A nil secret gets a
// random 32 byte key, which is what the CLI uses: tickets never outlive
// the process.
func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	if secret == nil {
		secret = common.GenerateRandByteArray(32)
	}
	return &Issuer{secret: secret, ttl: ttl, now: time.Now}
}

// Issue returns a signed ticket for username valid for the issuer's TTL.
func (i *Issuer) Issue(username string) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign recovery ticket: %w", err)
	}
	return signed, nil
}

// Validate checks the signature, expiry and that the ticket was issued for
// username. It returns common.ErrTokenExpired or common.ErrInvalidToken.
func (i *Issuer) Validate(ticket, username string) error {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(ticket, claims,
		func(t *jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithSubject(username),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return common.ErrTokenExpired
		}
		return fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid {
		return common.ErrInvalidToken
	}
	return nil
}
