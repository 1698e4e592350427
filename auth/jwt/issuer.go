// Package jwt issues short-lived service-to-service tokens. Each token is
// scoped to one target service through its audience claim and carries a
// random token ID.
//
//	issuer, err := jwt.NewIssuer(jwt.Config{Secret: secret, Issuer: "orders"})
//	token, err := issuer.Token("users")
package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer signs service tokens.
type Issuer struct {
	cfg Config
	now func() time.Time
}

// NewIssuer creates a token issuer.
func NewIssuer(cfg Config) (*Issuer, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Issuer{cfg: cfg, now: time.Now}, nil
}

// Token returns a signed token whose audience is the target service.
func (i *Issuer) Token(audience string) (string, error) {
	now := i.now()
	claims := gojwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    i.cfg.Issuer,
		Subject:   i.cfg.Subject,
		IssuedAt:  gojwt.NewNumericDate(now),
		NotBefore: gojwt.NewNumericDate(now),
		ExpiresAt: gojwt.NewNumericDate(now.Add(i.cfg.TTL)),
	}
	if audience != "" {
		claims.Audience = gojwt.ClaimStrings{audience}
	}

	signed, err := gojwt.NewWithClaims(i.cfg.signingMethod(), claims).SignedString(i.cfg.signKey())
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a token issued by this issuer and checks its signature,
// expiry, issuer and, when non-empty, audience.
func (i *Issuer) Verify(token, audience string) (*gojwt.RegisteredClaims, error) {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{string(i.cfg.Method)}),
		gojwt.WithTimeFunc(i.now),
	}
	if i.cfg.Issuer != "" {
		opts = append(opts, gojwt.WithIssuer(i.cfg.Issuer))
	}
	if audience != "" {
		opts = append(opts, gojwt.WithAudience(audience))
	}

	claims := &gojwt.RegisteredClaims{}
	parsed, err := gojwt.ParseWithClaims(token, claims, func(*gojwt.Token) (interface{}, error) {
		return i.cfg.verifyKey(), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("jwt: parse token: %w", err)
	}
	if !parsed.Valid {
		return nil, errors.New("jwt: invalid token")
	}
	return claims, nil
}
