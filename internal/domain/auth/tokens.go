package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL matches the session cookie lifetime
const DefaultTokenTTL = 7 * 24 * time.Hour

// ErrInvalidToken is returned for malformed, forged or expired tokens
var ErrInvalidToken = errors.New("auth: invalid token")

// Claims carried by session tokens
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 session tokens
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	clock  func() time.Time
}

// NewTokenIssuer creates an issuer; ttl <= 0 uses DefaultTokenTTL
func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("auth: jwt secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, clock: time.Now}, nil
}

// TTL reports how long issued tokens stay valid
func (p *TokenIssuer) TTL() time.Duration {
	return p.ttl
}

// Issue returns a signed token for the user and its expiry
func (p *TokenIssuer) Issue(userID uuid.UUID) (string, time.Time, error) {
	now := p.clock().UTC()
	expiresAt := now.Add(p.ttl)

	claims := Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse validates the token and returns the user it was issued to
func (p *TokenIssuer) Parse(token string) (uuid.UUID, error) {
	userID, _, err := p.Verify(token)
	return userID, err
}

// Verify validates the token and returns its user and expiry
func (p *TokenIssuer) Verify(token string) (uuid.UUID, time.Time, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(p.clock),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return uuid.Nil, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id := claims.UserID
	if id == "" {
		id = claims.Subject
	}
	userID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, time.Time{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return userID, claims.ExpiresAt.Time, nil
}
