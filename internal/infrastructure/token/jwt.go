package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskboard/task-system/internal/core/domain"
	"github.com/taskboard/task-system/internal/core/ports"
)

const DefaultTTL = 24 * time.Hour

// ErrMissingSecret is a configuration failure, never an authentication one.
var ErrMissingSecret = errors.New("token: signing secret is empty")

type claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// JWTGenerator issues HS256 tokens whose subject is the user id.
type JWTGenerator struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewJWTGenerator(secret string, ttl time.Duration, issuer string) *JWTGenerator {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &JWTGenerator{secret: []byte(secret), ttl: ttl, issuer: issuer, now: time.Now}
}

func (g *JWTGenerator) GenerateToken(payload ports.TokenPayload) (string, error) {
	if len(g.secret) == 0 {
		return "", ErrMissingSecret
	}
	if payload.UserID == "" {
		return "", errors.New("token: payload has no user id")
	}

	now := g.now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   payload.UserID,
			Issuer:    g.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
		Email: payload.Email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken returns the payload a token was issued with. Malformed,
// tampered, expired or subject-less tokens fail with domain.ErrInvalidToken.
func (g *JWTGenerator) VerifyToken(raw string) (ports.TokenPayload, error) {
	if len(g.secret) == 0 {
		return ports.TokenPayload{}, ErrMissingSecret
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	}
	if g.issuer != "" {
		opts = append(opts, jwt.WithIssuer(g.issuer))
	}

	c := &claims{}
	tkn, err := jwt.ParseWithClaims(raw, c, func(*jwt.Token) (interface{}, error) {
		return g.secret, nil
	}, opts...)
	if err != nil || !tkn.Valid {
		return ports.TokenPayload{}, domain.ErrInvalidToken.Wrap(err)
	}
	if c.Subject == "" {
		return ports.TokenPayload{}, domain.ErrInvalidToken
	}

	return ports.TokenPayload{UserID: c.Subject, Email: c.Email}, nil
}
