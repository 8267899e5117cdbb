package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"superhero-pets/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultTTL = 2 * time.Hour

var (
	ErrNotConfigured = errors.New("jwt secret not configured")
	ErrTokenEmpty    = errors.New("token is empty")
	ErrInvalidToken  = errors.New("invalid token")
)

type Config struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// heroClaims es el payload firmado: {id, name} + registered claims.
type heroClaims struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Authenticator firma y verifica tokens HS256.
// Implementa auth.TokenIssuer y auth.AuthVerifier.
type Authenticator struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func New(cfg Config) (*Authenticator, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, ErrNotConfigured
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	iss := strings.TrimSpace(cfg.Issuer)
	if iss == "" {
		iss = "superhero-pets"
	}

	return &Authenticator{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: iss,
		now:    time.Now,
	}, nil
}

func (a *Authenticator) Issue(_ context.Context, heroID int64, name string) (string, time.Time, error) {
	now := a.now()
	exp := now.Add(a.ttl)

	claims := heroClaims{
		ID:   heroID,
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(heroID, 10),
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

func (a *Authenticator) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var claims heroClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(a.issuer),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.ID <= 0 {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{
		HeroID: strconv.FormatInt(claims.ID, 10),
		Name:   claims.Name,
	}, nil
}
