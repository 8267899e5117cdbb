package auth

import (
	"context"
	"time"
)

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer firma un token de tiempo limitado para un héroe.
type TokenIssuer interface {
	Issue(ctx context.Context, heroID int64, name string) (token string, expiresAt time.Time, err error)
}
