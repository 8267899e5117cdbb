package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"superhero-pets/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// DebugHeroHeader permite inyectar identidad cuando no hay verifier (modo dev/tests).
const DebugHeroHeader = "X-Debug-Hero-ID"

// AuthContext:
// - Si verifier != nil y viene Bearer token => intenta Verify() y setea claims.
// - Si verifier == nil => modo dev: si viene header X-Debug-Hero-ID => setea claims.
// - Si no hay claims, el request sigue igual; RequireAuth decide el 401.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				if id := strings.TrimSpace(r.Header.Get(DebugHeroHeader)); id != "" {
					ctx := WithClaims(r.Context(), auth.Claims{HeroID: id})
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}

				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireAuth corta con 401 si AuthContext no dejó claims en el contexto.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r.Context())
		if ok && strings.TrimSpace(claims.HeroID) != "" {
			next.ServeHTTP(w, r)
			return
		}

		msg := "Token inválido o expirado"
		if bearerToken(r.Header.Get("Authorization")) == "" && r.Header.Get(DebugHeroHeader) == "" {
			msg = "Token no proporcionado"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
	})
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
