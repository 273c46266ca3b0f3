// Package auth issues and verifies the bearer tokens the API hands out on
// login, and exposes the authenticated agent to handlers.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrJamesThe3rd/collecta/internal/agent"
)

var ErrInvalidToken = errors.New("invalid token")

type contextKey string

const agentKey contextKey = "agent"

// Tokens signs session tokens with a shared HS256 secret. Sessions do not
// expire; a token stays valid for as long as its agent is on the roster.
type Tokens struct {
	secret []byte
}

func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret)}
}

func (t *Tokens) Issue(agentID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: agentID})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify returns the agent id carried by a token.
func (t *Tokens) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return claims.Subject, nil
}

// Lookup resolves an agent id against the live roster.
type Lookup func(id string) (agent.Agent, bool)

// Middleware rejects requests without a valid bearer token for a known agent
// and stores that agent in the request context.
func Middleware(tokens *Tokens, lookup Lookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				http.Error(w, "authorization header required", http.StatusUnauthorized)
				return
			}

			id, err := tokens.Verify(tokenString)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			a, ok := lookup(id)
			if !ok {
				http.Error(w, "unknown agent", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAgent(r.Context(), a)))
		})
	}
}

// RequireAdmin lets only admins through. It must run after Middleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a, ok := FromContext(r.Context())
		if !ok || !a.IsAdmin {
			http.Error(w, "admin access required", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func WithAgent(ctx context.Context, a agent.Agent) context.Context {
	return context.WithValue(ctx, agentKey, a)
}

func FromContext(ctx context.Context) (agent.Agent, bool) {
	a, ok := ctx.Value(agentKey).(agent.Agent)
	return a, ok
}
