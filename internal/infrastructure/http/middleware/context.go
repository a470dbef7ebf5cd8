package middleware

import (
	"context"
)

type contextKey string

const identityContextKey contextKey = "identity"

// Identity is the authenticated user resolved from the bearer token.
type Identity struct {
	UserID string
	Email  string
}

// WithIdentity injects the authenticated identity into the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// IdentityFromContext returns the authenticated identity, or false when the
// request did not pass the auth middleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	v := ctx.Value(identityContextKey)
	if v == nil {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
