// Package auth verifies caller identities issued by the authentication
// platform and carries them through request contexts.
package auth

import "context"

// Identity is an authenticated caller. Subject is the platform's user id and
// is mapped to a domain user by the repository.
type Identity struct {
	Subject string
}

type contextKey struct{}

// WithIdentity returns a context carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity of the caller, or nil for anonymous calls.
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(contextKey{}).(*Identity)
	return id
}
