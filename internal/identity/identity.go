// Package identity exposes the acting user of the current request. The core
// treats it as an opaque read-only source; the transport layer is
// responsible for populating it.
package identity

import "context"

// User identifies who is performing the current request.
type User struct {
	ID            string
	Username      string
	Authenticated bool
}

// Provider supplies the acting user for the request being processed.
type Provider interface {
	Current(ctx context.Context) User
}

type contextKey struct{}

// WithUser returns a context carrying the given user.
func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// ContextProvider reads the user placed on the context by the auth
// middleware. When nothing is present it returns an unauthenticated user;
// downstream consumers substitute the system actor.
type ContextProvider struct{}

func (ContextProvider) Current(ctx context.Context) User {
	user, ok := ctx.Value(contextKey{}).(User)
	if !ok {
		return User{}
	}
	return user
}
