package bloglist

import (
	"context"

	"github.com/goliatone/go-router"
)

var userCtxKey = &contextKey{"user"}

type contextKey struct {
	name string
}

// WithContext sets the User in the given context
func WithContext(r context.Context, user *User) context.Context {
	return context.WithValue(r, userCtxKey, user)
}

// FromContext finds the user from the context.
func FromContext(ctx context.Context) (*User, bool) {
	raw, ok := ctx.Value(userCtxKey).(*User)
	return raw, ok
}

// UserFromRouterContext extracts the resolved user the auth middleware
// stored in the router context.
func UserFromRouterContext(ctx router.Context, key string) (*User, bool) {
	if key == "" {
		key = "user"
	}
	raw := ctx.Locals(key)
	if raw == nil {
		return nil, false
	}
	user, ok := raw.(*User)
	return user, ok
}

// TokenFromRouterContext extracts the candidate bearer token the extraction
// stage stored in the router context, if any.
func TokenFromRouterContext(ctx router.Context, key string) (string, bool) {
	if key == "" {
		key = "token"
	}
	raw := ctx.Locals(key)
	if raw == nil {
		return "", false
	}
	token, ok := raw.(string)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
