package common

import (
	"context"
)

// UserContext carries the identity of the requesting user through a request.
type UserContext struct {
	UserID string
}

type userContextKey struct{}

// WithUserContext returns a new context carrying the given user context.
func WithUserContext(ctx context.Context, uc *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, uc)
}

// UserContextFrom extracts the user context, if present.
func UserContextFrom(ctx context.Context) (*UserContext, bool) {
	uc, ok := ctx.Value(userContextKey{}).(*UserContext)
	return uc, ok
}

// ResolveUserID returns the user ID from the context, falling back to
// "default" for unauthenticated requests.
func ResolveUserID(ctx context.Context) string {
	if uc, ok := UserContextFrom(ctx); ok && uc.UserID != "" {
		return uc.UserID
	}
	return "default"
}
