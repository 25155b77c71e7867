// Package requestctx carries per-request values set by middleware.
package requestctx

import (
	"context"

	"quillhub/internal/models"
)

// Identity is the authenticated caller of a request.
type Identity struct {
	User    *models.User
	Session *models.Session
	Token   string
}

type identityKey struct{}

type requestIDKey struct{}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns nil for anonymous requests.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id
}

// UserFromContext is a shorthand for the identity's user, or nil.
func UserFromContext(ctx context.Context) *models.User {
	if id := IdentityFromContext(ctx); id != nil {
		return id.User
	}
	return nil
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	value, _ := ctx.Value(requestIDKey{}).(string)
	return value
}
