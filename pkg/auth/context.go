package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const userIDKey contextKey = "user_id"

// ErrUnauthenticated is returned when no user ID exists in the request context.
// Handlers should return 401 when this error occurs.
var ErrUnauthenticated = errors.New("not authorized")

// UserIDFromCtx extracts the acting user's ID from the request context.
// Returns uuid.Nil and ErrUnauthenticated for unauthenticated requests.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, ErrUnauthenticated
	}
	return userID, nil
}

// WithUserID returns a new context with the given user ID attached.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
