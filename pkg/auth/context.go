package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type contextKey string

const businessIDKey contextKey = "business_id"

// ErrBusinessIDNotFound means the request carries no authenticated business.
// Handlers answer 401.
var ErrBusinessIDNotFound = errors.New("business_id not found in context")

// BusinessIDFromCtx returns the business the request is authenticated for.
func BusinessIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(businessIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, ErrBusinessIDNotFound
	}
	return id, nil
}

// WithBusinessID attaches the authenticated business to ctx.
func WithBusinessID(ctx context.Context, businessID uuid.UUID) context.Context {
	return context.WithValue(ctx, businessIDKey, businessID)
}
