package utils

import (
	"context"

	"art-booking/internal/data/entity"
)

type contextKey string

const identityKey contextKey = "identity"

// SetIdentity stores the authenticated caller on the context.
func SetIdentity(ctx context.Context, identity entity.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func GetIdentity(ctx context.Context) (entity.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(entity.Identity)
	if !ok || identity.ID == "" {
		return entity.Identity{}, false
	}
	return identity, true
}

// GetUserIDFromContext returns the caller id regardless of role.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	identity, ok := GetIdentity(ctx)
	return identity.ID, ok
}
