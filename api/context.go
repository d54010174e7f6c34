package api

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type keyType string

const adminIDKey keyType = "adminID"

// ctxWithAdminID adds the authenticated admin's ID to the context
func ctxWithAdminID(ctx context.Context, adminID uuid.UUID) context.Context {
	return context.WithValue(ctx, adminIDKey, adminID)
}

// ctxGetAdminID retrieves the authenticated admin's ID from the context
func ctxGetAdminID(ctx context.Context) (uuid.UUID, error) {
	ctxValue := ctx.Value(adminIDKey)
	if ctxValue == nil {
		return uuid.Nil, errors.New("no admin in context")
	}
	adminID, ok := ctxValue.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("admin ID in context is not a uuid")
	}
	return adminID, nil
}
