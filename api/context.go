package api

import (
	"context"
	"errors"

	"github.com/rpupo63/portfolio-backend/services"
)

type keyType string

const identityKey keyType = "identity"

// ctxWithIdentity adds the verified admin identity to the context
func ctxWithIdentity(ctx context.Context, identity services.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// ctxGetIdentity retrieves the admin identity placed by the auth middleware
func ctxGetIdentity(ctx context.Context) (services.Identity, error) {
	if ctxValue := ctx.Value(identityKey); ctxValue == nil {
		return services.Identity{}, errors.New("identity not found in context")
	} else if identity, ok := ctxValue.(services.Identity); !ok {
		return services.Identity{}, errors.New("value is not of type `services.Identity`")
	} else {
		return identity, nil
	}
}
