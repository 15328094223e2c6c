package testutil

import (
	"context"

	"github.com/mjfashion/billdesk/internal/types"
)

func SetupContext() context.Context {
	ctx := context.Background()
	ctx = types.SetRequestID(ctx, types.GenerateUUID())
	return ctx
}

// SetupAuthorizedContext returns a context carrying a bearer token
func SetupAuthorizedContext(token string) context.Context {
	return types.SetJWT(SetupContext(), token)
}
