package auth

import (
	"context"

	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/models"
)

type contextKey string

const principalContextKey contextKey = "principal"

func WithPrincipal(ctx context.Context, user models.AdminUser) context.Context {
	return context.WithValue(ctx, principalContextKey, user)
}

func PrincipalFromContext(ctx context.Context) (models.AdminUser, bool) {
	user, ok := ctx.Value(principalContextKey).(models.AdminUser)
	return user, ok
}
