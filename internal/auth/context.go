package auth

import (
	"context"

	"github.com/vishalsx/tubstudio-sub001/internal/domain"
)

type contextKey string

const (
	userKey  contextKey = "user_context"
	tokenKey contextKey = "access_token"
)

func ContextWithUser(ctx context.Context, user *domain.UserContext) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, tokenKey, user.AccessToken)
}

func UserFromContext(ctx context.Context) *domain.UserContext {
	user, _ := ctx.Value(userKey).(*domain.UserContext)
	return user
}

func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}
