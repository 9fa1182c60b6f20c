package utils

import "context"

type contextKey string

const (
	ContextKeyCorrelationId contextKey = "correlationId"
	ContextKeyUserId        contextKey = "userId"
	ContextKeyUsername      contextKey = "username"
)

func GetCorrelationIdFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ContextKeyCorrelationId).(string)
	return v, ok
}

func SetCorrelationIdInContext(ctx context.Context, correlationId string) context.Context {
	return context.WithValue(ctx, ContextKeyCorrelationId, correlationId)
}

func GetUserIdFromContext(ctx context.Context) (int, bool) {
	v, ok := ctx.Value(ContextKeyUserId).(int)
	return v, ok
}

func SetUserIdInContext(ctx context.Context, userId int) context.Context {
	return context.WithValue(ctx, ContextKeyUserId, userId)
}

func GetUsernameFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ContextKeyUsername).(string)
	return v, ok
}

func SetUsernameInContext(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, ContextKeyUsername, username)
}
