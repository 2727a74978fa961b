package access

import "context"

type guestKeyCtx struct{}

// WithGuestKey кладёт в контекст ключ гостевого черновика
func WithGuestKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, guestKeyCtx{}, key)
}

// GuestKey достаёт ключ гостевого черновика; пустая строка, если его нет
func GuestKey(ctx context.Context) string {
	key, _ := ctx.Value(guestKeyCtx{}).(string)
	return key
}
