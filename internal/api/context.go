package api

import "context"

type ctxKey string

const ctxKeyCaller ctxKey = "caller"

func WithCaller(ctx context.Context, c *VerifiedCaller) context.Context {
	return context.WithValue(ctx, ctxKeyCaller, c)
}

func CallerFromContext(ctx context.Context) *VerifiedCaller {
	v := ctx.Value(ctxKeyCaller)
	if v == nil {
		return nil
	}
	c, _ := v.(*VerifiedCaller)
	return c
}
