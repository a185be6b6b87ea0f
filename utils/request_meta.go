package utils

import "context"

type requestMetaKey struct{}

// RequestMeta carries client details recorded in the admin audit log.
type RequestMeta struct {
	RequestID string
	IP        string
	UserAgent string
}

func WithRequestMeta(ctx context.Context, m RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, m)
}

func RequestMetaFrom(ctx context.Context) RequestMeta {
	m, _ := ctx.Value(requestMetaKey{}).(RequestMeta)
	return m
}
