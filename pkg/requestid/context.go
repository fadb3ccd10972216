package requestid

import "context"

type contextKey struct{}

func WithContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKey{}, requestID)
}

func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	requestID, _ := ctx.Value(contextKey{}).(string)
	return requestID
}

// Ensure returns ctx carrying a valid request id, generating one if needed.
func Ensure(ctx context.Context) (context.Context, string) {
	if id := FromContext(ctx); isValidRequestID(id) {
		return ctx, id
	}
	id := New()
	return WithContext(ctx, id), id
}
