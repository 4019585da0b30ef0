package backend

import "context"

type requestIDKey struct{}

// WithRequestID attaches the inbound request id so that backend calls made
// on behalf of that request can be correlated in the backend's logs.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the request id stored by WithRequestID, if any.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
