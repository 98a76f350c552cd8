package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the HTTP header the request ID travels in, both directions.
const Header = "X-Request-ID"

type ctxKey struct{}

// New returns a fresh request ID (UUID v4).
func New() string {
	return uuid.NewString()
}

// NewContext returns a copy of ctx carrying id.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext reports the request ID carried by ctx, if any.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok
}
