// Package tenant resolves the tenant context for every inbound call.
// Authentication is out of scope; the resolver only turns the opaque
// tenant header into a typed id that handlers pass explicitly into the
// core. The core never reads the tenant from ambient state.
package tenant

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
)

// Header carries the opaque tenant identifier on every request.
const Header = "X-Tenant-ID"

// ErrMissing indicates the request carried no usable tenant id.
var ErrMissing = errors.New("tenant: missing or malformed tenant id")

type ctxKey struct{}

// WithID stores the tenant id in the context.
func WithID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the tenant id previously resolved for this request.
func FromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxKey{}).(uuid.UUID)
	return id, ok
}

// Resolver extracts the tenant id from the request header and rejects
// requests without one. It runs before any handler that reaches the core.
func Resolver(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(Header)
		id, err := uuid.Parse(raw)
		if raw == "" || err != nil {
			http.Error(w, ErrMissing.Error(), http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
	})
}
