package middleware

import (
	"context"
	"crypto/rand"
	"net/http"

	"github.com/oklog/ulid/v2"
)

type requestIDKey struct{}

// RequestIDHeader is the header carrying the request ID in and out.
const RequestIDHeader = "X-Request-Id"

// RequestID attaches a ULID request ID to the context and response.
// An incoming X-Request-Id is trusted and propagated unchanged.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = ulid.MustNew(ulid.Now(), rand.Reader).String()
		}

		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext returns the request ID, or "" when none was set.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
