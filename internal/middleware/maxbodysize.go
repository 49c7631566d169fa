package middleware

import (
	"net/http"
)

// tooLargeBody matches the API's error envelope.
const tooLargeBody = `{"error":{"code":"request_too_large","message":"request body is too large"}}` + "\n"

// NewMaxBodySizeHandler returns a middleware that caps request bodies at limit
// bytes. A request whose Content-Length already exceeds limit is rejected with
// 413 before the next handler runs; otherwise the body is wrapped in
// http.MaxBytesReader so a streaming body fails on read once it passes limit.
// A limit <= 0 disables the check.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_, _ = w.Write([]byte(tooLargeBody))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
