// Package middleware holds the HTTP middleware wrapped around the reservation
// API router.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler returns a middleware that applies CORS headers for
// allowedOrigins. Each origin is scheme + host with no trailing slash.
// The API only reads with GET and mutates with POST, so those are the only
// methods allowed cross-origin. X-Request-Id is exposed so browser clients can
// quote it when reporting a failed booking.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	})
	return c.Handler
}
