package middleware

import (
	"net/http"

	"github.com/kbukum/scribe/util"
)

// DefaultMaxBodySize fits a minute of 16 kHz float samples as JSON.
const DefaultMaxBodySize = 32 << 20

// BodySizeLimit caps the request body at maxSize ("32MB", "512KB", ...).
func BodySizeLimit(maxSize string) Middleware {
	limit := util.ParseSize(maxSize, DefaultMaxBodySize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
