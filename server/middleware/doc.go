// Package middleware holds the net/http middleware the bridge server puts
// in front of its Gin routes: panic recovery, request IDs, body size limits
// and request logging.
package middleware
