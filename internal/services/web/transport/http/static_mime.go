// Package http holds HTTP helpers shared by the web transport layer.
package http

import (
	"net/http"
	"strings"
)

// StaticCacheControl is sent with every embedded asset.
const StaticCacheControl = "public, max-age=3600"

// WithStaticMime sets explicit content types and cache headers for embedded
// assets.
func WithStaticMime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch path := strings.ToLower(r.URL.Path); {
		case strings.HasSuffix(path, ".css"):
			w.Header().Set("Content-Type", "text/css; charset=utf-8")
		case strings.HasSuffix(path, ".js"):
			w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		case strings.HasSuffix(path, ".png"):
			w.Header().Set("Content-Type", "image/png")
		}
		w.Header().Set("Cache-Control", StaticCacheControl)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(w, r)
	})
}
