package api

import (
	"net/http"
	"strings"
)

// withCORS allows the configured browser origin, with credentials, on the
// REST and AI routes.
func withCORS(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if origin == "" || req.Header.Get("Origin") != origin || !corsPath(req.URL.Path) {
			next.ServeHTTP(w, req)
			return
		}

		header := w.Header()
		header.Set("Access-Control-Allow-Origin", origin)
		header.Set("Access-Control-Allow-Credentials", "true")
		header.Add("Vary", "Origin")

		if req.Method == http.MethodOptions && req.Header.Get("Access-Control-Request-Method") != "" {
			header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, req)
	})
}

func corsPath(path string) bool {
	return strings.HasPrefix(path, "/api/ai") || strings.HasPrefix(path, "/v1")
}
