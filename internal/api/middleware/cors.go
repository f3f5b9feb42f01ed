package middleware

import (
	"net/http"
	"os"
	"slices"
	"strings"
)

// CORSMiddleware answers browser cross-origin checks for the JSON API.
// ALLOWED_ORIGINS is a comma-separated allowlist; when unset every
// origin is accepted, which is only appropriate in development. The API
// speaks plain JSON with bearer auth, so the advertised methods and
// headers are fixed.
func CORSMiddleware(next http.Handler) http.Handler {
	var allowed []string
	if env := os.Getenv("ALLOWED_ORIGINS"); env != "" {
		allowed = strings.Split(env, ",")
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			switch {
			case allowed == nil:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case slices.Contains(allowed, origin):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
