package httpapi

import (
	"net/http"
	"os"
)

// RapidAPIMiddleware verifies that requests carry the configured
// X-RapidAPI-Proxy-Secret header. If RAPIDAPI_PROXY_SECRET is unset,
// validation is skipped — useful for local development.
func RapidAPIMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		expected := os.Getenv("RAPIDAPI_PROXY_SECRET")
		if expected == "" {
			next(w, r)
			return
		}

		if r.Header.Get("X-RapidAPI-Proxy-Secret") != expected {
			http.Error(w, "Unauthorized: invalid or missing RapidAPI proxy secret", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-RapidAPI-Proxy-Secret")
}
