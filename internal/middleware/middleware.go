package middleware

import "net/http"

// SetJSONContentType defaults responses to JSON; error paths overwrite it
// with problem+json.
func SetJSONContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
