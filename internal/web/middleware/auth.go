package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/JonMunkholm/cda/internal/logging"
)

// APIKeyHeader carries the client's key.
const APIKeyHeader = "X-API-Key"

// APIKey returns middleware that requires one of keys in the X-API-Key
// header. With no keys configured every request passes.
// reject writes the response for a missing or wrong key.
func APIKey(keys []string, reject func(w http.ResponseWriter, r *http.Request, status int, code string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if len(keys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(APIKeyHeader)
			if key == "" {
				logging.FromContext(r.Context()).Warn("auth: missing API key", "path", r.URL.Path)
				reject(w, r, http.StatusUnauthorized, "AUTH001")
				return
			}
			if !validKey(key, keys) {
				logging.FromContext(r.Context()).Warn("auth: invalid API key", "path", r.URL.Path)
				reject(w, r, http.StatusForbidden, "AUTH002")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// validKey compares against every configured key in constant time.
func validKey(key string, keys []string) bool {
	valid := 0
	for _, k := range keys {
		valid |= subtle.ConstantTimeCompare([]byte(key), []byte(k))
	}
	return valid == 1
}
