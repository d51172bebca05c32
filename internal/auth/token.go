package auth

import (
	"net/http"
	"strings"
)

// ExtractAccessToken prefers the access_token cookie and falls back to a
// bearer Authorization header.
func ExtractAccessToken(r *http.Request) string {
	if c, err := r.Cookie("access_token"); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
