package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestResolveRateTier(t *testing.T) {
	tier := func(path string) string {
		req := httptest.NewRequest("GET", path, nil)
		_, _, name := resolveRateTier(req)
		return name
	}

	assert.Equal(t, "strict", tier("/auth/login"))
	assert.Equal(t, "strict", tier("/auth/register"))
	assert.Equal(t, "polling", tier("/notifications"))
	assert.Equal(t, "polling", tier("/notifications/unread-count"))
	assert.Equal(t, "general", tier("/orders"))
	assert.Equal(t, "general", tier("/products"))
}

func TestRateLimitMiddleware_BlocksAfterBurst(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RateLimitMiddleware(next)

	var lastCode int
	for i := 0; i < burstStrict+1; i++ {
		req := httptest.NewRequest("POST", "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		lastCode = w.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}

func TestGetVisitor_ReusesLimiter(t *testing.T) {
	a := getVisitor("test-key", rate.Limit(1), 1)
	b := getVisitor("test-key", rate.Limit(1), 1)
	assert.Same(t, a, b)
}
