package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mandimart-be/internal/metrics"
	"mandimart-be/internal/user"
	"mandimart-be/internal/utils"
)

// Role gates fire before any handler runs, so a server with nil services
// is enough to exercise the routing table.
func newTestServer() *Server {
	return &Server{Metrics: metrics.NewRegistry()}
}

func bearerRequest(t *testing.T, method, target, role string) *http.Request {
	t.Helper()
	token, err := user.GenerateJWT(7, role, "u@example.com")
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestServer().Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestRouter_Metrics(t *testing.T) {
	srv := newTestServer()
	router := srv.Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"requests":1,"checkouts":0,"transitions":0,"claims":0}`, w.Body.String())
}

func TestRouter_RoleGates(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")
	router := newTestServer().Router()

	t.Run("Anonymous buyer route", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Buyer on agent route", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, bearerRequest(t, http.MethodGet, "/delivery/orders", utils.RoleBuyer))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Agent on seller route", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, bearerRequest(t, http.MethodGet, "/seller/analytics", utils.RoleAgent))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Unknown route", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/inventory", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRouter_CountsRequests(t *testing.T) {
	srv := newTestServer()
	router := srv.Router()

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	}

	assert.Equal(t, uint64(3), srv.Metrics.Requests.Load())
}
