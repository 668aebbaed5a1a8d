package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"booking_system/internal/metrics"
	"booking_system/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestJWTAuth(t *testing.T) {
	r := gin.New()
	r.GET("/me", JWTAuth("secret"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString("userID"), "name": c.GetString("name")})
	})

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
		})
	}

	token, err := utils.GenerateJWT("user-1", "a@example.com", "Alice", "secret", time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userID":"user-1","name":"Alice"}`, w.Body.String())
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Something went wrong!"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "kaboom")
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/api/items/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	counter := metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/api/items/:id", "204")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/items/"+id, nil))
	}
	assert.Equal(t, before+2, testutil.ToFloat64(counter))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues(http.MethodGet, "unmatched", "404")))
}

func TestRequestLoggerKeepsStatus(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/teapot", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/teapot", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}
