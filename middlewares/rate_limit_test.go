package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLoginRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/auth/login/", LoginRateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	ip := "203.0.113.7:1234"

	// The burst lets 100 attempts through, then the next one is rejected.
	for i := 0; i < 100; i++ {
		req, _ := http.NewRequest(http.MethodPost, "/auth/login/", nil)
		req.RemoteAddr = ip
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
	}

	req, _ := http.NewRequest(http.MethodPost, "/auth/login/", nil)
	req.RemoteAddr = ip
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// A different IP still gets through.
	req, _ = http.NewRequest(http.MethodPost, "/auth/login/", nil)
	req.RemoteAddr = "198.51.100.9:1234"
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
