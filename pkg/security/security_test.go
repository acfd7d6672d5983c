package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(limiter *IPRateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return router
}

func ping(router *gin.Engine) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiterBlocksOverBudget(t *testing.T) {
	limiter := NewIPRateLimiter(2, time.Minute)
	router := newLimitedRouter(limiter)

	assert.Equal(t, http.StatusOK, ping(router))
	assert.Equal(t, http.StatusOK, ping(router))
	assert.Equal(t, http.StatusTooManyRequests, ping(router))
}

func TestRateLimiterSetBudgetTakesEffect(t *testing.T) {
	limiter := NewIPRateLimiter(1, time.Minute)
	router := newLimitedRouter(limiter)

	assert.Equal(t, http.StatusOK, ping(router))
	assert.Equal(t, http.StatusTooManyRequests, ping(router))

	limiter.SetBudget(100, time.Minute)

	assert.Equal(t, http.StatusOK, ping(router))
}

func TestRateLimiterUnchangedBudgetKeepsState(t *testing.T) {
	limiter := NewIPRateLimiter(1, time.Minute)
	router := newLimitedRouter(limiter)

	assert.Equal(t, http.StatusOK, ping(router))

	limiter.SetBudget(1, time.Minute)

	assert.Equal(t, http.StatusTooManyRequests, ping(router))
}
