package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisRateLimitMiddleware_Budget(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})

	g := gin.New()
	// budget = rps*window + burst = 0*1s + 3
	g.GET("/", RedisRateLimitMiddleware(client, 0, 3, time.Second), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.2.0.1:1234"
		rw := httptest.NewRecorder()
		g.ServeHTTP(rw, req)
		codes = append(codes, rw.Code)
	}
	require.Equal(t, http.StatusOK, codes[0])
	require.Equal(t, http.StatusOK, codes[2])
	require.Equal(t, http.StatusTooManyRequests, codes[3])
	require.Equal(t, http.StatusTooManyRequests, codes[4])

	// window expiry resets the counter
	m.FastForward(2 * time.Second)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.2.0.1:1234"
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	require.Equal(t, http.StatusOK, rw.Code)
}

func TestRedisRateLimitMiddleware_FailsOpen(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	m.Close() // limiter backend gone

	g := gin.New()
	g.GET("/", RedisRateLimitMiddleware(client, 1, 1, time.Second), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.2.0.2:1234"
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	require.Equal(t, http.StatusOK, rw.Code)
}
