package security

import (
	"hangul_edu_backend/internal/config"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func limitedRouter(cfg config.RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimiter(&cfg))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func ping(router *gin.Engine, remoteAddr string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiterBlocksPastBurst(t *testing.T) {
	// Refill is ~36s per token here, so only the burst matters within the
	// test's lifetime.
	router := limitedRouter(config.RateLimitConfig{MaxRequests: 100, WindowMinutes: 60, Burst: 2})

	for i := 0; i < 2; i++ {
		if code := ping(router, "203.0.113.7:4321"); code != http.StatusOK {
			t.Fatalf("request %d status = %d, want %d", i+1, code, http.StatusOK)
		}
	}
	if code := ping(router, "203.0.113.7:4321"); code != http.StatusTooManyRequests {
		t.Errorf("request past burst status = %d, want %d", code, http.StatusTooManyRequests)
	}
}

func TestRateLimiterTracksClientsSeparately(t *testing.T) {
	router := limitedRouter(config.RateLimitConfig{MaxRequests: 100, WindowMinutes: 60, Burst: 1})

	if code := ping(router, "203.0.113.7:4321"); code != http.StatusOK {
		t.Fatalf("first client status = %d, want %d", code, http.StatusOK)
	}
	if code := ping(router, "203.0.113.7:4321"); code != http.StatusTooManyRequests {
		t.Fatalf("first client past burst status = %d, want %d", code, http.StatusTooManyRequests)
	}
	if code := ping(router, "198.51.100.9:4321"); code != http.StatusOK {
		t.Errorf("second client status = %d, want %d", code, http.StatusOK)
	}
}

func TestRateLimiterBurstDefaultsToCeiling(t *testing.T) {
	router := limitedRouter(config.RateLimitConfig{MaxRequests: 3, WindowMinutes: 60})

	for i := 0; i < 3; i++ {
		if code := ping(router, "203.0.113.7:4321"); code != http.StatusOK {
			t.Fatalf("request %d status = %d, want %d", i+1, code, http.StatusOK)
		}
	}
	if code := ping(router, "203.0.113.7:4321"); code != http.StatusTooManyRequests {
		t.Errorf("request past ceiling status = %d, want %d", code, http.StatusTooManyRequests)
	}
}
