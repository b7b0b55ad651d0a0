package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jpashop/backend/internal/infrastructure/auth"
	"github.com/jpashop/backend/internal/infrastructure/config"
	"github.com/jpashop/backend/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("keeps the client value", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := serve(router, req)

		assert.Equal(t, "abc-123", w.Body.String())
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	})

	t.Run("generates one when missing or oversized", func(t *testing.T) {
		w := serve(router, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Len(t, w.Body.String(), 36)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", 200))
		w = serve(router, req)
		assert.Len(t, w.Body.String(), 36)
	})
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS(DefaultCORSConfig([]string{"http://shop.local"})))
	router.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", "http://shop.local")
		w := serve(router, req)

		assert.Equal(t, "http://shop.local", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("other origin gets no headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", "http://evil.local")
		w := serve(router, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight answers 204", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/test", nil)
		req.Header.Set("Origin", "http://shop.local")
		w := serve(router, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	})
}

func TestSecure(t *testing.T) {
	router := gin.New()
	router.Use(Secure(true))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(router, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, w.Header().Get("Strict-Transport-Security"), "max-age=")
}

type bindTarget struct {
	Name   string `json:"name" binding:"required,max=5"`
	Status string `json:"status" binding:"omitempty,oneof=ORDER CANCEL"`
}

func TestValidation(t *testing.T) {
	SetupValidator()

	router := gin.New()
	router.Use(RequestID())
	router.POST("/test", func(c *gin.Context) {
		var body bindTarget
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return serve(router, req)
	}

	t.Run("names fields by json tag", func(t *testing.T) {
		w := post(`{"name":"","status":"LOST"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"ERR_VALIDATION"`)
		assert.Contains(t, w.Body.String(), `"field":"name"`)
		assert.Contains(t, w.Body.String(), `"field":"status"`)
		assert.Contains(t, w.Body.String(), "Must be one of: ORDER CANCEL")
	})

	t.Run("length message for strings", func(t *testing.T) {
		w := post(`{"name":"toolong"}`)
		assert.Contains(t, w.Body.String(), "Must be at most 5 characters")
	})

	t.Run("malformed json", func(t *testing.T) {
		w := post(`{"name":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"field":"body"`)
	})
}

func TestAuditor(t *testing.T) {
	jwtService := auth.NewJWTService(config.JWTConfig{Secret: "0123456789abcdef0123456789abcdef", Issuer: "jpashop"})

	router := gin.New()
	router.Use(RequestID(), Auditor(jwtService))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetAuditor(c)+"|"+logger.GetAuditor(c.Request.Context()))
	})

	t.Run("token subject wins", func(t *testing.T) {
		token, err := jwtService.GenerateToken("admin", "", time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set(UserIDHeader, "header-user")
		w := serve(router, req)

		assert.Equal(t, "admin|admin", w.Body.String())
	})

	t.Run("header fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(UserIDHeader, "header-user")
		w := serve(router, req)

		assert.Equal(t, "header-user|header-user", w.Body.String())
	})

	t.Run("anonymous fallback", func(t *testing.T) {
		w := serve(router, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, "anonymous|anonymous", w.Body.String())
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w := serve(router, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_UNAUTHORIZED")
	})

	t.Run("tokens are ignored without a secret", func(t *testing.T) {
		r := gin.New()
		r.Use(Auditor(auth.NewJWTService(config.JWTConfig{})))
		r.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, GetAuditor(c)) })

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer whatever")
		w := serve(r, req)
		assert.Equal(t, "anonymous", w.Body.String())
	})
}

func TestRateLimit(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute, 2)
	defer limiter.Stop()

	router := gin.New()
	router.Use(RateLimit(limiter))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		codes = append(codes, serve(router, req).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := serve(router, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
}

func TestHTTPMetrics(t *testing.T) {
	metrics := NewHTTPMetrics("jpashop")

	router := gin.New()
	router.Use(metrics.Middleware())
	router.GET("/api/v1/members", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", metrics.Handler())

	serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/members", nil))
	serve(router, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	w := serve(router, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `jpashop_http_requests_total{method="GET",route="/api/v1/members",status="200"} 1`)
	assert.Contains(t, body, `route="unmatched",status="404"`)
	assert.Contains(t, body, "jpashop_http_request_duration_seconds_bucket")
	assert.Contains(t, body, "go_goroutines")
}

func TestTracing(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	router := gin.New()
	router.Use(RequestID(), Auditor(nil), Tracing("jpashop", provider), SpanAttributes())
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, "trace-req")
	serve(router, req)

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	attrs := map[attribute.Key]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value.Emit()
	}
	assert.Equal(t, "trace-req", attrs["request_id"])
	assert.Equal(t, "anonymous", attrs["auditor"])
}

func TestProfiling(t *testing.T) {
	router := gin.New()
	router.Use(Profiling("/health"))
	router.GET("/api/v1/orders/:id", func(c *gin.Context) {
		route, _ := pprof.Label(c.Request.Context(), "route")
		c.String(http.StatusOK, route)
	})
	router.GET("/health", func(c *gin.Context) {
		_, labelled := pprof.Label(c.Request.Context(), "route")
		c.String(http.StatusOK, strconv.FormatBool(labelled))
	})

	w := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/orders/7", nil))
	assert.Equal(t, "/api/v1/orders/:id", w.Body.String())

	w = serve(router, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, "false", w.Body.String())
}
