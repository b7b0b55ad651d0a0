package router

import (
	"context"
	"go/parser"
	"go/token"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jpashop/backend/internal/interfaces/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "/api", r.prefix)
	assert.Empty(t, r.Versions())
}

func TestRouterVersions(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	r.Register("v2", NewDomainGroup("/b"))
	r.Register("v1", NewDomainGroup("/a"), NewDomainGroup("/c"))

	assert.Equal(t, []string{"v1", "v2"}, r.Versions())
	assert.Len(t, r.registrars["v1"], 2)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	r.Register("v1", NewDomainGroup("/test").GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "v1")
	}))
	r.Register("v2", NewDomainGroup("/test").GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "v2")
	}))
	r.Setup()

	for _, version := range []string{"v1", "v2"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/"+version+"/test/ping", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, version, w.Body.String())
	}
}

func TestDomainGroup(t *testing.T) {
	t.Run("registers GET and POST on the group root", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("/members").
			GET("", func(c *gin.Context) { c.String(http.StatusOK, "list") }).
			POST("", func(c *gin.Context) { c.String(http.StatusOK, "create") })
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/members", nil))
		assert.Equal(t, "list", w.Body.String())

		w = httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/members", nil))
		assert.Equal(t, "create", w.Body.String())
	})

	t.Run("empty prefix hangs routes off the version group", func(t *testing.T) {
		engine := gin.New()
		NewDomainGroup("").
			GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") }).
			RegisterRoutes(engine.Group("/api/v1"))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "pong", w.Body.String())
	})

	t.Run("path parameters reach the handler", func(t *testing.T) {
		engine := gin.New()
		NewDomainGroup("/orders").
			POST("/:id/cancel", func(c *gin.Context) { c.String(http.StatusOK, c.Param("id")) }).
			RegisterRoutes(engine.Group("/api/v1"))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/orders/7/cancel", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "7", w.Body.String())
	})
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func TestRegisterAPI(t *testing.T) {
	engine := gin.New()
	RegisterAPI(engine, Handlers{
		Member: handler.NewMemberHandler(nil),
		Order:  handler.NewOrderHandler(nil),
		Item:   handler.NewItemHandler(nil),
		Health: handler.NewHealthHandler(okPinger{}, "test"),
	})

	registered := make(map[string]bool)
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"GET /health",
		"GET /api/v1/ping",
		"POST /api/v1/members",
		"GET /api/v1/members",
		"POST /api/v2/members",
		"GET /api/v2/members",
		"GET /api/v2/members/:id",
		"POST /api/v2/members/:id",
		"GET /api/v1/simple-orders",
		"GET /api/v2/simple-orders",
		"GET /api/v3/simple-orders",
		"GET /api/v4/simple-orders",
		"GET /api/v1/orders",
		"POST /api/v1/orders",
		"POST /api/v1/orders/:id/cancel",
		"POST /api/v1/items",
		"GET /api/v1/items",
		"GET /api/v1/items/:id",
		"POST /api/v1/items/:id",
	}
	for _, route := range expected {
		assert.True(t, registered[route], "missing route %s", route)
	}
	assert.Len(t, registered, len(expected))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

// documentedRoutes collects the @Router annotations of the handler package as
// "METHOD /path" with gin-style path parameters.
func documentedRoutes(t *testing.T) map[string]string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join("..", "handler", "*.go"))
	require.NoError(t, err)

	routes := make(map[string]string)
	fset := token.NewFileSet()
	for _, file := range files {
		if strings.HasSuffix(file, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, file, nil, parser.ParseComments)
		require.NoError(t, err)
		for _, group := range f.Comments {
			for _, c := range group.List {
				text := strings.TrimSpace(strings.TrimPrefix(c.Text, "//"))
				if !strings.HasPrefix(text, "@Router") {
					continue
				}
				fields := strings.Fields(text)
				require.Len(t, fields, 3, "malformed annotation in %s: %s", file, text)
				path := strings.NewReplacer("{", ":", "}", "").Replace(fields[1])
				method := strings.ToUpper(strings.Trim(fields[2], "[]"))
				routes[method+" "+path] = file
			}
		}
	}
	return routes
}

func TestRegisterAPI_RoutesAreDocumented(t *testing.T) {
	engine := gin.New()
	RegisterAPI(engine, Handlers{
		Member: handler.NewMemberHandler(nil),
		Order:  handler.NewOrderHandler(nil),
		Item:   handler.NewItemHandler(nil),
		Health: handler.NewHealthHandler(okPinger{}, "test"),
	})
	documented := documentedRoutes(t)

	served := make(map[string]bool)
	for _, route := range engine.Routes() {
		key := route.Method + " " + route.Path
		served[key] = true
		assert.Contains(t, documented, key, "route has no @Router annotation")
	}
	for key, file := range documented {
		assert.True(t, served[key], "%s documents %s which is not served", file, key)
	}
}
