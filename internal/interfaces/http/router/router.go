package router

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// apiPrefix is the path that version groups hang off
const apiPrefix = "/api"

// Router registers route groups under versioned prefixes such as /api/v1
type Router struct {
	engine     *gin.Engine
	prefix     string
	registrars map[string][]RouteRegistrar
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine) *Router {
	return &Router{
		engine:     engine,
		prefix:     apiPrefix,
		registrars: make(map[string][]RouteRegistrar),
	}
}

// Register adds registrars to an API version such as "v1"
func (r *Router) Register(version string, registrars ...RouteRegistrar) *Router {
	r.registrars[version] = append(r.registrars[version], registrars...)
	return r
}

// Versions returns the registered versions in order
func (r *Router) Versions() []string {
	versions := make([]string, 0, len(r.registrars))
	for v := range r.registrars {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	for _, version := range r.Versions() {
		api := r.engine.Group(r.prefix + "/" + version)
		for _, registrar := range r.registrars[version] {
			registrar.RegisterRoutes(api)
		}
	}
}

// DomainGroup collects the routes of one resource under a prefix
type DomainGroup struct {
	prefix string
	routes []routeDefinition
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a new resource route group
func NewDomainGroup(prefix string) *DomainGroup {
	return &DomainGroup{prefix: prefix}
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodGet, path, handlers)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPost, path, handlers)
}

func (dg *DomainGroup) handle(method, path string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{
		method:   method,
		path:     path,
		handlers: handlers,
	})
	return dg
}

// RegisterRoutes implements RouteRegistrar interface
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)
	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
}
