package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/pathfinderhq/pathfinder/internal/middleware"
	"github.com/pathfinderhq/pathfinder/internal/security"
	"github.com/pathfinderhq/pathfinder/internal/ws"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log         *logrus.Logger
	DB          DBProbe
	Hub         *ws.Hub
	Nodes       NodeService
	Edges       EdgeService
	Graph       GraphService
	Auth        AuthService
	LoginGuard  LoginGuard // defaults to a security.BruteForceGuard
	CORSOrigins []string
	Version     string
	HSTS        bool
}

// Router-level limits.
const (
	maxBodySize = 1 << 20 // 1 MB
	rateLimit   = 50      // requests per second per IP
	rateBurst   = 100     // token bucket burst size
)

func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(middleware.RequestLogger(deps.Log))
	r.Use(middleware.Recovery(deps.Log))
	r.Use(middleware.SecurityHeaders(deps.HSTS))
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		ExposeHeaders:    []string{middleware.RequestIDHeader, "Retry-After"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst).Handler())
	r.Use(middleware.Metrics())
}

func registerRoutes(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	log := deps.Log

	guard := deps.LoginGuard
	if guard == nil {
		guard = security.NewBruteForceGuard(ctx, log)
	}

	var clients ClientCounter
	if deps.Hub != nil {
		clients = deps.Hub
	}

	health := NewHealthHandler(deps.DB, clients, log, deps.Version)
	auth := NewAuthHandler(deps.Auth, guard, log)
	nodes := NewNodeHandler(deps.Nodes, log)
	edges := NewEdgeHandler(deps.Edges, log)
	graph := NewGraphHandler(deps.Graph, log)

	requireAuth := middleware.AuthMiddleware(deps.Auth, log)

	r.GET("/health", health.Liveness)
	r.GET("/ready", health.Readiness)

	a := r.Group("/auth")
	a.POST("/register", auth.Register)
	a.POST("/login", auth.Login)
	a.GET("/me", requireAuth, auth.Me)

	g := r.Group("/graph", requireAuth)

	g.GET("/nodes", nodes.List)
	g.POST("/nodes", nodes.Create)
	g.GET("/nodes/:id", nodes.Get)
	g.DELETE("/nodes/:id", nodes.Delete)

	g.GET("/edges", edges.List)
	g.POST("/edges", edges.Create)
	g.GET("/edges/:id", edges.Get)
	g.DELETE("/edges/:id", edges.Delete)

	g.GET("/bfs", graph.BFS)
	g.GET("/shortest-path", graph.ShortestPath)
	g.GET("/stats", graph.Stats)

	if deps.Hub != nil {
		r.GET("/ws", wsHandler(ctx, log, deps.Hub, deps.Auth, deps.CORSOrigins))
	}
}

// NewRouter creates the gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(ctx, r, deps)

	return r
}

// NewMetricsRouter serves /metrics for the separate metrics listener.
func NewMetricsRouter() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
