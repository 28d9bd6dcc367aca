package handlers

import (
	ginsessions "github.com/gin-contrib/sessions"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/config"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/document/handler"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/document/service"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/drafting"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/export"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/sessions"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/users"
	"github.com/pakdocs/pakdocs/backend/go-services/pkg/middleware"
)

// Deps are the services the HTTP API is built from.
type Deps struct {
	Session      config.SessionConfig
	SessionStore ginsessions.Store
	CORSOrigins  []string

	Users     *users.Service
	Documents service.Service
	Drafts    *drafting.Service
	Renderer  *export.Renderer
	Archiver  export.Archiver

	// RateLimit guards generate, register and login. Nil disables it.
	RateLimit gin.HandlerFunc
}

// NewRouter assembles the engine: global middleware, swagger and the /api routes.
// Operational endpoints (/health, /ready, /metrics) are added by the caller.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(), middleware.HTTPMetrics())
	r.Use(middleware.CORS(d.CORSOrigins))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	RegisterSwagger(r)

	var limit []gin.HandlerFunc
	if d.RateLimit != nil {
		limit = append(limit, d.RateLimit)
	}

	api := r.Group("/api", sessions.Middleware(d.Session, d.SessionStore))
	NewAuthHandler(d.Users).Register(api, limit...)

	private := api.Group("", middleware.RequireSession())
	NewGenerateHandler(d.Drafts).Register(private, limit...)
	handler.New(d.Documents, d.Renderer, d.Archiver).RegisterRoutes(private)
	return r
}
