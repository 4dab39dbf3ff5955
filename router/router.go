package router

import (
	"path/filepath"

	"github.com/devfolio/portfolio-backend/config"
	_ "github.com/devfolio/portfolio-backend/docs"
	"github.com/devfolio/portfolio-backend/handlers"
	"github.com/devfolio/portfolio-backend/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config         *config.Config
	ContactHandler *handlers.ContactHandler
	HealthHandler  *handlers.HealthHandler
	SPAHandler     *handlers.SPAHandler
	Logger         *zap.SugaredLogger
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()

	// Global Middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config))

	// Health and Metrics Routes
	r.GET("/health", deps.HealthHandler.DetailedHealth)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation
	if !deps.Config.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	{
		api.POST("/contact", deps.ContactHandler.SubmitContact)
		api.GET("/contacts", deps.ContactHandler.ListContacts)
	}

	// Built frontend. Hashed bundles live under assets/, everything else
	// goes through the SPA fallback.
	r.Static("/assets", filepath.Join(deps.SPAHandler.StaticDir(), "assets"))
	r.NoRoute(deps.SPAHandler.Fallback)

	if deps.Logger != nil {
		deps.Logger.Infow("Routes registered",
			"routes", len(r.Routes()),
			"static_dir", deps.SPAHandler.StaticDir())
	}

	return r
}
