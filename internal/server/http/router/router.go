package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/interviewprep/internal/config"
	"github.com/polkiloo/interviewprep/internal/server/http/handlers"
	"github.com/polkiloo/interviewprep/internal/server/http/middleware"
)

const (
	// maxMultipartMemory keeps a maximum size resume plus form fields in memory.
	maxMultipartMemory = 8 << 20
	// maxInflatedBody bounds gzip request bodies after decompression.
	maxInflatedBody = 12 << 20
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.PrepFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.MaxMultipartMemory = maxMultipartMemory

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest(maxInflatedBody))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	storefront := handlers.NewStorefrontHandler(facade, logger)
	intake := handlers.NewIntakeHandler(facade, logger)
	authHandler := handlers.NewAuthHandler(facade, logger)
	console := handlers.NewConsoleHandler(facade, logger)
	health := handlers.NewHealthHandler(facade, logger)

	engine.GET("/healthz", health.Check)

	api := engine.Group("/api")
	api.GET("/offerings", storefront.Offerings)
	api.POST("/checkout", storefront.Checkout)
	api.POST("/orders/lookup", storefront.LookupOrder)
	api.POST("/intake", intake.Submit)

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	admin := api.Group("/admin")
	admin.POST("/login", authHandler.AdminLogin)
	admin.POST("/setup", authHandler.AdminSetup)

	adminAuth := admin.Group("")
	adminAuth.Use(middleware.AdminRequired(facade, cfg.SignInPath, logger))
	adminAuth.GET("/intakes", console.List)
	adminAuth.GET("/intakes/:id", console.Detail)
	adminAuth.PATCH("/intakes/:id", console.Edit)
	adminAuth.DELETE("/intakes/:id", console.Delete)

	return engine
}
