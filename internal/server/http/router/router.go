package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/zaidkh/tijara/internal/server/http/handlers"
	"github.com/zaidkh/tijara/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	productHandler := handlers.NewProductHandler(facade)
	standardHandler := handlers.NewStandardOrderHandler(facade)
	customHandler := handlers.NewCustomOrderHandler(facade)

	api := engine.Group("/api")

	staff := api.Group("/staff")
	staff.POST("/register", authHandler.Register)
	staff.POST("/login", authHandler.Login)

	// Storefront: browsing the catalog and placing orders needs no login.
	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)
	api.POST("/orders", standardHandler.Create)
	api.POST("/custom-orders", customHandler.Create)

	back := api.Group("")
	back.Use(middleware.AuthRequired(facade))
	back.POST("/products", productHandler.Create)
	back.PATCH("/products/:id", productHandler.Update)
	back.POST("/products/:id/receive", productHandler.ReceiveStock)

	back.GET("/orders", standardHandler.List)
	back.GET("/orders/:id", standardHandler.Get)
	back.PATCH("/orders/:id/status", standardHandler.SetStatus)
	back.POST("/orders/bulk-status", standardHandler.BulkSetStatus)

	back.GET("/custom-orders", customHandler.List)
	back.GET("/custom-orders/:id", customHandler.Get)
	back.PATCH("/custom-orders/:id/status", customHandler.Advance)
	back.PUT("/custom-orders/:id/quote", customHandler.SetQuote)
	back.POST("/custom-orders/:id/quote/render", customHandler.RenderQuote)

	return engine
}
