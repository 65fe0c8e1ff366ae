package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mangum87/Charis/internal/server/handlers"
)

// Handlers bundles the HTTP adapters the router mounts.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Items         *handlers.ItemsHandler
	Catalog       *handlers.CatalogHandler
	Kits          *handlers.KitsHandler
	Distributions *handlers.DistributionsHandler
	Users         *handlers.UsersHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, jwtSecret string, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.POST("/login", h.Auth.Login)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/", handlers.RequireAuth(jwtSecret, logger))
	{
		api.POST("/items", h.Items.Create)
		api.GET("/items/:id", h.Items.Get)
		api.PUT("/items/:id", h.Items.Update)

		api.POST("/categories", h.Catalog.CreateCategory)
		api.GET("/categories", h.Catalog.ListCategories)
		api.POST("/locations", h.Catalog.CreateLocation)
		api.GET("/locations", h.Catalog.ListLocations)

		api.GET("/kits", h.Kits.List)
		api.GET("/kits/:id/items", h.Kits.Items)
		api.POST("/kits", h.Kits.Save)

		api.POST("/distributions", h.Distributions.Record)
		api.GET("/distributions", h.Distributions.ListByMonth)

		api.PUT("/users/:username/password", h.Users.ChangePassword)

		admin := api.Group("/", handlers.RequireAdmin())
		{
			admin.POST("/users", h.Users.Create)
			admin.PUT("/users/:username", h.Users.Update)
		}
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
