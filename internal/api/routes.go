package api

import (
	"github.com/gin-gonic/gin"
	"github.com/oracledns/oracle/internal/api/handlers"
	"github.com/oracledns/oracle/internal/api/middleware"
	"github.com/oracledns/oracle/internal/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/oracledns/oracle/internal/api/docs" // swagger docs
)

// RegisterRoutes wires every API endpoint onto the router.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler, cfg *config.Config) {
	// Swagger UI at /swagger/*
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	// Optional API key protection.
	if cfg != nil && cfg.API.APIKey != "" {
		api.Use(middleware.RequireAPIKey(cfg.API.APIKey))
	}

	api.GET("/health", h.Health)
	api.GET("/stats", h.Stats)
	api.GET("/config", h.GetConfig)
	api.PUT("/config/interval", h.UpdateInterval)

	api.GET("/clients", h.ListClients)
	api.GET("/clients/:clientID/history", h.ClientHistory)
	api.POST("/clients/:clientID/block", h.BlockDomain)

	api.GET("/controlled", h.ListControlled)
	api.POST("/controlled/:clientID", h.MarkControlled)
	api.DELETE("/controlled/:clientID", h.UnmarkControlled)

	api.POST("/refresh", h.Refresh)
	api.GET("/status", h.TargetStatus)
}
