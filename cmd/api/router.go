package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"atelier-backend/internal/shared/middleware"
	"atelier-backend/internal/shared/response"
	"atelier-backend/pkg/container"
)

// SetupRouter wires middleware and routes. Read endpoints are public; entry
// mutations and draft listing need an author session.
func SetupRouter(app *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Authenticate(app.JWTManager))

	router.GET("/health", healthCheck(app))

	api := router.Group("/api")
	{
		api.POST("/auth/login", app.AuthHandler.Login)

		entries := api.Group("/entries")
		{
			entries.GET("", app.EntryHandler.List)
			entries.GET("/:id", app.EntryHandler.Get)
			entries.POST("/:id/like", app.EntryHandler.Like)
			entries.GET("/:id/comments", app.CommentHandler.List)
			entries.POST("/:id/comments", app.CommentHandler.Add)

			authored := entries.Group("")
			authored.Use(middleware.RequireAuth())
			{
				authored.POST("", app.EntryHandler.Create)
				authored.PUT("/:id", app.EntryHandler.Update)
				authored.DELETE("/:id", app.EntryHandler.Delete)
			}
		}

		api.POST("/comments/:id/like", app.CommentHandler.Like)

		assistantGroup := api.Group("/assistant")
		assistantGroup.Use(middleware.RequireAuth())
		{
			assistantGroup.POST("/summarize", app.AssistantHandler.Summarize)
			assistantGroup.POST("/inspire", app.AssistantHandler.Inspire)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "route not found")
	})

	return router
}

func healthCheck(app *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{
			"status":  "ok",
			"version": app.Config.App.Version,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if app.DB != nil {
			if err := app.DB.HealthCheck(ctx); err != nil {
				status["status"] = "degraded"
				status["database"] = "down"
				c.JSON(http.StatusServiceUnavailable, status)
				return
			}
			status["database"] = "up"
		} else {
			status["database"] = "memory"
		}

		if app.Cache != nil {
			if err := app.Cache.Ping(ctx); err != nil {
				status["cache"] = "down"
			} else {
				status["cache"] = "up"
			}
		}

		c.JSON(http.StatusOK, status)
	}
}
