package main

import (
	"context"
	"net/http"
	"time"

	"school-site-backend/internal/shared/middleware"
	"school-site-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires all routes. Mutating routes are guarded by the
// admin JWT middleware only when a secret is configured; otherwise the
// surface stays open.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	adminGuard := optionalAdminGuard(c)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		api.POST("/auth/login", c.AuthHandler.Login)

		setupContentRoutes(api, c, adminGuard)
		setupHeroRoutes(api, c, adminGuard)
		setupPrincipalRoutes(api, c, adminGuard)

		api.GET("/instagram", c.InstagramHandler.Feed)
	}

	return router
}

// optionalAdminGuard returns the JWT middleware, or a no-op when admin
// auth is disabled.
func optionalAdminGuard(c *container.Container) gin.HandlerFunc {
	if c.JWTManager == nil {
		return func(ctx *gin.Context) { ctx.Next() }
	}
	return middleware.AdminAuth(c.JWTManager)
}

func setupContentRoutes(api *gin.RouterGroup, c *container.Container, adminGuard gin.HandlerFunc) {
	content := api.Group("/content")
	{
		content.GET("/hero-banners", c.ContentHandler.HeroBanners)
		content.GET("/about", c.ContentHandler.About)
		content.GET("/programs", c.ContentHandler.AcademicPrograms)
		content.GET("/activities", c.ContentHandler.Activities)
		content.GET("/gallery", c.ContentHandler.GalleryImages)
		content.GET("/news", c.ContentHandler.NewsArticles)
		content.GET("/events", c.ContentHandler.Events)
		content.GET("/upcoming-events", c.ContentHandler.UpcomingEvents)
		content.GET("/testimonials", c.ContentHandler.Testimonials)
		content.GET("/footer", c.ContentHandler.FooterInfo)
		content.GET("/header", c.ContentHandler.HeaderInfo)
		content.GET("/search", c.ContentHandler.Search)
		content.GET("/media-url", c.ContentHandler.MediaURL)
		content.POST("/revalidate", adminGuard, c.ContentHandler.Revalidate)
	}

	api.POST("/contact", c.ContentHandler.SubmitContact)
}

func setupHeroRoutes(api *gin.RouterGroup, c *container.Container, adminGuard gin.HandlerFunc) {
	hero := api.Group("/hero-images")
	{
		hero.GET("", c.HeroHandler.List)
		hero.GET("/:id", c.HeroHandler.Get)
		hero.POST("", adminGuard, c.HeroHandler.Create)
		hero.PUT("/:id", adminGuard, c.HeroHandler.Update)
		hero.DELETE("/:id", adminGuard, c.HeroHandler.Delete)
	}
}

func setupPrincipalRoutes(api *gin.RouterGroup, c *container.Container, adminGuard gin.HandlerFunc) {
	principal := api.Group("/principal-message")
	{
		principal.GET("", c.PrincipalHandler.Current)
		principal.GET("/all", c.PrincipalHandler.List)
		principal.POST("", adminGuard, c.PrincipalHandler.Create)
		principal.PUT("/:id", adminGuard, c.PrincipalHandler.Update)
		principal.DELETE("/:id", adminGuard, c.PrincipalHandler.Delete)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		cacheStatus := "ok"
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.Cache.Ping(pingCtx); err != nil {
			cacheStatus = "unavailable"
		}

		ctx.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"version":     c.Config.App.Version,
			"environment": c.Config.App.Environment,
			"cache":       cacheStatus,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}
