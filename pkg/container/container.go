package container

import (
	"fmt"
	"time"

	"school-site-backend/internal/cms"
	"school-site-backend/internal/config"
	"school-site-backend/internal/domains/auth"
	"school-site-backend/internal/domains/content"
	contentHandler "school-site-backend/internal/domains/content/handler"
	"school-site-backend/internal/domains/hero"
	heroHandler "school-site-backend/internal/domains/hero/handler"
	"school-site-backend/internal/domains/instagram"
	instagramHandler "school-site-backend/internal/domains/instagram/handler"
	"school-site-backend/internal/domains/principal"
	principalHandler "school-site-backend/internal/domains/principal/handler"
	infraCache "school-site-backend/internal/infrastructure/cache"
	"school-site-backend/pkg/cache"
	"school-site-backend/pkg/jwt"
	"school-site-backend/pkg/swr"

	"github.com/rs/zerolog/log"
)

// ========================================
// CONTAINER
// ========================================
// Root of the dependency graph. Everything is a singleton built once
// at startup, in dependency order: config, infrastructure, services,
// handlers.

type Container struct {
	Config *config.Config

	// Infrastructure
	Cache      cache.Cache
	CMSClient  *cms.Client
	Resolver   *cms.Resolver
	SWRStore   *swr.Store
	JWTManager *jwt.Manager // nil when admin auth is disabled

	// Services
	ContentService *content.Service
	CachedContent  *content.CachedService
	HeroService    *hero.Service
	PrincipalSvc   *principal.Service
	InstagramSvc   *instagram.Service

	// Handlers
	ContentHandler   *contentHandler.ContentHandler
	HeroHandler      *heroHandler.HeroHandler
	PrincipalHandler *principalHandler.PrincipalHandler
	InstagramHandler *instagramHandler.InstagramHandler
	AuthHandler      *auth.Handler
}

// NewContainer builds the whole dependency graph from an already
// loaded configuration.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("container requires a configuration")
	}
	c := &Container{Config: cfg}

	// Cache backend: in-memory by default, Redis when configured.
	// Local entities always live in process memory regardless; the
	// cache only backs the Instagram proxy slot.
	if cfg.Redis.Host != "" {
		redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		c.Cache = redisCache
		log.Info().Str("host", cfg.Redis.Host).Msg("using redis cache backend")
	} else {
		c.Cache = infraCache.NewMemoryCache()
		log.Info().Msg("using in-memory cache backend")
	}

	c.CMSClient = cms.NewClient(cms.Config{
		BaseURL:  cfg.CMS.BaseURL,
		APIToken: cfg.CMS.APIToken,
		Timeout:  cfg.CMS.Timeout,
		Debug:    cfg.CMS.DebugLogging,
	})
	c.Resolver = &cms.Resolver{BaseURL: cfg.CMS.BaseURL}
	c.SWRStore = swr.NewStore()

	if cfg.Admin.JWTSecret != "" {
		c.JWTManager = jwt.NewManager(cfg.Admin.JWTSecret, 12*time.Hour)
		log.Info().Msg("admin authentication enabled")
	} else {
		log.Warn().Msg("admin authentication disabled, mutating endpoints are open")
	}

	// Services
	c.ContentService = content.NewService(c.CMSClient)
	c.CachedContent = content.NewCachedService(c.ContentService, c.SWRStore)
	c.HeroService = hero.NewService(hero.NewMemoryRepository())
	c.PrincipalSvc = principal.NewService(principal.NewMemoryRepository())
	c.InstagramSvc = instagram.NewService(cfg.Instagram, c.Cache)

	// Handlers
	c.ContentHandler = contentHandler.NewContentHandler(c.CachedContent, c.ContentService, c.Resolver)
	c.HeroHandler = heroHandler.NewHeroHandler(c.HeroService)
	c.PrincipalHandler = principalHandler.NewPrincipalHandler(c.PrincipalSvc)
	c.InstagramHandler = instagramHandler.NewInstagramHandler(c.InstagramSvc)
	c.AuthHandler = auth.NewHandler(cfg.Admin, c.JWTManager)

	return c, nil
}

// Cleanup releases held resources. Safe to call once on shutdown.
func (c *Container) Cleanup() {
	if closer, ok := c.Cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close cache backend")
		}
	}
}
