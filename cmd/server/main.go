// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/crimsonlab/crimson/comments"
	commentHandlers "github.com/crimsonlab/crimson/comments/handlers"
	commentRepository "github.com/crimsonlab/crimson/comments/repository"
	commentServices "github.com/crimsonlab/crimson/comments/services"
	"github.com/crimsonlab/crimson/communities"
	communityHandlers "github.com/crimsonlab/crimson/communities/handlers"
	communityRepository "github.com/crimsonlab/crimson/communities/repository"
	communityServices "github.com/crimsonlab/crimson/communities/services"
	"github.com/crimsonlab/crimson/internal/cache"
	"github.com/crimsonlab/crimson/internal/database/postgres"
	"github.com/crimsonlab/crimson/internal/localcache"
	"github.com/crimsonlab/crimson/internal/middleware/requestid"
	"github.com/crimsonlab/crimson/internal/pkg/log"
	platformconfig "github.com/crimsonlab/crimson/internal/platform/config"
	"github.com/crimsonlab/crimson/posts"
	postHandlers "github.com/crimsonlab/crimson/posts/handlers"
	postRepository "github.com/crimsonlab/crimson/posts/repository"
	postServices "github.com/crimsonlab/crimson/posts/services"
	"github.com/crimsonlab/crimson/votes"
	voteHandlers "github.com/crimsonlab/crimson/votes/handlers"
	voteRepository "github.com/crimsonlab/crimson/votes/repository"
	voteServices "github.com/crimsonlab/crimson/votes/services"
)

func main() {
	cfg, err := platformconfig.LoadFromEnv()
	if err != nil {
		log.Error("Failed to load config: %v", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("Invalid config: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()

	pgClient, err := postgres.NewClient(ctx, &cfg.Database.Postgres)
	if err != nil {
		log.Error("Failed to connect to postgres: %v", err)
		os.Exit(1)
	}
	defer pgClient.Close()

	listCache, err := buildListCache(cfg)
	if err != nil {
		log.Error("Failed to create cache: %v", err)
		os.Exit(1)
	}
	if listCache != nil {
		defer listCache.Close()
	}

	// One local cache instance backs every orchestrating service, so a
	// committed vote is immediately visible to the post views and vice
	// versa.
	local := localcache.NewStore()

	voteRepo := voteRepository.NewPostgresVoteRepository(pgClient)
	postRepo := postRepository.NewPostgresPostRepository(pgClient)
	communityRepo := communityRepository.NewPostgresCommunityRepository(pgClient)
	commentRepo := commentRepository.NewPostgresCommentRepository(pgClient)

	voteService := voteServices.NewVoteService(voteRepo, postRepo, local)
	communityService := communityServices.NewCommunityService(communityRepo, local)
	postService := postServices.NewPostService(postRepo, communityRepo, listCache, local)
	commentService := commentServices.NewCommentService(commentRepo, postRepo, local)

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if len(c.Response().Body()) > 0 {
				return nil
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.WebDomain,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, PATCH, OPTIONS",
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := pgClient.HealthCheck(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded",
				"error":  err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	votes.RegisterRoutes(app, &votes.VotesHandlers{
		VoteHandler: voteHandlers.NewVoteHandler(voteService),
	}, cfg)
	communities.RegisterRoutes(app, &communities.CommunitiesHandlers{
		CommunityHandler: communityHandlers.NewCommunityHandler(communityService),
	}, cfg)
	posts.RegisterRoutes(app, &posts.PostsHandlers{
		PostHandler: postHandlers.NewPostHandler(postService, voteService),
	}, cfg)
	comments.RegisterRoutes(app, &comments.CommentsHandlers{
		CommentHandler: commentHandlers.NewCommentHandler(commentService),
	}, cfg)

	// Graceful shutdown on SIGINT/SIGTERM.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down")
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("Listening on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Error("Server stopped: %v", err)
		os.Exit(1)
	}
}

// buildListCache wires the read-through list cache from the platform
// config. Returns nil when caching is disabled.
func buildListCache(cfg *platformconfig.Config) (cache.Cache, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	cacheConfig := cache.DefaultCacheConfig()
	cacheConfig.Backend = cache.CacheType(cfg.Cache.Backend)
	if cfg.Cache.Prefix != "" {
		cacheConfig.Prefix = cfg.Cache.Prefix
	}
	if cfg.Cache.TTL > 0 {
		cacheConfig.TTL = cfg.Cache.TTL
	}
	if cfg.Cache.MaxMemory > 0 {
		cacheConfig.MaxMemory = cfg.Cache.MaxMemory
	}
	if cfg.Cache.CleanupInterval > 0 {
		cacheConfig.CleanupInterval = cfg.Cache.CleanupInterval
	}
	cacheConfig.Redis = cache.RedisConfig{
		Address:      cfg.Cache.Redis.Address,
		Password:     cfg.Cache.Redis.Password,
		Database:     cfg.Cache.Redis.Database,
		PoolSize:     cfg.Cache.Redis.PoolSize,
		MinIdleConns: cfg.Cache.Redis.MinIdleConns,
	}

	return cache.NewCache(cacheConfig)
}
