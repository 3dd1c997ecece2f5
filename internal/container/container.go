package container

import (
	"context"
	"fmt"

	"blog-api/internal/config"
	"blog-api/internal/repository"
	"blog-api/internal/service"
	"blog-api/internal/service/auth"
	"blog-api/pkg/database"
	"blog-api/pkg/logger"
	"blog-api/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *database.MongoDB
	RedisClient *redis.Client
	Services    *service.Services
}

// New creates a new dependency injection container
func New(ctx context.Context, cfg *config.Config, log *logger.Logger, db *database.MongoDB) (*Container, error) {
	// Redis is optional; without it the app runs with no caching or throttling
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			log.Info("Redis client initialized successfully")
		}
	} else {
		log.Info("Redis URL not configured, proceeding without caching")
	}

	userRepo := repository.NewUserRepository(ctx, db, log)
	blogRepo := repository.NewBlogRepository(db, log)

	authService, err := auth.NewService(ctx, cfg.GoogleClientID, cfg.JWTSecret, cfg.JWTTTL, userRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	blogService := service.NewBlogService(blogRepo, redisClient, log)

	return &Container{
		Config:      cfg,
		Logger:      log,
		DB:          db,
		RedisClient: redisClient,
		Services: &service.Services{
			Auth: authService,
			Blog: blogService,
		},
	}, nil
}

// GetAuthService returns the auth service
func (c *Container) GetAuthService() service.AuthService {
	return c.Services.Auth
}

// GetBlogService returns the blog service
func (c *Container) GetBlogService() service.BlogService {
	return c.Services.Blog
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetRedisClient returns the Redis client (may be nil if not configured)
func (c *Container) GetRedisClient() *redis.Client {
	return c.RedisClient
}

// HasRedis returns true if Redis client is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}
