package di

import (
	"github.com/sportactiv/sportactiv/internal/cache"
	"github.com/sportactiv/sportactiv/internal/handler"
	"github.com/sportactiv/sportactiv/internal/repository"
	"github.com/sportactiv/sportactiv/internal/service"
	"github.com/sportactiv/sportactiv/pkg/config"
	"github.com/sportactiv/sportactiv/pkg/database"
	"github.com/sportactiv/sportactiv/pkg/redis"
)

// Container holds all dependencies for the API server
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *redis.Client

	// Repositories
	UserRepo         repository.UserRepository
	CategoryRepo     repository.CategoryRepository
	ActivityRepo     repository.ActivityRepository
	RegistrationRepo repository.RegistrationRepository
	CommentRepo      repository.CommentRepository

	// Caches
	ActivityCache *cache.ActivityCache

	// Services
	AuthService         service.AuthService
	UserService         service.UserService
	ActivityService     service.ActivityService
	RegistrationService service.RegistrationService
	CommentService      service.CommentService
	CategoryService     service.CategoryService

	// Handlers
	HealthHandler       *handler.HealthHandler
	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	ActivityHandler     *handler.ActivityHandler
	RegistrationHandler *handler.RegistrationHandler
	CommentHandler      *handler.CommentHandler
	CategoryHandler     *handler.CategoryHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB     *database.PostgresDB
	Redis  *redis.Client
	Config *config.Config
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:    cfg.DB,
		Redis: cfg.Redis,
	}

	// Initialize repositories
	c.UserRepo = repository.NewPostgresUserRepository(c.DB.Pool())
	c.CategoryRepo = repository.NewPostgresCategoryRepository(c.DB.Pool())
	c.ActivityRepo = repository.NewPostgresActivityRepository(c.DB.Pool())
	c.RegistrationRepo = repository.NewPostgresRegistrationRepository(c.DB.Pool())
	c.CommentRepo = repository.NewPostgresCommentRepository(c.DB.Pool())

	// Initialize caches
	c.ActivityCache = cache.NewActivityCache(c.Redis, cfg.Config.Redis.CacheTTL)

	// Initialize services
	c.AuthService = service.NewAuthService(
		c.UserRepo,
		cfg.Config.JWT.Secret,
		cfg.Config.JWT.Issuer,
		cfg.Config.JWT.AccessTokenTTL,
	)
	c.UserService = service.NewUserService(c.UserRepo)
	c.ActivityService = service.NewActivityService(c.ActivityRepo, c.CategoryRepo, c.UserRepo, c.ActivityCache)
	c.RegistrationService = service.NewRegistrationService(
		c.RegistrationRepo,
		c.ActivityRepo,
		c.UserRepo,
		c.ActivityCache,
		service.CounterPolicy{DecrementOnAdminCancel: cfg.Config.Registration.DecrementOnAdminCancel},
	)
	c.CommentService = service.NewCommentService(c.CommentRepo, c.ActivityRepo, c.UserRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)

	// Initialize handlers
	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis)
	c.AuthHandler = handler.NewAuthHandler(c.AuthService)
	c.UserHandler = handler.NewUserHandler(c.UserService)
	c.ActivityHandler = handler.NewActivityHandler(c.ActivityService)
	c.RegistrationHandler = handler.NewRegistrationHandler(c.RegistrationService)
	c.CommentHandler = handler.NewCommentHandler(c.CommentService)
	c.CategoryHandler = handler.NewCategoryHandler(c.CategoryService)

	return c
}
