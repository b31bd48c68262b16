package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sportactiv/sportactiv/internal/di"
	"github.com/sportactiv/sportactiv/internal/domain"
	"github.com/sportactiv/sportactiv/pkg/config"
	"github.com/sportactiv/sportactiv/pkg/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// New builds the gin engine with all middleware and routes wired
func New(cfg *config.Config, c *di.Container, auditLogger *middleware.AuditLogger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS())
	engine.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	if auditLogger != nil {
		engine.Use(middleware.Audit(auditLogger))
	}

	engine.GET("/health", c.HealthHandler.Health)
	engine.GET("/ready", c.HealthHandler.Ready)

	api := engine.Group("/api")

	// Public routes
	api.POST("/auth/register", c.AuthHandler.Register)
	api.POST("/auth/login", c.AuthHandler.Login)
	api.GET("/activities", c.ActivityHandler.List)
	api.GET("/activities/:id", c.ActivityHandler.GetByID)
	api.GET("/activities/:id/comments", c.CommentHandler.ListByActivity)
	api.GET("/categories", c.CategoryHandler.List)
	api.GET("/categories/:id", c.CategoryHandler.GetByID)

	// Authenticated routes
	auth := api.Group("")
	auth.Use(middleware.JWTMiddleware(&middleware.JWTConfig{Secret: cfg.JWT.Secret}))

	auth.GET("/auth/profile", c.AuthHandler.GetProfile)
	auth.PUT("/auth/profile", c.AuthHandler.UpdateProfile)
	auth.PUT("/auth/password", c.AuthHandler.ChangePassword)

	organizer := auth.Group("")
	organizer.Use(middleware.RequireRole(domain.RoleOrganizer, domain.RoleAdmin))
	organizer.POST("/activities", c.ActivityHandler.Create)
	organizer.PUT("/activities/:id", c.ActivityHandler.Update)
	organizer.PATCH("/activities/:id/status", c.ActivityHandler.UpdateStatus)
	organizer.DELETE("/activities/:id", c.ActivityHandler.Delete)
	organizer.GET("/registrations/activity/:activityId", c.RegistrationHandler.ListForActivity)

	auth.POST("/registrations", c.RegistrationHandler.Register)
	auth.GET("/registrations/user", c.RegistrationHandler.ListMine)
	auth.GET("/registrations/:id", c.RegistrationHandler.GetByID)
	auth.PUT("/registrations/:id", c.RegistrationHandler.Update)
	auth.PUT("/registrations/:id/payment", c.RegistrationHandler.UpdatePayment)
	auth.DELETE("/registrations/:id", c.RegistrationHandler.Delete)

	auth.POST("/activities/:id/comments", c.CommentHandler.Create)
	auth.PUT("/comments/:id", c.CommentHandler.Update)
	auth.DELETE("/comments/:id", c.CommentHandler.Delete)

	admin := auth.Group("")
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/registrations/admin", c.RegistrationHandler.ListAdmin)
	admin.GET("/activities/admin", c.ActivityHandler.List)
	admin.GET("/comments/admin", c.CommentHandler.ListAdmin)
	admin.GET("/users", c.UserHandler.List)
	admin.GET("/users/:id", c.UserHandler.GetByID)
	admin.PUT("/users/:id", c.UserHandler.Update)
	admin.DELETE("/users/:id", c.UserHandler.Delete)
	admin.POST("/categories", c.CategoryHandler.Create)
	admin.PUT("/categories/:id", c.CategoryHandler.Update)
	admin.DELETE("/categories/:id", c.CategoryHandler.Delete)

	return engine
}
