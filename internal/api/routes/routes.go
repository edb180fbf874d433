package routes

import (
	"log/slog"

	"koyomi/internal/api/handlers"
	"koyomi/internal/api/middleware"
	"koyomi/internal/authz"
	"koyomi/internal/config"
	"koyomi/internal/services"
	"koyomi/internal/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config, db *gorm.DB, store session.Store, logger *slog.Logger) {
	// Initialize services
	authService := services.NewAuthService(db, store, cfg)
	activityService := services.NewActivityService(db, logger)
	eventService := services.NewEventService(db)
	commentService := services.NewCommentService(db)
	userService := services.NewUserService(db, authService, cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, activityService, cfg)
	eventHandler := handlers.NewEventHandler(eventService, activityService, cfg)
	commentHandler := handlers.NewCommentHandler(commentService, activityService)
	userHandler := handlers.NewUserHandler(userService, activityService)
	profileHandler := handlers.NewProfileHandler(userService)
	activityHandler := handlers.NewActivityHandler(activityService)

	// Middleware: every request resolves its identity first, then the
	// prefix gate decides whether an absent identity is acceptable.
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.ErrorHandler(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CurrentUser(cfg, authService))
	r.Use(middleware.RequireLoginFor(cfg.Security.ProtectedPrefixes))

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		// Auth
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", authHandler.GetMe)
		}

		// Calendar reads are public; comment creation checks identity in
		// the handler.
		event := api.Group("/event")
		{
			event.GET("", eventHandler.List)
			event.GET("/:id", eventHandler.Get)
			event.GET("/:id/comment", commentHandler.List)
			event.POST("/:id/comment", commentHandler.Create)
		}

		// Member surface (prefix-gated)
		api.DELETE("/comment/:id", commentHandler.Delete)

		profile := api.Group("/profile")
		{
			profile.GET("", profileHandler.Get)
			profile.PUT("", profileHandler.Update)
			profile.PUT("/password", profileHandler.ChangePassword)
		}

		// Admin surface (prefix-gated plus per-group policy)
		admin := api.Group("/admin")
		{
			adminEvents := admin.Group("/event")
			adminEvents.Use(middleware.RequirePermission(authz.ManageEvents))
			{
				adminEvents.POST("", eventHandler.Create)
				adminEvents.PUT("/:id", eventHandler.Update)
				adminEvents.DELETE("/:id", eventHandler.Delete)
			}

			adminUsers := admin.Group("/user")
			adminUsers.Use(middleware.RequirePermission(authz.ManageUsers))
			{
				adminUsers.GET("", userHandler.List)
				adminUsers.GET("/:id", userHandler.Get)
				adminUsers.POST("", userHandler.Create)
				adminUsers.PUT("/:id", userHandler.Update)
				adminUsers.PUT("/:id/enabled", userHandler.SetEnabled)
				adminUsers.POST("/:id/password", userHandler.ResetPassword)
				adminUsers.DELETE("/:id", userHandler.Delete)
			}

			adminActivity := admin.Group("/activity")
			adminActivity.Use(middleware.RequirePermission(authz.ViewDashboard))
			{
				adminActivity.GET("", activityHandler.Recent)
			}
		}
	}
}
