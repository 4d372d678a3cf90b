package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/social-network/internal/api/http/handlers"
	"github.com/spec-kit/social-network/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	AdminUsers     *handlers.AdminUsersHandler
	Posts          *handlers.PostsHandler
	Stats          *handlers.StatsHandler
	AuthMiddleware *auth.Middleware
	RateLimiter    fiber.Handler
	UploadsDir     string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	if cfg.UploadsDir != "" {
		app.Static("/uploads", cfg.UploadsDir)
	}

	authGroup := app.Group("/auth")
	if cfg.RateLimiter != nil {
		authGroup.Use(cfg.RateLimiter)
	}
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/validate", cfg.Auth.Validate)
	authGroup.Post("/refresh", cfg.AuthMiddleware.Handle, cfg.Auth.Refresh)

	users := app.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/me", cfg.Users.Me)
	users.Get("/me/posts", cfg.Users.MyPosts)

	posts := app.Group("/posts", cfg.AuthMiddleware.Handle)
	posts.Post("/", cfg.Posts.Create)
	posts.Get("/", cfg.Posts.List)
	posts.Get("/user/:userId", cfg.Posts.ByUser)
	posts.Get("/:id", cfg.Posts.Get)
	posts.Delete("/:id", cfg.Posts.Delete)
	posts.Post("/:id/likes", cfg.Posts.Like)
	posts.Delete("/:id/likes", cfg.Posts.Unlike)
	posts.Post("/:id/comments", cfg.Posts.AddComment)
	posts.Put("/:id/comments/:commentId", cfg.Posts.UpdateComment)
	posts.Get("/:id/comments", cfg.Posts.Comments)

	stats := app.Group("/stats", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	stats.Get("/posts-per-user", cfg.Stats.PostsPerUser)
	stats.Get("/comments-total", cfg.Stats.CommentsTotal)
	stats.Get("/comments-per-post", cfg.Stats.CommentsPerPost)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Post("/users", cfg.AdminUsers.Create)
	admin.Get("/users", cfg.AdminUsers.List)
	admin.Patch("/users/:id/status", cfg.AdminUsers.UpdateStatus)
}
