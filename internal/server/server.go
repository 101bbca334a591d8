package server

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/config"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/handlers"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/middleware"
)

// HealthChecker reports the state of the backing database.
type HealthChecker interface {
	Health() map[string]string
}

type Server struct {
	cfg     *config.Config
	db      HealthChecker
	handler *handlers.Handler
	tokens     middleware.TokenParser
	identities middleware.IdentityLoader
	limiter    *middleware.RateLimiter
	log        *zap.Logger
}

// NewServer wires handlers and middleware around the given dependencies.
func NewServer(cfg *config.Config, log *zap.Logger, db HealthChecker, handler *handlers.Handler, tokens middleware.TokenParser, identities middleware.IdentityLoader) *Server {
	return &Server{
		cfg:        cfg,
		db:         db,
		handler:    handler,
		tokens:     tokens,
		identities: identities,
		limiter:    middleware.NewRateLimiter(cfg.InteractionLimit, time.Minute),
		log:        log,
	}
}

// HTTPServer returns the configured http.Server for the router.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%s", s.cfg.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Close releases background resources held by middleware.
func (s *Server) Close() {
	s.limiter.Stop()
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(s.log), middleware.Recovery(s.log))

	// CORS configuration
	origins := s.cfg.CorsAllowedOrigins
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: !slices.Contains(origins, "*"),
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", s.healthHandler)

	h := s.handler
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", h.Auth.Register)
		api.POST("/login", h.Auth.Login)

		// Post routes (public reads, identity attached when a token is sent)
		public := api.Group("")
		public.Use(middleware.OptionalAuth(s.tokens, s.identities))
		{
			public.GET("/posts", h.Post.GetPosts)
			public.GET("/posts/feed", h.Post.GetFeed)
			public.GET("/posts/status", h.Post.GetPostsByStatus)
			public.GET("/posts/:id", h.Post.GetPost)
		}

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.RequireAuth(s.tokens, s.identities, s.log))
		{
			protected.POST("/posts", h.Post.CreatePost)
			protected.PUT("/posts/:id", h.Post.UpdatePost)
			protected.DELETE("/posts/:id", h.Post.DeletePost)

			protected.GET("/user/profile", h.User.GetProfile)
			protected.PUT("/user/profile", h.User.UpdateProfile)
			protected.PUT("/user/password", h.User.ChangePassword)

			// Paths used by the web client
			protected.PUT("/auth/users/:id", h.User.UpdateUser)
			protected.PUT("/auth/change-password", h.User.ChangePassword)

			interactions := protected.Group("")
			interactions.Use(s.limiter.Middleware(s.log))
			{
				interactions.POST("/posts/:id/like", h.Post.LikePost)
				interactions.POST("/posts/:id/comment", h.Comment.CreateComment)
			}

			moderation := protected.Group("")
			moderation.Use(middleware.RequireAdmin(s.log))
			{
				moderation.PUT("/posts/:id/approve", h.Moderation.ApprovePost)
				moderation.PUT("/posts/:id/reject", h.Moderation.RejectPost)
			}
		}
	}

	return r
}

func (s *Server) healthHandler(c *gin.Context) {
	stats := s.db.Health()
	status := http.StatusOK
	if stats["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, stats)
}
