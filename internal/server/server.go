package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pantrybase/cookbook/config"
	"github.com/pantrybase/cookbook/internal/api"
	"github.com/pantrybase/cookbook/internal/database"
	"github.com/pantrybase/cookbook/internal/middleware"
	"github.com/pantrybase/cookbook/internal/router"
	"github.com/pantrybase/cookbook/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
}

// New wires services, handlers, and middleware into a runnable server.
// Redis and S3 are optional: without them the server runs unthrottled and
// without the image upload endpoint.
func New(cfg *config.Config, db *gorm.DB) *Server {
	var writeLimiter *middleware.RateLimiter
	if cfg.RedisAddr != "" || cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Warning: rate limiting disabled, Redis unavailable: %v", err)
		} else {
			writeLimiter = middleware.NewWriteRateLimiter(redisClient, cfg.RateLimitPerMinute)
		}
	}

	var imageService *service.ImageService
	if cfg.S3Bucket != "" {
		s3Config, err := config.NewS3Config(context.Background())
		if err != nil {
			log.Printf("Warning: image upload disabled, S3 unavailable: %v", err)
		} else {
			imageService = service.NewImageService(s3Config)
		}
	}

	recipeHandler := api.NewRecipeHandler(service.NewRecipeService(db), imageService)
	ingredientHandler := api.NewIngredientHandler(service.NewIngredientService(db))

	engine := router.SetupRouter(recipeHandler, ingredientHandler, writeLimiter)

	return &Server{
		router: engine,
		db:     db,
		http: &http.Server{
			Addr:    cfg.Addr(),
			Handler: engine,
		},
	}
}

// Start begins serving and blocks until the listener stops
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and closes the store
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.http.Shutdown(ctx); err != nil {
		return err
	}
	return database.Close(s.db)
}

// Router exposes the gin engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}
