package router

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anonto42/dura-blog/backend/internal/handlers"
	"github.com/anonto42/dura-blog/backend/internal/middleware"
	"github.com/anonto42/dura-blog/backend/internal/repositories"
	"github.com/anonto42/dura-blog/backend/internal/services"
	"github.com/anonto42/dura-blog/backend/internal/web"
	"github.com/anonto42/dura-blog/backend/pkg/config"
	"github.com/anonto42/dura-blog/backend/validators"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
)

const (
	appTitle          = "Dura Blog"
	apiBasePath       = "/api"
	postPreviewLength = 200
)

// NewPostRepository builds the post store for the connection held by db
func NewPostRepository(ctx context.Context, db *config.DB) (repositories.PostRepository, error) {
	switch {
	case db.Gorm != nil:
		return repositories.NewGormPostRepository(db.Gorm), nil
	case db.Mongo != nil:
		repo := repositories.NewMongoPostRepository(db.Mongo.Database(db.MongoDatabase))
		if err := repo.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("no store connection configured")
	}
}

// New creates the Echo instance with validator, renderer and error handler installed
func New(logger *slog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.HTTPErrorHandler(logger)

	templates, err := web.NewTemplates()
	if err != nil {
		return nil, err
	}
	e.Renderer = templates
	return e, nil
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, logger *slog.Logger, allowedOrigins []string) {
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORSWithConfig(eMiddleware.CORSConfig{
		AllowOrigins: allowedOrigins,
	}))
	logger.Debug("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, postRepo repositories.PostRepository, logger *slog.Logger) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck(postRepo))

	// Browser client
	e.GET("/", web.IndexHandler(web.IndexPageData{
		Title:         appTitle,
		APIBasePath:   apiBasePath,
		PreviewLength: postPreviewLength,
	}))

	api := e.Group(apiBasePath)

	postService := services.NewPostService(postRepo)
	postHandler := handlers.NewPostHandler(postService, logger)
	postHandler.RegisterPostRoutes(api)
	logger.Debug("Post routes configured.")
}
