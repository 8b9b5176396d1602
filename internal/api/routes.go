// routes.go - Route and middleware registration
package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// UploadPath is the multipart upload endpoint.
const UploadPath = "/api/uploadFile"

// Dependencies holds all handler dependencies
type Dependencies struct {
	Uploader    Uploader
	StorageRoot string
	Version     string
}

// Handlers holds all handler instances
type Handlers struct {
	Health HealthHandler
	Upload UploadHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(deps.Version, deps.StorageRoot),
		Upload: NewUploadHandler(deps.Uploader),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	apiGroup := e.Group("/api")
	apiGroup.POST("/uploadFile", handlers.Upload.HandleUploadFile)
	apiGroup.GET("/health", handlers.Health.HandleHealth)
	apiGroup.GET("/uploads/recent", handlers.Upload.HandleRecentUploads)
	apiGroup.GET("/uploads/recent/msgpack", handlers.Upload.HandleRecentUploadsMsgpack)
}

// MiddlewareConfig configures SetupMiddleware
type MiddlewareConfig struct {
	Log               logrus.FieldLogger
	BodyLimit         string
	CacheMaxAge       time.Duration
	PoweredBy         string
	RequestLogging    bool
	EnableCompression bool
	CompressionLevel  int
	ExposeErrors      bool
}

// SetupMiddleware configures common middleware
func SetupMiddleware(e *echo.Echo, cfg MiddlewareConfig) {
	e.HTTPErrorHandler = NewErrorHandler(cfg.Log, cfg.ExposeErrors)

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	if cfg.RequestLogging && cfg.Log != nil {
		e.Use(RequestLogger(cfg.Log, func(c echo.Context) bool {
			return c.Request().URL.Path == "/api/health"
		}))
	}

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))

	// Headers go on before anything that may reject the request
	e.Use(APIHeaders(cfg.PoweredBy))
	e.Use(CacheControl(cfg.CacheMaxAge, nil))

	if cfg.EnableCompression {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
			Level: cfg.CompressionLevel,
		}))
	}

	if cfg.BodyLimit != "" {
		e.Use(middleware.BodyLimit(cfg.BodyLimit))
	}
}
