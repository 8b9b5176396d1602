// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"context"
	"mime/multipart"

	"github.com/labstack/echo/v4"
	"github.com/resource-uploader/backend/internal/models"
)

// UploadHandler handles file upload operations
type UploadHandler interface {
	HandleUploadFile(c echo.Context) error
	HandleRecentUploads(c echo.Context) error
	HandleRecentUploadsMsgpack(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// Uploader stores uploads and lists upload history.
// Implemented by *upload.Manager; allows mocking in tests.
type Uploader interface {
	Upload(ctx context.Context, folderHint string, files []*multipart.FileHeader) (*models.StoredFile, error)
	Recent(ctx context.Context, limit int) ([]*models.UploadRecord, error)
}
