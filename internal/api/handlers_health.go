// handlers_health.go - Health check handlers
package api

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
)

// HealthHandlerImpl implements the HealthHandler interface
type HealthHandlerImpl struct {
	version     string
	storageRoot string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version, storageRoot string) HealthHandler {
	return &HealthHandlerImpl{
		version:     version,
		storageRoot: storageRoot,
	}
}

// HandleHealth returns server health status. The service is degraded when
// the storage root has disappeared.
func (h *HealthHandlerImpl) HandleHealth(c echo.Context) error {
	status, code := "ok", http.StatusOK
	if _, err := os.Stat(h.storageRoot); err != nil {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	return c.JSON(code, map[string]interface{}{
		"status":  status,
		"version": h.version,
	})
}
