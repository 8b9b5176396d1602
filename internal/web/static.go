// Package web serves stored uploads back as static assets.
package web

import (
	"fmt"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
)

// RegisterStaticRoutes serves the files under root at prefix, so an upload
// stored at <root>/<folder>/<name> is reachable at <prefix>/<folder>/<name>.
// Directories are never listed.
func RegisterStaticRoutes(e *echo.Echo, prefix, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("static root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("static root %s is not a directory", root)
	}

	prefix = "/" + strings.Trim(prefix, "/")
	e.Static(prefix, root)
	return nil
}
