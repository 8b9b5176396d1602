package web

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterStaticRoutes(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "avatars"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "avatars", "1700000000123.png"), []byte("\x89PNG"), 0644))

	e := echo.New()
	require.NoError(t, RegisterStaticRoutes(e, "resource/", root))

	t.Run("serves stored file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/resource/avatars/1700000000123.png", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "\x89PNG", rec.Body.String())
	})

	t.Run("missing file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/resource/avatars/nope.png", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("directory is not listed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/resource/avatars/", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRegisterStaticRoutes_BadRoot(t *testing.T) {
	e := echo.New()
	assert.Error(t, RegisterStaticRoutes(e, "/resource", filepath.Join(t.TempDir(), "missing")))

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	assert.Error(t, RegisterStaticRoutes(e, "/resource", file))
}
