// handlers_upload.go - File upload operation handlers
package api

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/resource-uploader/backend/internal/models"
	"github.com/resource-uploader/backend/internal/upload"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 200
)

// UploadHandlerImpl implements the UploadHandler interface
type UploadHandlerImpl struct {
	uploader Uploader
}

// NewUploadHandler creates a new upload handler instance
func NewUploadHandler(uploader Uploader) UploadHandler {
	return &UploadHandlerImpl{
		uploader: uploader,
	}
}

// HandleUploadFile stores the first "file" part of a multipart request under
// the folder named by the folderName query parameter.
func (h *UploadHandlerImpl) HandleUploadFile(c echo.Context) error {
	folderName := c.QueryParam("folderName")

	var files []*multipart.FileHeader
	form, err := c.MultipartForm()
	if err != nil {
		// Oversized bodies keep their 413; anything else is "no file".
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return err
		}
	} else {
		files = form.File["file"]
	}

	stored, err := h.uploader.Upload(c.Request().Context(), folderName, files)
	switch {
	case errors.Is(err, upload.ErrNoFile):
		return c.JSON(http.StatusOK, newUploadFailure(MsgUploadFailed))
	case err != nil:
		return c.JSON(http.StatusOK, newUploadFailure(MsgSaveFailed))
	}

	return c.JSON(http.StatusOK, newUploadSuccess(stored))
}

// HandleRecentUploads returns the most recent uploads from the ledger
func (h *UploadHandlerImpl) HandleRecentUploads(c echo.Context) error {
	records, err := h.recent(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

// HandleRecentUploadsMsgpack is HandleRecentUploads encoded as MessagePack
func (h *UploadHandlerImpl) HandleRecentUploadsMsgpack(c echo.Context) error {
	records, err := h.recent(c)
	if err != nil {
		return err
	}

	data, err := msgpack.Marshal(records)
	if err != nil {
		return NewInternalError("failed to encode msgpack", err)
	}

	// The API header middleware presets a JSON content type.
	c.Response().Header().Set(echo.HeaderContentType, "application/msgpack")
	return c.Blob(http.StatusOK, "application/msgpack", data)
}

func (h *UploadHandlerImpl) recent(c echo.Context) ([]*models.UploadRecord, error) {
	limit, err := parseLimit(c.QueryParam("limit"))
	if err != nil {
		return nil, err
	}

	records, err := h.uploader.Recent(c.Request().Context(), limit)
	if errors.Is(err, upload.ErrLedgerDisabled) {
		return nil, NewServiceUnavailableError("upload ledger is disabled")
	}
	if err != nil {
		return nil, NewInternalError("failed to list uploads", err)
	}
	return records, nil
}

// parseLimit reads the limit query parameter, clamped to maxRecentLimit
func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultRecentLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, NewBadRequestError("limit must be a positive integer", err)
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	return limit, nil
}
