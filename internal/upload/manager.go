package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/resource-uploader/backend/internal/models"
	"github.com/resource-uploader/backend/internal/storage"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNoFile is returned when a request carries no file part.
	ErrNoFile = errors.New("no file provided")
	// ErrLedgerDisabled is returned by Recent when no ledger is configured.
	ErrLedgerDisabled = errors.New("upload ledger disabled")
)

// Ledger defines the interface needed from the upload history store.
type Ledger interface {
	Record(ctx context.Context, rec *models.UploadRecord) error
	Recent(ctx context.Context, limit int) ([]*models.UploadRecord, error)
}

// Manager runs uploads through the store and records them in the ledger.
type Manager struct {
	store  storage.Store
	ledger Ledger
	log    logrus.FieldLogger
}

// NewManager creates an upload manager. ledger may be nil.
func NewManager(store storage.Store, ledger Ledger, log logrus.FieldLogger) *Manager {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Manager{
		store:  store,
		ledger: ledger,
		log:    log,
	}
}

// Upload stores the first file of files under folderHint.
// Files beyond the first are ignored.
func (m *Manager) Upload(ctx context.Context, folderHint string, files []*multipart.FileHeader) (*models.StoredFile, error) {
	if len(files) == 0 || files[0] == nil {
		return nil, ErrNoFile
	}
	fh := files[0]

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: opening upload: %w", storage.ErrWriteFailed, err)
	}
	defer src.Close()

	return m.Save(ctx, folderHint, fh.Filename, src)
}

// Save stores r as originalName under folderHint.
func (m *Manager) Save(ctx context.Context, folderHint, originalName string, r io.Reader) (*models.StoredFile, error) {
	entry := m.log.WithFields(logrus.Fields{
		"folder_hint": folderHint,
		"file_name":   originalName,
	})

	stored, res, err := m.store.Save(folderHint, originalName, r)
	if res.Outcome == storage.OutcomeFellBack {
		entry.WithError(res.Reason).WithField("path", res.Path).Warn("folder unavailable, using fallback directory")
	}
	if err != nil {
		entry.WithError(err).Error("storing upload failed")
		return nil, err
	}

	entry.WithFields(logrus.Fields{
		"outcome":   res.Outcome.String(),
		"file_path": stored.FilePath,
		"file_size": stored.FileSize,
	}).Info("upload stored")

	if m.ledger != nil {
		rec := models.NewUploadRecord(uuid.NewString(), stored)
		if err := m.ledger.Record(ctx, rec); err != nil {
			entry.WithError(err).Warn("recording upload in ledger failed")
		}
	}

	return stored, nil
}

// Recent lists the most recent uploads from the ledger.
func (m *Manager) Recent(ctx context.Context, limit int) ([]*models.UploadRecord, error) {
	if m.ledger == nil {
		return nil, ErrLedgerDisabled
	}
	return m.ledger.Recent(ctx, limit)
}
