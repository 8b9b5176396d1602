package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/resource-uploader/backend/internal/models"
	"github.com/resource-uploader/backend/internal/textenc"
)

// ErrWriteFailed wraps filesystem errors raised while storing an upload.
var ErrWriteFailed = errors.New("write failed")

// Persister writes uploads into resolved directories under generated names.
type Persister struct {
	root         string
	publicPrefix string
	namer        Namer
	now          func() time.Time
}

// PersisterOption configures a Persister.
type PersisterOption func(*Persister)

// WithNamer overrides the file naming strategy.
func WithNamer(n Namer) PersisterOption {
	return func(p *Persister) {
		p.namer = n
	}
}

// WithClock overrides the clock used for naming and timestamps.
func WithClock(now func() time.Time) PersisterOption {
	return func(p *Persister) {
		p.now = now
	}
}

// NewPersister creates a Persister for files under root. Public paths in
// results are root-relative and joined onto publicPrefix.
func NewPersister(root, publicPrefix string, opts ...PersisterOption) *Persister {
	p := &Persister{
		root:         filepath.Clean(root),
		publicPrefix: publicPrefix,
		namer:        TimestampNamer{},
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Persist streams r into res.Path under a generated name. An existing file
// with the same name is overwritten.
func (p *Persister) Persist(res Resolution, originalName string, r io.Reader) (*models.StoredFile, error) {
	now := p.now()
	name := p.namer.Name(now, originalName)
	diskPath := filepath.Join(res.Path, name)

	f, err := os.Create(diskPath)
	if err != nil {
		return nil, fmt.Errorf("%w: creating file: %w", ErrWriteFailed, err)
	}

	size, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(diskPath)
		return nil, fmt.Errorf("%w: writing file: %w", ErrWriteFailed, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(diskPath)
		return nil, fmt.Errorf("%w: closing file: %w", ErrWriteFailed, err)
	}

	return &models.StoredFile{
		OriginalName: textenc.RepairFilename(originalName),
		FileSize:     size,
		FilePath:     p.publicPath(diskPath),
		StoredName:   name,
		DiskPath:     diskPath,
		Folder:       res.Folder,
		FellBack:     res.Outcome == OutcomeFellBack,
		StoredAt:     now,
	}, nil
}

// publicPath converts a path on disk to its slash separated, root-relative
// form with a leading slash.
func (p *Persister) publicPath(diskPath string) string {
	rel, err := filepath.Rel(p.root, diskPath)
	if err != nil {
		rel = diskPath
	}
	return path.Join("/", p.publicPrefix, filepath.ToSlash(rel))
}
