package storage

import (
	"fmt"
	"io"
	"os"

	"github.com/resource-uploader/backend/internal/models"
)

// Store defines the interface for upload storage.
type Store interface {
	Save(folderHint, originalName string, r io.Reader) (*models.StoredFile, Resolution, error)
	Root() string
}

// Options configures a LocalStore.
type Options struct {
	Root           string // storage root on disk
	FallbackFolder string // folder used for blank hints and failed creations
	PublicPrefix   string // URL prefix the root is served under
	Naming         string // "timestamp" or "uuid"
}

// LocalStore implements Store using the local filesystem.
type LocalStore struct {
	resolver  *Resolver
	persister *Persister
}

// NewLocalStore creates the storage root and fallback directory and returns
// a store writing beneath them.
func NewLocalStore(opts Options, persisterOpts ...PersisterOption) (*LocalStore, error) {
	if err := os.MkdirAll(opts.Root, 0755); err != nil {
		return nil, fmt.Errorf("creating storage root: %w", err)
	}

	resolver := NewResolver(opts.Root, opts.FallbackFolder)
	if err := resolver.EnsureFallback(); err != nil {
		return nil, err
	}

	persisterOpts = append([]PersisterOption{WithNamer(NamerFor(opts.Naming))}, persisterOpts...)

	return &LocalStore{
		resolver:  resolver,
		persister: NewPersister(opts.Root, opts.PublicPrefix, persisterOpts...),
	}, nil
}

// Save resolves the destination for folderHint and writes r into it.
// The Resolution is returned even when the write fails.
func (s *LocalStore) Save(folderHint, originalName string, r io.Reader) (*models.StoredFile, Resolution, error) {
	res := s.resolver.Resolve(folderHint)
	f, err := s.persister.Persist(res, originalName, r)
	if err != nil {
		return nil, res, err
	}
	return f, res, nil
}

// Root returns the storage root directory.
func (s *LocalStore) Root() string {
	return s.resolver.Root()
}
