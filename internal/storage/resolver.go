package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is the fallback reason for folder hints that escape the storage root.
var ErrOutsideRoot = errors.New("folder outside storage root")

// Outcome tells how a destination directory was obtained.
type Outcome int

const (
	// OutcomeExisting means the requested path was already present.
	OutcomeExisting Outcome = iota
	// OutcomeCreated means the requested directory was created for this upload.
	OutcomeCreated
	// OutcomeFellBack means the requested directory could not be created and
	// the fallback directory was used instead.
	OutcomeFellBack
)

func (o Outcome) String() string {
	switch o {
	case OutcomeExisting:
		return "existing"
	case OutcomeCreated:
		return "created"
	case OutcomeFellBack:
		return "fell_back"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Resolution is the directory an upload will be written to.
type Resolution struct {
	Path    string  // directory on disk
	Folder  string  // Path relative to the storage root, slash separated
	Outcome Outcome // how Path was obtained
	Reason  error   // why the resolver fell back; nil otherwise
}

// Resolver maps caller supplied folder hints to directories under a storage root.
type Resolver struct {
	root     string
	fallback string
}

// NewResolver creates a resolver for root. fallback names the folder used for
// blank hints and for hints whose directory cannot be created.
func NewResolver(root, fallback string) *Resolver {
	return &Resolver{
		root:     filepath.Clean(root),
		fallback: fallback,
	}
}

// Root returns the storage root.
func (r *Resolver) Root() string {
	return r.root
}

// EnsureFallback creates the fallback directory (and the root) if missing.
// It must succeed before uploads are served since every failed creation
// converges on this directory.
func (r *Resolver) EnsureFallback() error {
	dir := filepath.Join(r.root, r.fallback)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating fallback directory: %w", err)
	}
	return nil
}

// Resolve returns the destination directory for hint, creating it when
// absent. Creation is not recursive and never fails the caller: any error
// yields the fallback directory with OutcomeFellBack.
func (r *Resolver) Resolve(hint string) Resolution {
	folder := strings.TrimSpace(hint)
	if folder == "" {
		folder = r.fallback
	}

	savePath := filepath.Join(r.root, folder)
	rel, err := filepath.Rel(r.root, savePath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return r.fellBack(fmt.Errorf("%w: %q", ErrOutsideRoot, folder))
	}

	// Existing entries are trusted as directories.
	if _, err := os.Stat(savePath); err == nil {
		return Resolution{Path: savePath, Folder: filepath.ToSlash(rel), Outcome: OutcomeExisting}
	}

	if err := os.Mkdir(savePath, 0755); err != nil {
		return r.fellBack(fmt.Errorf("creating %s: %w", savePath, err))
	}

	return Resolution{Path: savePath, Folder: filepath.ToSlash(rel), Outcome: OutcomeCreated}
}

func (r *Resolver) fellBack(reason error) Resolution {
	return Resolution{
		Path:    filepath.Join(r.root, r.fallback),
		Folder:  filepath.ToSlash(filepath.Clean(r.fallback)),
		Outcome: OutcomeFellBack,
		Reason:  reason,
	}
}
