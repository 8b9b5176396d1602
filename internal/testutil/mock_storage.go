// mock_storage.go - Mock store and ledger implementations for testing
package testutil

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/resource-uploader/backend/internal/models"
	"github.com/resource-uploader/backend/internal/storage"
)

// MockStorage implements storage.Store in memory
type MockStorage struct {
	mu       sync.Mutex
	fileData map[string][]byte // public path -> content
	saves    int

	// SaveErr, when set, is returned by Save after the destination resolves.
	SaveErr error
	// Outcome is reported on every Resolution.
	Outcome storage.Outcome
}

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		fileData: make(map[string][]byte),
	}
}

func (m *MockStorage) Save(folderHint, originalName string, r io.Reader) (*models.StoredFile, storage.Resolution, error) {
	res := storage.Resolution{Path: "/mock/" + folderHint, Folder: folderHint, Outcome: m.Outcome}
	if m.Outcome == storage.OutcomeFellBack {
		res.Reason = errors.New("mock fallback")
	}
	if m.SaveErr != nil {
		return nil, res, m.SaveErr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, res, err
	}

	now := time.Now()
	name := storage.GenerateName(now, originalName)
	file := &models.StoredFile{
		OriginalName: originalName,
		FileSize:     int64(len(data)),
		FilePath:     "/resource/" + folderHint + "/" + name,
		StoredName:   name,
		Folder:       folderHint,
		FellBack:     m.Outcome == storage.OutcomeFellBack,
		StoredAt:     now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.fileData[file.FilePath] = data
	m.saves++

	return file, res, nil
}

func (m *MockStorage) Root() string {
	return "/mock"
}

// Saves returns how many files were written
func (m *MockStorage) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Data returns the content stored at a public path
func (m *MockStorage) Data(filePath string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.fileData[filePath]
	return data, ok
}

// MockLedger implements upload.Ledger in memory
type MockLedger struct {
	mu      sync.Mutex
	records []*models.UploadRecord

	RecordErr error
	RecentErr error
}

// NewMockLedger creates an empty ledger
func NewMockLedger() *MockLedger {
	return &MockLedger{}
}

func (l *MockLedger) Record(_ context.Context, rec *models.UploadRecord) error {
	if l.RecordErr != nil {
		return l.RecordErr
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, rec)
	return nil
}

func (l *MockLedger) Recent(_ context.Context, limit int) ([]*models.UploadRecord, error) {
	if l.RecentErr != nil {
		return nil, l.RecentErr
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	list := append([]*models.UploadRecord(nil), l.records...)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].StoredAt.After(list[j].StoredAt)
	})
	if limit >= 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// Records returns everything recorded so far
func (l *MockLedger) Records() []*models.UploadRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*models.UploadRecord(nil), l.records...)
}
