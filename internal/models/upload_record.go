package models

import "time"

// UploadRecord is a ledger row for one stored upload.
type UploadRecord struct {
	ID           string    `json:"id" msgpack:"id"`
	OriginalName string    `json:"originalName" msgpack:"originalName"`
	StoredName   string    `json:"storedName" msgpack:"storedName"`
	Folder       string    `json:"folder" msgpack:"folder"`
	FilePath     string    `json:"filePath" msgpack:"filePath"`
	FileSize     int64     `json:"fileSize" msgpack:"fileSize"`
	FellBack     bool      `json:"fellBack" msgpack:"fellBack"`
	StoredAt     time.Time `json:"storedAt" msgpack:"storedAt"`
}

// NewUploadRecord builds a ledger row from a stored file.
func NewUploadRecord(id string, f *StoredFile) *UploadRecord {
	return &UploadRecord{
		ID:           id,
		OriginalName: f.OriginalName,
		StoredName:   f.StoredName,
		Folder:       f.Folder,
		FilePath:     f.FilePath,
		FileSize:     f.FileSize,
		FellBack:     f.FellBack,
		StoredAt:     f.StoredAt,
	}
}
