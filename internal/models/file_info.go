package models

import "time"

// StoredFile describes an upload after it has been written to disk.
// Only the first three fields are part of the upload response body.
type StoredFile struct {
	OriginalName string `json:"originalName"`
	FileSize     int64  `json:"fileSize"`
	FilePath     string `json:"filePath"`

	StoredName string    `json:"-"`
	DiskPath   string    `json:"-"`
	Folder     string    `json:"-"`
	FellBack   bool      `json:"-"`
	StoredAt   time.Time `json:"-"`
}
