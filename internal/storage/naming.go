package storage

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Namer generates the on-disk name of an upload.
type Namer interface {
	Name(now time.Time, originalName string) string
}

// TimestampNamer names files "<unix millis>.<extension>". Two uploads in the
// same millisecond with the same extension get the same name.
type TimestampNamer struct{}

// Name implements Namer.
func (TimestampNamer) Name(now time.Time, originalName string) string {
	return GenerateName(now, originalName)
}

// UUIDNamer names files "<uuid>.<extension>".
type UUIDNamer struct{}

// Name implements Namer.
func (UUIDNamer) Name(_ time.Time, originalName string) string {
	return uuid.NewString() + "." + Extension(originalName)
}

// NamerFor returns the namer registered under strategy, defaulting to
// TimestampNamer for unknown values.
func NamerFor(strategy string) Namer {
	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case "uuid":
		return UUIDNamer{}
	default:
		return TimestampNamer{}
	}
}

// GenerateName returns "<unix millis>.<extension>" for originalName.
func GenerateName(now time.Time, originalName string) string {
	return strconv.FormatInt(now.UnixMilli(), 10) + "." + Extension(originalName)
}

// Extension returns the text after the last '.' in name, or "" when name
// has no dot. The result is not sanitized.
func Extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return name[i+1:]
}
