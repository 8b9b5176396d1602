package storage

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateName(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	tests := []struct {
		original string
		want     string
	}{
		{"a.txt", "1700000000123.txt"},
		{"头像.png", "1700000000123.png"},
		{"archive.tar.gz", "1700000000123.gz"},
		{".bashrc", "1700000000123.bashrc"},
		{"trailing.", "1700000000123."},
		{"README", "1700000000123."},
		{"", "1700000000123."},
	}

	for _, tt := range tests {
		t.Run(tt.original, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateName(now, tt.original))
		})
	}
}

func TestGenerateName_SameMillisecondCollides(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	later := now.Add(999 * time.Microsecond)

	assert.Equal(t, GenerateName(now, "one.jpg"), GenerateName(later, "two.jpg"))
	assert.NotEqual(t, GenerateName(now, "one.jpg"), GenerateName(now.Add(time.Millisecond), "one.jpg"))
}

func TestExtension_NotSanitized(t *testing.T) {
	assert.Equal(t, "p/ng", Extension("x.p/ng"))
	assert.Equal(t, "", Extension("noext"))
}

func TestNamerFor(t *testing.T) {
	assert.IsType(t, TimestampNamer{}, NamerFor(""))
	assert.IsType(t, TimestampNamer{}, NamerFor("timestamp"))
	assert.IsType(t, TimestampNamer{}, NamerFor("bogus"))
	assert.IsType(t, UUIDNamer{}, NamerFor(" UUID "))
}

func TestUUIDNamer(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.png$`)
	now := time.Now()

	first := UUIDNamer{}.Name(now, "a.png")
	second := UUIDNamer{}.Name(now, "a.png")

	assert.Regexp(t, pattern, first)
	assert.NotEqual(t, first, second)
}
