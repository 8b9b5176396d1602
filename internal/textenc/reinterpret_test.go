package textenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

// mojibake returns what a Latin-1 decoding transport makes of a UTF-8 name.
func mojibake(t *testing.T, s string) string {
	t.Helper()
	out, err := charmap.ISO8859_1.NewDecoder().String(s)
	require.NoError(t, err)
	return out
}

func TestReinterpret(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		want         string
		wantRepaired bool
	}{
		{"chinese name", "å¤´å\u0083\u008f.png", "头像.png", true},
		{"accented name", "cafÃ©.txt", "café.txt", true},
		{"plain ascii", "a.txt", "a.txt", false},
		{"already utf8", "头像.png", "头像.png", false},
		{"lone latin1 byte", "café.txt", "café.txt", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, repaired := Reinterpret(tt.input, Latin1)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantRepaired, repaired)
		})
	}
}

func TestRepairFilename_RoundTrip(t *testing.T) {
	for _, name := range []string{"头像.png", "отчёт.pdf", "naïve résumé.doc", "emoji-😀.gif"} {
		assert.Equal(t, name, RepairFilename(mojibake(t, name)), name)
	}
}
