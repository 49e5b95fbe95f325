package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	t.Parallel()

	wd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, "/var/data/videos", ResolvePath("/var/data//videos/"))
	assert.Equal(t, "/var/data", ResolvePath("/var/data/videos/.."))
	assert.Equal(t, filepath.Join(wd, "data", "videos"), ResolvePath("data/videos"))
	assert.Equal(t, filepath.Join(wd, "data"), ResolvePath("./data"))
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain name", "clip.mp4", "clip.mp4"},
		{"unix path stripped", "/tmp/evil/clip.mp4", "clip.mp4"},
		{"windows path stripped", `C:\Users\evil\clip.mp4`, "clip.mp4"},
		{"parent traversal stripped", "../../etc/passwd.mp4", "passwd.mp4"},
		{"empty falls back", "", DefaultVideoFilename},
		{"whitespace falls back", "   ", DefaultVideoFilename},
		{"bare dot falls back", ".", DefaultVideoFilename},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SanitizeFilename(tc.input))
		})
	}
}

func TestHasMP4Signature(t *testing.T) {
	t.Parallel()

	valid := []byte{0x00, 0x00, 0x00, 0x12, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm'}
	assert.True(t, HasMP4Signature(valid))

	assert.False(t, HasMP4Signature(valid[:11]), "short header")
	assert.False(t, HasMP4Signature([]byte("this is not an mp4 at all..")), "wrong magic")
	assert.False(t, HasMP4Signature(nil))

	// The box size bytes before "ftyp" do not matter.
	valid[0], valid[1], valid[2], valid[3] = 0xff, 0xff, 0xff, 0xff
	assert.True(t, HasMP4Signature(valid))
}
