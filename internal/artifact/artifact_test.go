package artifact

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryFileName(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"linux", "librectangular_promotion.so"},
		{"freebsd", "librectangular_promotion.so"},
		{"darwin", "librectangular_promotion.dylib"},
		{"windows", "rectangular_promotion.dll"},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			assert.Equal(t, tt.want, LibraryFileName("rectangular_promotion", tt.goos))
		})
	}
}

func TestReleasePath(t *testing.T) {
	got := ReleasePath(filepath.Join("/src", "target"), "rectangular_promotion", "linux")
	assert.Equal(t, filepath.Join("/src", "target", "release", "librectangular_promotion.so"), got)
}

func TestSumFileMatchesSum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.so")
	require.NoError(t, os.WriteFile(path, []byte("\x7fELF payload"), 0o600))

	fromFile, n, err := SumFile(path)
	require.NoError(t, err)
	assert.EqualValues(t, 12, n)

	fromReader, _, err := Sum(strings.NewReader("\x7fELF payload"))
	require.NoError(t, err)
	assert.Equal(t, fromReader, fromFile)
	assert.False(t, fromFile.IsZero())
	assert.Len(t, fromFile.String(), 64)
	assert.Equal(t, fromFile.String()[:12], fromFile.Short())

	other, _, err := Sum(strings.NewReader("\x7fELF payloaD"))
	require.NoError(t, err)
	assert.NotEqual(t, fromFile, other)
}

func TestSumFileMissing(t *testing.T) {
	_, _, err := SumFile(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDigestOfEmptyInput(t *testing.T) {
	d, n, err := Sum(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, n)
	// BLAKE3 of the empty string.
	assert.Equal(t, "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262", d.String())
}
