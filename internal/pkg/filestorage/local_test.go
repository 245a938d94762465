package filestorage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/edutube/internal/pkg/testutil"
)

func TestLocalStorage_SaveAndDelete(t *testing.T) {
	root := t.TempDir()
	ls, err := NewLocalStorage(root, "/uploads/")
	require.NoError(t, err)

	fh := testutil.FileHeader(t, "Lecture 1.MP4", "video/mp4", []byte("fake video bytes"))

	stored, err := ls.Save(fh, "videos")
	require.NoError(t, err)

	assert.Equal(t, "Lecture 1.MP4", stored.OriginalFilename)
	assert.True(t, strings.HasSuffix(stored.Filename, ".mp4"))
	assert.Equal(t, "videos/"+stored.Filename, stored.Path)
	assert.Equal(t, "/uploads/videos/"+stored.Filename, stored.URL)
	assert.Equal(t, int64(len("fake video bytes")), stored.Size)
	assert.Equal(t, "video/mp4", stored.ContentType)

	data, err := os.ReadFile(filepath.Join(root, "videos", stored.Filename))
	require.NoError(t, err)
	assert.Equal(t, "fake video bytes", string(data))

	require.NoError(t, ls.Delete(stored.Path))
	_, err = os.Stat(filepath.Join(root, "videos", stored.Filename))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, ls.Delete(stored.Path), "deleting twice is not an error")
}

func TestLocalStorage_SubDirCannotEscapeRoot(t *testing.T) {
	root := t.TempDir()
	ls, err := NewLocalStorage(filepath.Join(root, "store"), "/uploads")
	require.NoError(t, err)

	stored, err := ls.Save(testutil.FileHeader(t, "../../evil.txt", "text/plain", []byte("x")), "../../outside")
	require.NoError(t, err)

	assert.Equal(t, "evil.txt", stored.OriginalFilename)
	assert.Equal(t, "outside/"+stored.Filename, stored.Path)
	_, err = os.Stat(filepath.Join(root, "store", "outside", stored.Filename))
	assert.NoError(t, err)
}

func TestDetectContentType(t *testing.T) {
	withHeader := testutil.FileHeader(t, "notes.bin", "application/pdf; charset=binary", []byte("x"))
	assert.Equal(t, "application/pdf", DetectContentType(withHeader))

	byExt := testutil.FileHeader(t, "notes.pdf", "", []byte("x"))
	assert.Equal(t, "application/pdf", DetectContentType(byExt))
}
