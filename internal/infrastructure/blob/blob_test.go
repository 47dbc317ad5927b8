package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPut(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	l, err := NewLocal(dir)
	require.NoError(t, err)

	ref, err := l.Put(context.Background(), "photo_abc.jpg", "image/jpeg", strings.NewReader("jpegbytes"), 9)
	require.NoError(t, err)
	assert.Equal(t, "photo_abc.jpg", ref)

	b, err := os.ReadFile(filepath.Join(dir, "photo_abc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpegbytes", string(b))

	// overwriting keeps a single file
	_, err = l.Put(context.Background(), "photo_abc.jpg", "image/jpeg", strings.NewReader("v2"), 2)
	require.NoError(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLocalPutStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir)
	require.NoError(t, err)

	ref, err := l.Put(context.Background(), "../../etc/photo_x.png", "image/png", strings.NewReader("x"), 1)
	require.NoError(t, err)
	assert.Equal(t, "photo_x.png", ref)
	_, err = os.Stat(filepath.Join(dir, "photo_x.png"))
	assert.NoError(t, err)
}
