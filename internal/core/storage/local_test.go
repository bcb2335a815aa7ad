package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"automarket/internal/core/config"
)

func TestLocalPut(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocal(dir, "/images")
	require.NoError(t, err)

	url, err := s.Put(context.Background(), "listings/abc.jpg", strings.NewReader("jpeg-bytes"), 10, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/images/listings/abc.jpg", url)

	b, err := os.ReadFile(filepath.Join(dir, "listings", "abc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(b))
}

func TestLocalPutStaysInsideBase(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocal(filepath.Join(dir, "public"), "/images/")
	require.NoError(t, err)

	url, err := s.Put(context.Background(), "../../etc/passwd", strings.NewReader("x"), 1, "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "/images/etc/passwd", url)
	_, err = os.Stat(filepath.Join(dir, "public", "etc", "passwd"))
	assert.NoError(t, err)
}

func TestNewUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), config.Storage{Driver: "ftp"}, t.TempDir())
	assert.Error(t, err)

	st, err := New(context.Background(), config.Storage{Driver: "local", PublicURL: "/images"}, t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &Local{}, st)
}
