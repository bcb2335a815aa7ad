package service

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"automarket/internal/core/errs"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// formFiles 经 multipart 编解码得到真实的 FileHeader
func formFiles(t *testing.T, files map[string][]byte) []*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for name, data := range files {
		fw, err := w.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["images"]
}

func TestUploadImages(t *testing.T) {
	store := &memStore{}
	svc := NewUploadService(store, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC) }

	data := pngBytes(t)
	urls, err := svc.Images(ctx(), formFiles(t, map[string][]byte{"a.png": data}))
	require.NoError(t, err)
	require.Len(t, urls, 1)
	assert.True(t, strings.HasPrefix(urls[0], "/images/listings/2025/03/"), urls[0])
	assert.True(t, strings.HasSuffix(urls[0], ".png"))
	assert.Equal(t, data, store.bodies[0], "sniffed bytes are replayed")
}

func TestUploadRejects(t *testing.T) {
	svc := NewUploadService(&memStore{}, zap.NewNop())

	_, err := svc.Images(ctx(), nil)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))

	_, err = svc.Images(ctx(), formFiles(t, map[string][]byte{"a.txt": []byte("hello world")}))
	assert.Equal(t, "Only image files are allowed.", errs.Message(err))

	many := map[string][]byte{}
	data := pngBytes(t)
	for i := 0; i <= MaxUploadFiles; i++ {
		many[string(rune('a'+i))+".png"] = data
	}
	_, err = svc.Images(ctx(), formFiles(t, many))
	assert.Equal(t, "You can upload at most 10 images at once.", errs.Message(err))

	big := formFiles(t, map[string][]byte{"a.png": data})
	big[0].Size = MaxUploadSize + 1
	_, err = svc.Images(ctx(), big)
	assert.Equal(t, "Each image must be 10MB or smaller.", errs.Message(err))
}

func TestUploadStoreFailure(t *testing.T) {
	svc := NewUploadService(&memStore{err: errors.New("bucket gone")}, zap.NewNop())
	_, err := svc.Images(ctx(), formFiles(t, map[string][]byte{"a.png": pngBytes(t)}))
	assert.Equal(t, errs.KindInternal, errs.KindOf(err))
}

func TestUploadOpenWithoutOpener(t *testing.T) {
	svc := NewUploadService(&memStore{}, zap.NewNop())
	_, _, err := svc.Open(ctx(), "abc")
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}
