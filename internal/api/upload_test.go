package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ibrohimov-Zafar/DevVibe/internal/storage"
)

type fakeUploader struct {
	key         string
	contentType string
	body        []byte
	deleted     []string
}

func (f *fakeUploader) Upload(_ context.Context, key, contentType string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.key, f.contentType, f.body = key, contentType, data
	return "https://cdn.example.com/" + key, nil
}

func (f *fakeUploader) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func multipartRequest(t *testing.T, field, filename string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUpload(t *testing.T) {
	up := &fakeUploader{}
	env := newTestEnv(t, func(o *Options) { o.Uploads = up })

	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, multipartRequest(t, "file", "avatar.png", pngHeader))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	assert.True(t, strings.HasPrefix(up.key, storage.KeyPrefix))
	assert.True(t, strings.HasSuffix(up.key, ".png"))
	assert.Equal(t, "image/png", up.contentType)
	assert.Equal(t, pngHeader, up.body)
	assert.Contains(t, rec.Body.String(), "https://cdn.example.com/"+up.key)
}

func TestUpload_Rejects(t *testing.T) {
	up := &fakeUploader{}
	env := newTestEnv(t, func(o *Options) { o.Uploads = up })

	t.Run("not an image", func(t *testing.T) {
		rec := httptest.NewRecorder()
		env.handler.ServeHTTP(rec, multipartRequest(t, "file", "notes.png", []byte("plain text")))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong field", func(t *testing.T) {
		rec := httptest.NewRecorder()
		env.handler.ServeHTTP(rec, multipartRequest(t, "image", "a.png", pngHeader))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("too large", func(t *testing.T) {
		big := append(append([]byte{}, pngHeader...), make([]byte, maxUploadBytes+1)...)
		rec := httptest.NewRecorder()
		env.handler.ServeHTTP(rec, multipartRequest(t, "file", "big.png", big))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	assert.Empty(t, up.key)
}

func TestUpload_NotConfigured(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, multipartRequest(t, "file", "a.png", pngHeader))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDeleteUpload(t *testing.T) {
	up := &fakeUploader{}
	env := newTestEnv(t, func(o *Options) { o.Uploads = up })

	key := storage.NewKey("avatar.png")
	rec, res := env.do(t, http.MethodDelete, "/api/uploads?key="+key, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "File deleted successfully", res.Message)
	assert.Equal(t, []string{key}, up.deleted)

	for _, bad := range []string{"", "avatar.png", "uploads/", "uploads/a/b.png", "uploads/..%2Fsecret", "other/a.png"} {
		rec, res := env.do(t, http.MethodDelete, "/api/uploads?key="+bad, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, bad)
		assert.Equal(t, "Invalid file key", res.Error)
	}
	assert.Len(t, up.deleted, 1)

	rec, _ = newTestEnv(t).do(t, http.MethodDelete, "/api/uploads?key="+key, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
