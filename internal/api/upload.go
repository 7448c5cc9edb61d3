package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/Ibrohimov-Zafar/DevVibe/internal/notify"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/storage"
)

const maxUploadBytes = 10 << 20

var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func (a *API) upload(w http.ResponseWriter, r *http.Request) {
	if a.uploads == nil {
		writeError(w, http.StatusInternalServerError, "File uploads are not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusBadRequest, "File is larger than 10MB")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close() //nolint:errcheck

	if header.Size > maxUploadBytes {
		writeError(w, http.StatusBadRequest, "File is larger than 10MB")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		serverError(w, "Failed to read file", err)
		return
	}

	// Trust the bytes, not the client's Content-Type.
	contentType := http.DetectContentType(data)
	ext, ok := imageTypes[contentType]
	if !ok {
		writeError(w, http.StatusBadRequest, "Only JPEG, PNG, GIF and WebP images are allowed")
		return
	}
	key := storage.NewKey("upload" + ext)
	url, err := a.uploads.Upload(r.Context(), key, contentType, bytes.NewReader(data))
	if err != nil {
		serverError(w, "Failed to upload file", err)
		return
	}

	a.events.Publish(notify.Event{Resource: "uploads", Action: notify.ActionCreated})
	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Data:    map[string]string{"url": url, "key": key},
		Message: "File uploaded successfully",
	})
}

func (a *API) deleteUpload(w http.ResponseWriter, r *http.Request) {
	if a.uploads == nil {
		writeError(w, http.StatusInternalServerError, "File uploads are not configured")
		return
	}

	key := r.URL.Query().Get("key")
	if !storage.OwnsKey(key) {
		writeError(w, http.StatusBadRequest, "Invalid file key")
		return
	}
	if err := a.uploads.Delete(r.Context(), key); err != nil {
		serverError(w, "Failed to delete file", err)
		return
	}

	a.events.Publish(notify.Event{Resource: "uploads", Action: notify.ActionDeleted})
	writeMessage(w, http.StatusOK, "File deleted successfully")
}
