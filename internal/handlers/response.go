package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/Dias221467/tagwish/internal/repository"
	"github.com/Dias221467/tagwish/internal/services"
	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
)

// DefaultMaxUploadBytes caps photo uploads when no limit is configured.
const DefaultMaxUploadBytes = 10 << 20

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps service and store errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrWishNotFound):
		writeError(w, http.StatusNotFound, "Wish not found")
	case errors.Is(err, repository.ErrInvalidTransition):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrEmptyMessage), errors.Is(err, services.ErrInvalidRole):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logrus.WithError(err).Error("Unhandled service error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// readImageUpload reads the "file" part of a multipart request and checks that it is an image.
func readImageUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) ([]byte, bool) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "File too big or invalid format")
		return nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing file in request")
		return nil, false
	}
	defer file.Close()

	if header.Size > maxBytes {
		writeError(w, http.StatusBadRequest, "File too big")
		return nil, false
	}
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read file")
		return nil, false
	}

	if !strings.HasPrefix(mimetype.Detect(data).String(), "image/") {
		writeError(w, http.StatusBadRequest, "Only image uploads are allowed")
		return nil, false
	}
	return data, true
}
