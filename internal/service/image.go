// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds application services shared between handlers.
package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DefaultUploadDir is where uploaded images land when no directory is
// configured.
const DefaultUploadDir = "./static/uploads"

// PublicUploadPrefix is the URL prefix under which uploads are served.
const PublicUploadPrefix = "/static/uploads"

// allowedExtensions defines the image file extensions that can be
// uploaded, lowercase and including the dot.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
}

// ErrDisallowedExtension is returned when an uploaded file's extension
// is outside the allow-list.
var ErrDisallowedExtension = errors.New("file type not allowed")

// ImageService stores uploaded images and resolves the image reference
// for content forms, where an upload, a pasted URL, or neither may be
// supplied.
type ImageService struct {
	uploadDir string
}

// NewImageService creates an image service writing into uploadDir.
func NewImageService(uploadDir string) *ImageService {
	if uploadDir == "" {
		uploadDir = DefaultUploadDir
	}
	return &ImageService{uploadDir: uploadDir}
}

// Save stores an uploaded image under a random filename and returns its
// public URL path. Files with an extension outside the allow-list are
// rejected without touching the disk.
func (s *ImageService) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: %q", ErrDisallowedExtension, ext)
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}

	name := strings.ReplaceAll(uuid.New().String(), "-", "") + ext
	dst := filepath.Join(s.uploadDir, name)

	// O_EXCL guards against the vanishingly unlikely name collision.
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("writing upload file: %w", err)
	}

	return path.Join(PublicUploadPrefix, name), nil
}

// Resolve decides which image URL a content record ends up with: an
// uploaded file wins, then a pasted URL, then whatever the record
// already had.
func (s *ImageService) Resolve(file multipart.File, header *multipart.FileHeader, urlText, existing string) (string, error) {
	if file != nil && header != nil && header.Filename != "" {
		return s.Save(file, header)
	}
	if strings.TrimSpace(urlText) != "" {
		return strings.TrimSpace(urlText), nil
	}
	return existing, nil
}
