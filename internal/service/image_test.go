// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uploadRequest builds a multipart request carrying a single file field.
func uploadRequest(t *testing.T, field, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	file, header, err := req.FormFile(field)
	require.NoError(t, err)
	return file, header
}

func TestImageServiceSave(t *testing.T) {
	dir := t.TempDir()
	svc := NewImageService(dir)

	file, header := uploadRequest(t, "image", "photo.PNG", []byte("png-bytes"))
	defer file.Close()

	url, err := svc.Save(file, header)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, PublicUploadPrefix+"/"), "url %q", url)
	assert.True(t, strings.HasSuffix(url, ".png"), "extension should be lowercased: %q", url)

	name := filepath.Base(url)
	// 32 hex chars plus the extension.
	assert.Len(t, strings.TrimSuffix(name, ".png"), 32)
	assert.NotEqual(t, "photo.png", name, "stored name must not come from the client")

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestImageServiceRejectsExtension(t *testing.T) {
	dir := t.TempDir()
	svc := NewImageService(dir)

	for _, filename := range []string{"script.exe", "page.html", "noext", "archive.tar.xz"} {
		file, header := uploadRequest(t, "image", filename, []byte("data"))
		_, err := svc.Save(file, header)
		file.Close()
		assert.Error(t, err, "expected rejection for %q", filename)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected uploads must not leave files behind")
}

func TestImageServiceResolve(t *testing.T) {
	dir := t.TempDir()
	svc := NewImageService(dir)

	t.Run("upload wins over url text", func(t *testing.T) {
		file, header := uploadRequest(t, "image", "a.jpg", []byte("jpg"))
		defer file.Close()

		url, err := svc.Resolve(file, header, "https://example.com/x.png", "/static/uploads/old.png")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(url, PublicUploadPrefix+"/"))
	})

	t.Run("url text used when no file", func(t *testing.T) {
		url, err := svc.Resolve(nil, nil, "  https://example.com/x.png  ", "/static/uploads/old.png")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/x.png", url)
	})

	t.Run("existing kept when nothing supplied", func(t *testing.T) {
		url, err := svc.Resolve(nil, nil, "", "/static/uploads/old.png")
		require.NoError(t, err)
		assert.Equal(t, "/static/uploads/old.png", url)
	})

	t.Run("empty stays empty", func(t *testing.T) {
		url, err := svc.Resolve(nil, nil, "", "")
		require.NoError(t, err)
		assert.Equal(t, "", url)
	})
}
