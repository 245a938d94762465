// Package testutil holds helpers shared by package tests.
package testutil

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"testing"
)

// FileHeader builds a parsed multipart file header holding content
func FileHeader(t testing.TB, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	body, boundary := MultipartBody(t, nil, "file", filename, contentType, content)
	form, err := multipart.NewReader(body, boundary).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("FileHeader() failed: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	if len(files) != 1 {
		t.Fatalf("FileHeader() expected 1 file, got %d", len(files))
	}
	return files[0]
}

// MultipartBody encodes fields plus one file part and returns the body and its boundary
func MultipartBody(t testing.TB, fields map[string]string, fileField, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("MultipartBody() failed: %v", err)
		}
	}

	if fileField != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, filename))
		if contentType != "" {
			h.Set("Content-Type", contentType)
		}
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("MultipartBody() failed: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("MultipartBody() failed: %v", err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatalf("MultipartBody() failed: %v", err)
	}
	return &buf, w.Boundary()
}
