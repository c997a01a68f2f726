package service

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUploadStore_SaveJpeg(t *testing.T) {
	dir := t.TempDir()
	store, err := NewUploadStore(dir)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	payload := base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))
	path, err := store.Save("chat-1", payload, "image/jpeg")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(path, "/uploads/chat-1-") || !strings.HasSuffix(path, ".jpg") {
		t.Fatalf("unexpected public path: %q", path)
	}

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(path, "/uploads/")))
	if err != nil {
		t.Fatalf("expected file on disk, got %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Fatalf("unexpected file content: %q", data)
	}
}

func TestUploadStore_SavePngExtension(t *testing.T) {
	store, err := NewUploadStore(t.TempDir())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	payload := base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	path, err := store.Save("chat-2", payload, "image/png")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasSuffix(path, ".png") {
		t.Fatalf("expected png extension, got %q", path)
	}
}

func TestUploadStore_InvalidBase64(t *testing.T) {
	store, err := NewUploadStore(t.TempDir())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := store.Save("chat-3", "not base64 at all!!", "image/jpeg"); err == nil {
		t.Fatal("expected decode error")
	}
}
