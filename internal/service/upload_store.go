package service

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// UploadStore guarda imágenes subidas bajo un directorio público que el
// servidor expone en /uploads.
type UploadStore struct {
	dir string
}

func NewUploadStore(dir string) (*UploadStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &UploadStore{dir: dir}, nil
}

// Save decodifica la imagen y la escribe como <chatID>-<timestamp>.<ext>.
// Devuelve la ruta pública (/uploads/...) con la que se sirve de vuelta.
func (s *UploadStore) Save(chatID, imageBase64, mime string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	ext := "jpg"
	if strings.Contains(mime, "png") {
		ext = "png"
	}
	name := fmt.Sprintf("%s-%d.%s", chatID, time.Now().UnixMilli(), ext)

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return "/uploads/" + name, nil
}
