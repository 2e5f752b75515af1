// Package uploads stores submitted files under the configured upload
// dir and maps storage keys to the URLs the server serves them from.
package uploads

import (
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"eventgallery/config"
)

func EnsureDir() error {
	return os.MkdirAll(config.UploadDir(), 0755)
}

func KeyFor(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return uuid.NewString() + ext
}

func PathFor(key string) string {
	return filepath.Join(config.UploadDir(), key)
}

func URLFor(key string) string {
	return "/uploads/" + key
}

// SaveMultipart writes an uploaded file to disk and returns its key.
func SaveMultipart(header *multipart.FileHeader) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	key := KeyFor(header.Filename)
	dst, err := os.Create(PathFor(key))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(PathFor(key))
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return key, nil
}

// SaveBytes writes an already-read upload under key.
func SaveBytes(key string, data []byte) error {
	if err := os.WriteFile(PathFor(key), data, 0644); err != nil {
		return fmt.Errorf("failed to write upload file: %w", err)
	}
	return nil
}

// SaveJPEG encodes img under key, used for generated thumbnails.
func SaveJPEG(img image.Image, key string) error {
	dst, err := os.Create(PathFor(key))
	if err != nil {
		return fmt.Errorf("failed to create thumbnail file: %w", err)
	}
	defer dst.Close()

	if err := jpeg.Encode(dst, img, &jpeg.Options{Quality: 85}); err != nil {
		os.Remove(PathFor(key))
		return fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return nil
}

func Remove(key string) {
	if key != "" {
		os.Remove(PathFor(key))
	}
}
