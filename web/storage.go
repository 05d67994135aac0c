package web

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadInfo describes an uploaded video file.
type UploadInfo struct {
	Filename    string
	ContentType string
	Size        int64
}

// Storage persists uploaded videos.
type Storage interface {
	SaveUpload(file multipart.File, info UploadInfo) (string, error)
	Path(name string) (string, error)
	Delete(name string) error
}

// LocalStorage stores uploads under a base directory with unique names.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates the base directory and returns a LocalStorage.
func NewLocalStorage(basePath string) (*LocalStorage, error) {

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{basePath: basePath}, nil
}

// SaveUpload writes the uploaded file under a unique name, keeping the
// original extension, and returns the stored file name.
func (ls *LocalStorage) SaveUpload(file multipart.File, info UploadInfo) (string, error) {

	ext := filepath.Ext(info.Filename)

	if ext == "" {
		ext = ".mp4"
	}

	// keep the original stem so pipeline artifacts carry a readable name
	stem := strings.TrimSuffix(filepath.Base(info.Filename), ext)
	name := fmt.Sprintf("%s_%s%s", sanitize(stem), uuid.New().String()[:8], ext)
	fullPath := filepath.Join(ls.basePath, name)

	dst, err := os.Create(fullPath)

	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return name, nil
}

// Path returns the absolute path of a stored file, rejecting path traversal.
func (ls *LocalStorage) Path(name string) (string, error) {

	clean := filepath.Clean(name)

	if strings.Contains(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid path")
	}

	return filepath.Join(ls.basePath, clean), nil
}

// Delete removes a stored file.
func (ls *LocalStorage) Delete(name string) error {

	full, err := ls.Path(name)

	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// sanitize strips characters that are unsafe in file names
func sanitize(s string) string {

	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
