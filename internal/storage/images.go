package storage

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotDataURI      = errors.New("not a base64 image data URI")
	ErrBadImagePayload = errors.New("invalid base64 image payload")
)

// DecodeDataURI decodes an inline image of the form
// "data:image/<ext>;base64,<payload>" into raw bytes plus the extension
// taken from the MIME subtype.
func DecodeDataURI(s string) ([]byte, string, error) {
	if !strings.HasPrefix(s, "data:image/") {
		return nil, "", ErrNotDataURI
	}
	header, payload, ok := strings.Cut(s, ";base64,")
	if !ok {
		return nil, "", ErrNotDataURI
	}
	ext := strings.TrimPrefix(header, "data:image/")
	if ext == "" || strings.ContainsAny(ext, "/\\.") {
		return nil, "", ErrNotDataURI
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrBadImagePayload, err)
	}
	return data, ext, nil
}

// ImageStore persists recipe images on disk under a single media dir.
type ImageStore struct {
	dir string
}

func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

func (s *ImageStore) Dir() string {
	return s.dir
}

// Save writes data as <uuid>.<ext> and returns the stored filename.
func (s *ImageStore) Save(data []byte, ext string) (string, error) {
	name := fmt.Sprintf("%s.%s", uuid.New().String(), ext)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return name, nil
}

// SaveDataURI decodes a base64 data URI and persists it.
func (s *ImageStore) SaveDataURI(uri string) (string, error) {
	data, ext, err := DecodeDataURI(uri)
	if err != nil {
		return "", err
	}
	return s.Save(data, ext)
}

// SaveUpload persists a multipart file upload, keeping its extension.
func (s *ImageStore) SaveUpload(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	ext := strings.TrimPrefix(filepath.Ext(fh.Filename), ".")
	if ext == "" {
		ext = "bin"
	}
	return s.Save(data, ext)
}

// Remove deletes a stored image; missing files are not an error.
func (s *ImageStore) Remove(name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}
