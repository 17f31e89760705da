// Package images stores scene image variants on the local filesystem.
package images

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/immxrtalbeast/frameboard/internal/domain"
)

var (
	ErrInvalidDataURL = errors.New("invalid data url")
	ErrUnknownVariant = errors.New("unknown image variant")
)

var extByMime = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
}

type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// SaveDataURL decodes a base64 data URL and stores it as the scene's image
// variant, returning the storage-relative path. An existing variant file is
// replaced.
func (s *Store) SaveDataURL(sceneID uuid.UUID, variant domain.ImageType, dataURL string) (string, error) {
	if !variant.Valid() {
		return "", ErrUnknownVariant
	}

	mime, payload, err := splitDataURL(dataURL)
	if err != nil {
		return "", err
	}
	ext, ok := extByMime[mime]
	if !ok {
		return "", fmt.Errorf("%w: unsupported media type %q", ErrInvalidDataURL, mime)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}

	rel := filepath.Join(sceneID.String(), fmt.Sprintf("%s.%s", variant, ext))
	abs := filepath.Join(s.dir, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return "", err
	}
	return rel, nil
}

// Save streams raw image bytes (multipart uploads) into the variant file.
func (s *Store) Save(sceneID uuid.UUID, variant domain.ImageType, ext string, r io.Reader) (string, error) {
	if !variant.Valid() {
		return "", ErrUnknownVariant
	}

	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if ext == "" {
		ext = "png"
	}

	rel := filepath.Join(sceneID.String(), fmt.Sprintf("%s.%s", variant, ext))
	abs := filepath.Join(s.dir, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(abs)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(abs)
		return "", err
	}
	return rel, nil
}

// Open returns the stored file for a storage-relative path.
func (s *Store) Open(rel string) (*os.File, error) {
	return os.Open(filepath.Join(s.dir, filepath.Clean(rel)))
}

// Path resolves a storage-relative path to an absolute one.
func (s *Store) Path(rel string) string {
	return filepath.Join(s.dir, filepath.Clean(rel))
}

func (s *Store) Delete(rel string) error {
	return os.Remove(filepath.Join(s.dir, filepath.Clean(rel)))
}

func splitDataURL(dataURL string) (mime string, payload string, err error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", "", ErrInvalidDataURL
	}
	meta, payload, ok := strings.Cut(dataURL[len("data:"):], ",")
	if !ok {
		return "", "", ErrInvalidDataURL
	}
	mime, encoding, ok := strings.Cut(meta, ";")
	if !ok || encoding != "base64" {
		return "", "", ErrInvalidDataURL
	}
	return mime, payload, nil
}
