// Package storage persists uploaded media and generated documents under a
// single media root.
package storage

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/annavoronova/recipebook/internal/apperr"
	"github.com/google/uuid"
)

const dataImagePrefix = "data:image/"

type MediaStore struct {
	root string
}

func NewMediaStore(root string) *MediaStore {
	return &MediaStore{root: root}
}

func (s *MediaStore) Root() string { return s.root }

// SaveImage decodes a "data:image/<ext>;base64,<payload>" string into a file
// named by a fresh uuid with the original extension, returning the path
// relative to the media root. Values that are not data URLs are treated as
// references to already-stored images and returned unchanged.
func (s *MediaStore) SaveImage(data string) (string, error) {
	if !strings.HasPrefix(data, dataImagePrefix) {
		return data, nil
	}

	header, payload, ok := strings.Cut(data, ";base64,")
	if !ok {
		return "", apperr.New(apperr.CodeInvalidArgument, "image", "image must be base64-encoded")
	}
	ext := strings.TrimPrefix(header, dataImagePrefix)
	if ext == "" {
		return "", apperr.New(apperr.CodeInvalidArgument, "image", "image type is missing")
	}

	content, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", apperr.Wrap(apperr.CodeInvalidArgument, "image", "image payload is not valid base64", err)
	}

	rel := filepath.Join("images", uuid.NewString()+"."+ext)
	abs := filepath.Join(s.root, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := os.WriteFile(abs, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	return rel, nil
}

// DocumentPath returns the absolute path for a generated document, creating
// the containing directory.
func (s *MediaStore) DocumentPath(filename string) (string, error) {
	dir := filepath.Join(s.root, "pdf")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create document directory: %w", err)
	}
	return filepath.Join(dir, filename), nil
}
