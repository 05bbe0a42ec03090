// Package storage persists uploaded submission files on local disk.
//
// Files are content-addressed: the stored name is the SHA-256 of the bytes,
// computed before the database row is written. Re-uploading identical bytes
// for the same owner lands on the same path, which makes the upload phase of
// submission creation idempotent and retry-safe.
package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/unimag/portal/internal/core/domain"
	"github.com/unimag/portal/internal/core/ports"
)

// allowedTypes maps accepted MIME types to the stored file extension.
var allowedTypes = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// LocalStore is a FileStore rooted at a single directory, one subdirectory
// per owner.
type LocalStore struct {
	root     string
	maxBytes int64
}

func NewLocalStore(root string, maxBytes int64) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage root: %w", err)
	}
	return &LocalStore{root: root, maxBytes: maxBytes}, nil
}

func (s *LocalStore) Save(ctx context.Context, ownerID string, upload *ports.FileUpload) (*ports.StoredFile, error) {
	ext, ok := allowedTypes[upload.ContentType]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if upload.Size > s.maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	dir := filepath.Join(s.root, ownerID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage dir: %w", err)
	}

	// Write to a temp file while hashing, then rename onto the hash-named
	// path. The size cap is enforced during the copy as well: the multipart
	// header size is client-supplied.
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("storage temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	h := sha256.New()
	n, err := io.Copy(io.MultiWriter(tmp, h), io.LimitReader(upload.Reader, s.maxBytes+1))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("storage write: %w", err)
	}
	if n > s.maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	sum := hex.EncodeToString(h.Sum(nil))
	relPath := filepath.Join(ownerID, sum+ext)
	if err := os.Rename(tmp.Name(), filepath.Join(s.root, relPath)); err != nil {
		return nil, fmt.Errorf("storage rename: %w", err)
	}

	return &ports.StoredFile{
		RelPath:     relPath,
		SHA256:      sum,
		ContentType: upload.ContentType,
		Size:        n,
	}, nil
}

func (s *LocalStore) Delete(ctx context.Context, relPath string) error {
	abs, err := s.Resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage delete: %w", err)
	}
	return nil
}

// Resolve maps a stored relative path to an absolute path, rejecting any
// path that escapes the storage root.
func (s *LocalStore) Resolve(relPath string) (string, error) {
	abs := filepath.Join(s.root, relPath)
	if !strings.HasPrefix(abs, filepath.Clean(s.root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("storage resolve: path escapes root")
	}
	return abs, nil
}
