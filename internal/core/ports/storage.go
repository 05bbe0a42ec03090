package ports

import "context"

// StoredFile describes a file persisted by the FileStore.
type StoredFile struct {
	// RelPath is the path stored in the submission row, relative to the
	// storage root: <owner_id>/<sha256>.<ext>.
	RelPath     string
	SHA256      string
	ContentType string
	Size        int64
}

// FileStore persists uploaded files on content-addressed paths. Storing the
// same bytes for the same owner is idempotent: it yields the same path.
type FileStore interface {
	Save(ctx context.Context, ownerID string, upload *FileUpload) (*StoredFile, error)
	// Delete removes a stored file; used as the compensating action when the
	// database insert fails after the file was written.
	Delete(ctx context.Context, relPath string) error
	// Resolve maps a stored relative path to an absolute filesystem path.
	Resolve(relPath string) (string, error)
}
