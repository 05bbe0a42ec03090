package storage

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/unimag/portal/internal/core/domain"
	"github.com/unimag/portal/internal/core/ports"
)

func newTestStore(t *testing.T, maxBytes int64) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(t.TempDir(), maxBytes)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func upload(contentType, body string) *ports.FileUpload {
	return &ports.FileUpload{
		Name:        "essay" + allowedTypes[contentType],
		ContentType: contentType,
		Size:        int64(len(body)),
		Reader:      strings.NewReader(body),
	}
}

func TestLocalStore_Save(t *testing.T) {
	store := newTestStore(t, 1024)

	stored, err := store.Save(context.Background(), "user_1", upload("application/pdf", "pdf bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(stored.RelPath, "user_1"+string(os.PathSeparator)) {
		t.Errorf("path must live under the owner directory, got %q", stored.RelPath)
	}
	if !strings.HasSuffix(stored.RelPath, ".pdf") {
		t.Errorf("extension must follow the content type, got %q", stored.RelPath)
	}
	if stored.Size != int64(len("pdf bytes")) {
		t.Errorf("size: expected %d, got %d", len("pdf bytes"), stored.Size)
	}

	abs, err := store.Resolve(stored.RelPath)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "pdf bytes" {
		t.Errorf("stored bytes differ: %q", data)
	}
}

func TestLocalStore_ContentAddressedPathIsStable(t *testing.T) {
	store := newTestStore(t, 1024)

	first, err := store.Save(context.Background(), "user_1", upload("application/pdf", "same bytes"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.Save(context.Background(), "user_1", upload("application/pdf", "same bytes"))
	if err != nil {
		t.Fatal(err)
	}

	if first.RelPath != second.RelPath || first.SHA256 != second.SHA256 {
		t.Errorf("identical bytes must land on the same path: %q vs %q", first.RelPath, second.RelPath)
	}

	different, err := store.Save(context.Background(), "user_1", upload("application/pdf", "other bytes"))
	if err != nil {
		t.Fatal(err)
	}
	if different.RelPath == first.RelPath {
		t.Error("different bytes must land on a different path")
	}
}

func TestLocalStore_RejectsUnsupportedType(t *testing.T) {
	store := newTestStore(t, 1024)

	_, err := store.Save(context.Background(), "user_1", &ports.FileUpload{
		Name:        "malware.exe",
		ContentType: "application/x-msdownload",
		Size:        10,
		Reader:      strings.NewReader("MZ........"),
	})
	if !errors.Is(err, domain.ErrUnsupportedFileType) {
		t.Errorf("expected ErrUnsupportedFileType, got %v", err)
	}
}

func TestLocalStore_RejectsOversize(t *testing.T) {
	store := newTestStore(t, 8)

	// Declared size over the cap.
	_, err := store.Save(context.Background(), "user_1", upload("application/pdf", "123456789"))
	if !errors.Is(err, domain.ErrFileTooLarge) {
		t.Errorf("declared oversize: expected ErrFileTooLarge, got %v", err)
	}

	// Declared size lies; the copy still enforces the cap.
	_, err = store.Save(context.Background(), "user_1", &ports.FileUpload{
		Name:        "big.pdf",
		ContentType: "application/pdf",
		Size:        1,
		Reader:      strings.NewReader("more than eight bytes"),
	})
	if !errors.Is(err, domain.ErrFileTooLarge) {
		t.Errorf("undeclared oversize: expected ErrFileTooLarge, got %v", err)
	}
}

func TestLocalStore_Delete(t *testing.T) {
	store := newTestStore(t, 1024)

	stored, err := store.Save(context.Background(), "user_1", upload("image/png", "png bytes"))
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(context.Background(), stored.RelPath); err != nil {
		t.Fatalf("delete: %v", err)
	}

	abs, _ := store.Resolve(stored.RelPath)
	if _, err := os.Stat(abs); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("file must be gone, stat: %v", err)
	}

	// Deleting an already-absent path is not an error.
	if err := store.Delete(context.Background(), stored.RelPath); err != nil {
		t.Errorf("double delete must be tolerated: %v", err)
	}
}

func TestLocalStore_ResolveRejectsEscape(t *testing.T) {
	store := newTestStore(t, 1024)

	for _, p := range []string{"../outside.pdf", "user_1/../../etc/passwd"} {
		if _, err := store.Resolve(p); err == nil {
			t.Errorf("%q: expected escape rejection", p)
		}
	}
}
