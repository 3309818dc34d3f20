package library_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vsariola/strum/library"
)

func TestOpenSource(t *testing.T) {
	src, err := library.OpenSource("https://example.com/samples", "", "")
	if err != nil {
		t.Fatalf("OpenSource failed: %v", err)
	}
	if _, ok := src.(*library.HTTPSource); !ok {
		t.Fatalf("expected an HTTPSource for a URL, got %T", src)
	}
	dir := t.TempDir()
	if src, err = library.OpenSource(dir, "", ""); err != nil {
		t.Fatalf("OpenSource failed: %v", err)
	}
	if _, ok := src.(library.DirSource); !ok {
		t.Fatalf("expected a DirSource for a directory, got %T", src)
	}
	file := filepath.Join(dir, "file.mp3")
	os.WriteFile(file, []byte("x"), 0o644)
	if _, err := library.OpenSource(file, "", ""); !errors.Is(err, library.ErrNotDirectory) {
		t.Fatalf("expected ErrNotDirectory, got %v", err)
	}
	if _, err := library.OpenSource(filepath.Join(dir, "missing"), "", ""); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}
