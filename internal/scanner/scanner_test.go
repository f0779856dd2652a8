package scanner

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("- item\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestMarkdownFiles_SingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	writeFile(t, path)

	files, err := MarkdownFiles(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// An explicit file is imported whatever its extension
	if !reflect.DeepEqual(files, []string{path}) {
		t.Errorf("expected [%s], got %v", path, files)
	}
}

func TestMarkdownFiles_WalksDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.md"))
	writeFile(t, filepath.Join(root, "a.MD"))
	writeFile(t, filepath.Join(root, "sub", "c.md"))
	writeFile(t, filepath.Join(root, "readme.txt"))
	writeFile(t, filepath.Join(root, ".hidden", "d.md"))
	writeFile(t, filepath.Join(root, "node_modules", "e.md"))
	writeFile(t, filepath.Join(root, ".draft.md"))

	files, err := MarkdownFiles(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{
		filepath.Join(root, "a.MD"),
		filepath.Join(root, "b.md"),
		filepath.Join(root, "sub", "c.md"),
	}
	if !reflect.DeepEqual(files, expected) {
		t.Errorf("expected %v, got %v", expected, files)
	}
}

func TestMarkdownFiles_EmptyDirectory(t *testing.T) {
	files, err := MarkdownFiles(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no files, got %v", files)
	}
}

func TestMarkdownFiles_MissingPath(t *testing.T) {
	_, err := MarkdownFiles(filepath.Join(t.TempDir(), "nope"))
	if !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
