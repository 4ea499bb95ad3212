package generator

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTransaction_Success(t *testing.T) {
	tempDir := t.TempDir()
	root := filepath.Join(tempDir, "ada-portfolio")

	tx := NewTransaction()
	tx.AddFile(filepath.Join(root, "package.json"), []byte("{}"), 0644)
	tx.AddFile(filepath.Join(root, "src", "components", "Hero.jsx"), []byte("hero"), 0644)
	tx.AddDir(filepath.Join(root, "src", "utils"), 0755)

	if tx.Len() != 3 {
		t.Fatalf("expected 3 staged operations, got %d", tx.Len())
	}

	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(root, "src", "components", "Hero.jsx"))
	if err != nil || string(content) != "hero" {
		t.Error("Hero.jsx not written correctly")
	}

	info, err := os.Stat(filepath.Join(root, "src", "utils"))
	if err != nil || !info.IsDir() {
		t.Error("empty utils directory not created")
	}
}

func TestTransaction_RollbackOnError(t *testing.T) {
	tempDir := t.TempDir()
	root := filepath.Join(tempDir, "site")

	tx := NewTransaction()
	tx.AddFile(filepath.Join(root, "src", "file1.txt"), []byte("content1"), 0644)

	// Add a file to an invalid path (should fail)
	invalidPath := filepath.Join(root, "\x00invalid", "file2.txt")
	tx.AddFile(invalidPath, []byte("content2"), 0644)

	if err := tx.Commit(); err == nil {
		t.Fatal("Expected commit to fail with invalid path")
	}

	// Files and the directories created for them are gone
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Error("site directory should have been rolled back")
	}
}

func TestTransaction_RollbackKeepsExistingFiles(t *testing.T) {
	tempDir := t.TempDir()
	existing := filepath.Join(tempDir, "keep.txt")
	if err := os.WriteFile(existing, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	tx := NewTransaction()
	tx.AddFile(existing, []byte("new"), 0644)
	tx.AddFile(filepath.Join(tempDir, "\x00bad"), []byte("x"), 0644)

	if err := tx.Commit(); err == nil {
		t.Fatal("Expected commit to fail")
	}

	content, err := os.ReadFile(existing)
	if err != nil {
		t.Fatal("pre-existing file should not be removed")
	}
	if string(content) != "old" {
		t.Errorf("overwritten file not restored, got %q", content)
	}
}

func TestTransaction_CannotCommitTwice(t *testing.T) {
	tempDir := t.TempDir()

	tx := NewTransaction()
	tx.AddFile(filepath.Join(tempDir, "file1.txt"), []byte("content1"), 0644)

	if err := tx.Commit(); err != nil {
		t.Fatalf("First commit failed: %v", err)
	}

	if err := tx.Commit(); err == nil {
		t.Error("Expected error on second commit")
	}
}

func TestTransaction_RollbackAfterCommitIsNoop(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "file1.txt")

	tx := NewTransaction()
	tx.AddFile(path, []byte("content1"), 0644)
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	tx.Rollback()

	if _, err := os.Stat(path); err != nil {
		t.Error("committed file should survive Rollback")
	}
}
