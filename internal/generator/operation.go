package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

// Operation represents a file system operation that can be validated and executed.
//
// Validate checks if the operation would succeed without executing it and
// has no side effects. force=true skips conflict checks (e.g., file already exists).
//
// Execute performs the actual operation. This should only be called after Validate succeeds.
//
// Description returns a human-readable description for output (e.g., "Create out/ada-portfolio.zip (5120 bytes)").
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
}

// WriteFileOp creates a file with content.
//
// Validation behavior:
//   - Fails if an existing parent is not a directory
//   - Checks for file conflicts unless force=true
//   - With SameOK, an existing file holding exactly Content is not a conflict
//   - Allows empty content (zero bytes) but rejects nil content
//
// Execution behavior:
//   - Creates parent directories if needed
//   - Writes the file with the specified Mode
type WriteFileOp struct {
	Path    string      // File path to create
	Content []byte      // File content (can be empty, must not be nil)
	Mode    fs.FileMode // File permissions (e.g., 0644)
	SameOK  bool        // Identical existing content does not conflict
}

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	if err := checkParent(op.Path); err != nil {
		return err
	}

	info, err := os.Stat(op.Path)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("path is a directory: %s", op.Path)
	case err == nil && !force && !(op.SameOK && op.unchanged()):
		return fmt.Errorf("file already exists: %s (use --force to overwrite)", op.Path)
	case err != nil && !missing(err):
		return fmt.Errorf("cannot stat %s: %w", op.Path, err)
	}

	// Reject nil content (empty is OK)
	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}

	return nil
}

func (op *WriteFileOp) unchanged() bool {
	existing, err := os.ReadFile(op.Path)
	return err == nil && bytes.Equal(existing, op.Content)
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	dir := filepath.Dir(op.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(op.Path, op.Content, op.Mode)
}

func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Create %s (%d bytes)", op.Path, len(op.Content))
}

// MkdirOp creates a directory and its parents. An existing directory is
// not a conflict.
type MkdirOp struct {
	Path string
	Mode fs.FileMode
}

func (op *MkdirOp) Validate(ctx context.Context, force bool) error {
	info, err := os.Stat(op.Path)
	if err == nil && !info.IsDir() {
		return fmt.Errorf("not a directory: %s", op.Path)
	}
	if err != nil && !missing(err) {
		return fmt.Errorf("cannot stat %s: %w", op.Path, err)
	}
	return checkParent(op.Path)
}

func (op *MkdirOp) Execute(ctx context.Context) error {
	return os.MkdirAll(op.Path, op.Mode)
}

func (op *MkdirOp) Description() string {
	return fmt.Sprintf("Create %s%c", op.Path, filepath.Separator)
}

// missing reports whether a stat error means the path does not exist yet.
// A regular file in the middle of a path yields ENOTDIR rather than
// ErrNotExist.
func missing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

// checkParent walks up from path and fails on the first existing ancestor
// that is not a directory.
func checkParent(path string) error {
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("cannot create %s: %s is not a directory", path, dir)
			}
			return nil
		}
		if !missing(err) {
			return fmt.Errorf("cannot stat %s: %w", dir, err)
		}
		if parent := filepath.Dir(dir); parent == dir {
			return nil
		}
	}
}
