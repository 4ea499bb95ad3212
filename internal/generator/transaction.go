package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Transaction represents a set of file operations that can be committed or rolled back
type Transaction struct {
	operations []fileOperation
	created    []string // paths created by Commit, in creation order
	replaced   []backup // files overwritten by Commit, in write order
	committed  bool
}

// backup is the previous content of an overwritten file
type backup struct {
	path    string
	content []byte
	mode    os.FileMode
}

// fileOperation represents a single staged write or mkdir
type fileOperation struct {
	path    string
	content []byte
	mode    os.FileMode
	dir     bool
}

// NewTransaction creates a new file operation transaction
func NewTransaction() *Transaction {
	return &Transaction{
		operations: make([]fileOperation, 0),
	}
}

// AddFile stages a file write operation (doesn't write yet)
func (t *Transaction) AddFile(path string, content []byte, mode os.FileMode) {
	t.operations = append(t.operations, fileOperation{
		path:    path,
		content: content,
		mode:    mode,
	})
}

// AddDir stages a directory, which is kept even if no file is written into it
func (t *Transaction) AddDir(path string, mode os.FileMode) {
	t.operations = append(t.operations, fileOperation{
		path: path,
		mode: mode,
		dir:  true,
	})
}

// Len returns the number of staged operations
func (t *Transaction) Len() int {
	return len(t.operations)
}

// Commit writes all staged files to disk.
// If any write fails, everything created so far is removed again and
// overwritten files get their previous content back.
func (t *Transaction) Commit() error {
	if t.committed {
		return fmt.Errorf("transaction already committed")
	}

	for _, op := range t.operations {
		if op.dir {
			if err := t.mkdirAll(op.path, op.mode); err != nil {
				t.rollback()
				return fmt.Errorf("failed to create directory %s: %w", op.path, err)
			}
			continue
		}

		// Ensure directory exists
		dir := filepath.Dir(op.path)
		if err := t.mkdirAll(dir, 0755); err != nil {
			t.rollback()
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}

		info, statErr := os.Stat(op.path)
		if statErr == nil && info.Mode().IsRegular() {
			old, err := os.ReadFile(op.path)
			if err != nil {
				t.rollback()
				return fmt.Errorf("failed to back up %s: %w", op.path, err)
			}
			t.replaced = append(t.replaced, backup{path: op.path, content: old, mode: info.Mode().Perm()})
		}
		if err := os.WriteFile(op.path, op.content, op.mode); err != nil {
			t.rollback()
			return fmt.Errorf("failed to write file %s: %w", op.path, err)
		}
		if errors.Is(statErr, fs.ErrNotExist) {
			t.created = append(t.created, op.path)
		}
	}

	t.committed = true
	return nil
}

// mkdirAll creates path and its parents, remembering every directory it
// actually created.
func (t *Transaction) mkdirAll(path string, mode os.FileMode) error {
	var missing []string
	for dir := path; ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(dir); err == nil {
			break
		}
		missing = append(missing, dir)
		if filepath.Dir(dir) == dir {
			break
		}
	}

	for i := len(missing) - 1; i >= 0; i-- {
		if err := os.Mkdir(missing[i], mode); err != nil && !errors.Is(err, fs.ErrExist) {
			return err
		}
		t.created = append(t.created, missing[i])
	}
	return nil
}

// rollback restores overwritten files and removes created paths, both in
// reverse order. Files that existed before Commit are not removed.
func (t *Transaction) rollback() {
	for i := len(t.replaced) - 1; i >= 0; i-- {
		b := t.replaced[i]
		os.WriteFile(b.path, b.content, b.mode) // Best effort, ignore errors
	}
	for i := len(t.created) - 1; i >= 0; i-- {
		os.Remove(t.created[i]) // Best effort, ignore errors
	}
	t.created = nil
	t.replaced = nil
}

// Rollback manually triggers a rollback (for use in defer)
func (t *Transaction) Rollback() {
	if !t.committed {
		t.rollback()
	}
}
