package project

import (
	"fmt"
	"sort"
)

// File is a single generated file: a project-relative path and its content.
type File struct {
	Path    string
	Content []byte
}

// FileSet is an ordered collection of files with unique paths.
// The zero value is not usable; create one with NewFileSet.
type FileSet struct {
	files []File
	index map[string]int
}

// NewFileSet creates an empty file set
func NewFileSet() *FileSet {
	return &FileSet{index: make(map[string]int)}
}

// Add appends a file. It fails if the path is not a clean project-relative
// path or if a file with the same path was already added.
func (s *FileSet) Add(path string, content []byte) error {
	clean, err := CleanPath(path)
	if err != nil {
		return err
	}
	if _, exists := s.index[clean]; exists {
		return fmt.Errorf("duplicate file path: %s", clean)
	}
	if content == nil {
		content = []byte{}
	}
	s.index[clean] = len(s.files)
	s.files = append(s.files, File{Path: clean, Content: content})
	return nil
}

// Get returns the content stored at path.
func (s *FileSet) Get(path string) ([]byte, bool) {
	i, ok := s.index[path]
	if !ok {
		return nil, false
	}
	return s.files[i].Content, true
}

// Files returns the files in insertion order. The returned slice is a copy;
// file contents are shared.
func (s *FileSet) Files() []File {
	out := make([]File, len(s.files))
	copy(out, s.files)
	return out
}

// Paths returns all paths in insertion order
func (s *FileSet) Paths() []string {
	paths := make([]string, len(s.files))
	for i, f := range s.files {
		paths[i] = f.Path
	}
	return paths
}

// SortedPaths returns all paths in lexical order
func (s *FileSet) SortedPaths() []string {
	paths := s.Paths()
	sort.Strings(paths)
	return paths
}

// Len returns the number of files
func (s *FileSet) Len() int {
	return len(s.files)
}

// Size returns the total content size in bytes
func (s *FileSet) Size() int64 {
	var total int64
	for _, f := range s.files {
		total += int64(len(f.Content))
	}
	return total
}
