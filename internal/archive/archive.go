// Package archive packs a generated project into a zip file and reads it
// back.
//
// Archives are reproducible: entries are written in a fixed order with a
// fixed modification time, so the same files always produce the same bytes.
package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/simonhull/firebird-suite/plume/internal/project"
)

// ModTime is the modification time stamped on every entry
var ModTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

const (
	fileMode fs.FileMode = 0644
	dirMode  fs.FileMode = 0755 | fs.ModeDir
)

// MaxEntrySize bounds the uncompressed size of a single entry when reading
const MaxEntrySize = 16 << 20

// Archive is a finished zip file
type Archive struct {
	Filename string // download name, e.g. "ada-lovelace-portfolio.zip"
	Data     []byte
}

// Size returns the archive size in bytes
func (a *Archive) Size() int64 {
	return int64(len(a.Data))
}

// SerializationError reports a failure while writing the zip stream
type SerializationError struct {
	Path string // entry being written, empty for the archive itself
	Err  error
}

func (e *SerializationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to serialize archive: %v", e.Err)
	}
	return fmt.Sprintf("failed to serialize archive entry %s: %v", e.Path, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// Builder writes file sets as zip archives
type Builder struct {
	modTime time.Time
}

// Option configures a Builder
type Option func(*Builder)

// WithModTime overrides the modification time stamped on entries
func WithModTime(t time.Time) Option {
	return func(b *Builder) {
		b.modTime = t.UTC()
	}
}

// NewBuilder creates a builder
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{modTime: ModTime}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build packs files into an in-memory archive. The returned archive has no
// Filename; callers name it.
func (b *Builder) Build(files *project.FileSet) (*Archive, error) {
	var buf bytes.Buffer
	if err := b.Write(&buf, files); err != nil {
		return nil, err
	}
	return &Archive{Data: buf.Bytes()}, nil
}

// Write streams files as a zip archive to w. Directory entries for the
// project layout come first, followed by every file in set order. Errors
// are *SerializationError.
func (b *Builder) Write(w io.Writer, files *project.FileSet) error {
	if files == nil {
		return &SerializationError{Err: fmt.Errorf("no files to archive")}
	}

	zw := zip.NewWriter(w)

	for _, dir := range directories(files) {
		header := &zip.FileHeader{
			Name:     dir + "/",
			Method:   zip.Store,
			Modified: b.modTime,
		}
		header.SetMode(dirMode)
		if _, err := zw.CreateHeader(header); err != nil {
			return &SerializationError{Path: header.Name, Err: err}
		}
	}

	for _, f := range files.Files() {
		header := &zip.FileHeader{
			Name:     f.Path,
			Method:   zip.Deflate,
			Modified: b.modTime,
		}
		header.SetMode(fileMode)

		writer, err := zw.CreateHeader(header)
		if err != nil {
			return &SerializationError{Path: f.Path, Err: err}
		}
		if _, err := writer.Write(f.Content); err != nil {
			return &SerializationError{Path: f.Path, Err: err}
		}
	}

	if err := zw.Close(); err != nil {
		return &SerializationError{Err: err}
	}
	return nil
}

// directories returns the layout directories followed by any other parent
// directory of a file, each exactly once.
func directories(files *project.FileSet) []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(d string) {
		if d == "." || d == "" || seen[d] {
			return
		}
		seen[d] = true
		dirs = append(dirs, d)
	}

	for _, d := range project.Directories() {
		add(d)
	}
	for _, p := range files.Paths() {
		var parents []string
		for d := path.Dir(p); d != "."; d = path.Dir(d) {
			parents = append(parents, d)
		}
		for i := len(parents) - 1; i >= 0; i-- {
			add(parents[i])
		}
	}
	return dirs
}

// Contents is what an archive holds
type Contents struct {
	Dirs  []string // directory entries without trailing slash
	Files *project.FileSet
}

// Read returns the files in an archive. Directory entries are skipped.
func Read(data []byte) (*project.FileSet, error) {
	c, err := Unpack(data)
	if err != nil {
		return nil, err
	}
	return c.Files, nil
}

// Unpack reads every entry of an archive. Entry names must be clean
// project-relative paths; anything that could escape the extraction root is
// rejected.
func Unpack(data []byte) (*Contents, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if errors.Is(err, zip.ErrInsecurePath) {
		return nil, fmt.Errorf("invalid archive entry: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	c := &Contents{Files: project.NewFileSet()}
	for _, zf := range zr.File {
		if strings.HasSuffix(zf.Name, "/") {
			dir, err := project.CleanPath(strings.TrimSuffix(zf.Name, "/"))
			if err != nil {
				return nil, fmt.Errorf("invalid archive entry: %w", err)
			}
			c.Dirs = append(c.Dirs, dir)
			continue
		}

		name, err := project.CleanPath(zf.Name)
		if err != nil {
			return nil, fmt.Errorf("invalid archive entry: %w", err)
		}

		content, err := readEntry(zf)
		if err != nil {
			return nil, err
		}
		if err := c.Files.Add(name, content); err != nil {
			return nil, fmt.Errorf("invalid archive entry: %w", err)
		}
	}
	return c, nil
}

func readEntry(zf *zip.File) ([]byte, error) {
	if zf.UncompressedSize64 > MaxEntrySize {
		return nil, fmt.Errorf("archive entry %s is too large (%d bytes)", zf.Name, zf.UncompressedSize64)
	}

	rc, err := zf.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open archive entry %s: %w", zf.Name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(io.LimitReader(rc, MaxEntrySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read archive entry %s: %w", zf.Name, err)
	}
	if len(content) > MaxEntrySize {
		return nil, fmt.Errorf("archive entry %s is too large", zf.Name)
	}
	return content, nil
}
