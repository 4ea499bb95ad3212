package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/plume/internal/project"
)

func sampleFiles(t *testing.T) *project.FileSet {
	t.Helper()
	files := project.NewFileSet()
	require.NoError(t, files.Add("package.json", []byte(`{"name":"ada-portfolio"}`)))
	require.NoError(t, files.Add("README.md", []byte("# Ada\n")))
	require.NoError(t, files.Add("src/App.jsx", []byte("export default App;\n")))
	require.NoError(t, files.Add("src/components/Hero.jsx", []byte("hero")))
	require.NoError(t, files.Add("src/empty.txt", []byte{}))
	return files
}

func TestBuild_RoundTrip(t *testing.T) {
	files := sampleFiles(t)

	arc, err := NewBuilder().Build(files)
	require.NoError(t, err)
	assert.Empty(t, arc.Filename)
	assert.Equal(t, int64(len(arc.Data)), arc.Size())

	got, err := Read(arc.Data)
	require.NoError(t, err)

	assert.ElementsMatch(t, files.Paths(), got.Paths())
	for _, f := range files.Files() {
		content, ok := got.Get(f.Path)
		require.True(t, ok, f.Path)
		assert.Equal(t, f.Content, content, f.Path)
	}
}

func TestBuild_IsDeterministic(t *testing.T) {
	first, err := NewBuilder().Build(sampleFiles(t))
	require.NoError(t, err)

	second, err := NewBuilder().Build(sampleFiles(t))
	require.NoError(t, err)

	assert.Equal(t, first.Data, second.Data)
}

func TestBuild_WritesLayoutDirectories(t *testing.T) {
	arc, err := NewBuilder().Build(sampleFiles(t))
	require.NoError(t, err)

	c, err := Unpack(arc.Data)
	require.NoError(t, err)
	assert.Equal(t, []string{"src", "src/components", "src/utils"}, c.Dirs)
	assert.Equal(t, 5, c.Files.Len())
}

func TestBuild_EntryHeaders(t *testing.T) {
	stamp := time.Date(2030, time.June, 15, 12, 0, 0, 0, time.UTC)
	arc, err := NewBuilder(WithModTime(stamp)).Build(sampleFiles(t))
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(arc.Data), int64(len(arc.Data)))
	require.NoError(t, err)

	for _, zf := range zr.File {
		assert.True(t, zf.Modified.Equal(stamp), "%s modified at %v", zf.Name, zf.Modified)
		if zf.FileInfo().IsDir() {
			assert.Equal(t, zip.Store, zf.Method, zf.Name)
			continue
		}
		assert.Equal(t, zip.Deflate, zf.Method, zf.Name)
		assert.Equal(t, fileMode, zf.Mode().Perm(), zf.Name)
	}
}

func TestBuild_NilFileSet(t *testing.T) {
	_, err := NewBuilder().Build(nil)

	var serr *SerializationError
	require.True(t, errors.As(err, &serr))
	assert.Contains(t, serr.Error(), "failed to serialize archive")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWrite_PropagatesWriterErrors(t *testing.T) {
	err := NewBuilder().Write(failingWriter{}, sampleFiles(t))
	require.Error(t, err)

	var serr *SerializationError
	require.True(t, errors.As(err, &serr))
	assert.EqualError(t, errors.Unwrap(serr), "disk full")
}

func TestRead_RejectsEscapingEntries(t *testing.T) {
	tests := []struct {
		name  string
		entry string
	}{
		{name: "parent segment", entry: "../evil.sh"},
		{name: "absolute", entry: "/etc/passwd"},
		{name: "backslash", entry: `src\evil.jsx`},
		{name: "nested parent", entry: "src/../../evil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			zw := zip.NewWriter(&buf)
			w, err := zw.Create(tt.entry)
			require.NoError(t, err)
			_, err = w.Write([]byte("x"))
			require.NoError(t, err)
			require.NoError(t, zw.Close())

			_, err = Read(buf.Bytes())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid archive entry")
		})
	}
}

func TestRead_NotAZip(t *testing.T) {
	_, err := Read([]byte("definitely not a zip"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open archive")
}
