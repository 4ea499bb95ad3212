package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/simonhull/firebird-suite/plume/internal/project"
)

//go:embed files
var embedded embed.FS

// Kind tells the synthesizer how to treat an entry's body
type Kind int

const (
	Static Kind = iota
	Parametric
)

func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case Parametric:
		return "parametric"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// templateSuffix marks parametric bodies in a templates tree
const templateSuffix = ".tmpl"

// Entry is one file of the generated project
type Entry struct {
	Path string // project-relative output path
	Kind Kind
	Body string
}

// Source returns the name the body is stored under in a templates tree
func (e Entry) Source() string {
	if e.Kind == Parametric {
		return e.Path + templateSuffix
	}
	return e.Path
}

// catalog is the fixed set of generated files in emission order
var catalog = []struct {
	path string
	kind Kind
}{
	{project.PageShellPath, Parametric},
	{project.HeroPath, Parametric},
	{project.AboutPath, Parametric},
	{project.ProjectsPath, Parametric},
	{project.SkillsPath, Parametric},
	{project.ContactPath, Parametric},
	{project.NavigationPath, Static},
	{project.CursorPath, Static},
	{project.ScrollIndicatorPath, Static},
	{project.BackgroundPath, Static},
	{project.ManifestPath, Parametric},
	{project.ReadmePath, Parametric},
	{project.StylesheetPath, Static},
	{project.EntryPointPath, Static},
}

// Library is a complete, immutable set of catalog entries
type Library struct {
	entries []Entry
	index   map[string]int
}

var (
	defaultOnce sync.Once
	defaultLib  *Library
	defaultErr  error
)

// Default returns the built-in library. It panics if the embedded tree is
// incomplete, which can only happen with a broken build.
func Default() *Library {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embedded, "files")
		if err != nil {
			defaultErr = err
			return
		}
		defaultLib, defaultErr = Load(sub)
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("templates: embedded library is broken: %v", defaultErr))
	}
	return defaultLib
}

// Load reads every catalog entry from fsys. All entries must be present.
func Load(fsys fs.FS) (*Library, error) {
	lib := &Library{
		entries: make([]Entry, 0, len(catalog)),
		index:   make(map[string]int, len(catalog)),
	}

	var errs []error
	for _, c := range catalog {
		e := Entry{Path: c.path, Kind: c.kind}
		body, err := fs.ReadFile(fsys, e.Source())
		if err != nil {
			errs = append(errs, fmt.Errorf("missing template %s: %w", e.Source(), err))
			continue
		}
		e.Body = string(body)
		lib.index[e.Path] = len(lib.entries)
		lib.entries = append(lib.entries, e)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return lib, nil
}

// Override returns a copy of the library where every entry found in fsys
// replaces the built-in body. Entries missing from fsys are kept. Files in
// fsys that match no catalog entry are an error, so a misnamed override
// does not go unnoticed.
func (l *Library) Override(fsys fs.FS) (*Library, error) {
	out := &Library{
		entries: make([]Entry, len(l.entries)),
		index:   l.index,
	}
	copy(out.entries, l.entries)

	known := make(map[string]bool, len(l.entries))
	for _, e := range l.entries {
		known[e.Source()] = true
	}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !known[p] {
			return fmt.Errorf("unknown template %s (expected one of the catalog paths, parametric files end in %s)", p, templateSuffix)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read template overrides: %w", err)
	}

	for i, e := range out.entries {
		body, err := fs.ReadFile(fsys, e.Source())
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read template override %s: %w", e.Source(), err)
		}
		out.entries[i].Body = string(body)
	}

	return out, nil
}

// Entries returns all entries in emission order
func (l *Library) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Lookup returns the entry for an output path
func (l *Library) Lookup(path string) (Entry, bool) {
	i, ok := l.index[path]
	if !ok {
		return Entry{}, false
	}
	return l.entries[i], true
}

// Len returns the number of entries
func (l *Library) Len() int {
	return len(l.entries)
}
