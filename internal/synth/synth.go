// Package synth turns normalized content into the files of a portfolio
// project.
package synth

import (
	"fmt"

	"github.com/simonhull/firebird-suite/plume/internal/content"
	"github.com/simonhull/firebird-suite/plume/internal/generator"
	"github.com/simonhull/firebird-suite/plume/internal/project"
	"github.com/simonhull/firebird-suite/plume/internal/templates"
)

// Synthesizer renders every catalog entry of a template library.
// It is safe for concurrent use.
type Synthesizer struct {
	library  *templates.Library
	renderer *generator.Renderer
}

// New creates a synthesizer. A nil library means templates.Default().
func New(lib *templates.Library) *Synthesizer {
	if lib == nil {
		lib = templates.Default()
	}
	return &Synthesizer{
		library:  lib,
		renderer: generator.NewRenderer(),
	}
}

// Library returns the templates the synthesizer renders
func (s *Synthesizer) Library() *templates.Library {
	return s.library
}

// Synthesize produces one file per catalog entry, in catalog order. Static
// entries are copied unchanged; parametric entries are rendered with n as
// data. The same input always yields the same bytes.
func (s *Synthesizer) Synthesize(n *content.Normalized) (*project.FileSet, error) {
	if n == nil {
		return nil, fmt.Errorf("no content to synthesize")
	}

	files := project.NewFileSet()
	for _, e := range s.library.Entries() {
		body, err := s.render(e, n)
		if err != nil {
			return nil, err
		}
		if err := files.Add(e.Path, body); err != nil {
			return nil, fmt.Errorf("failed to add %s: %w", e.Path, err)
		}
	}
	return files, nil
}

func (s *Synthesizer) render(e templates.Entry, n *content.Normalized) ([]byte, error) {
	switch e.Kind {
	case templates.Static:
		return []byte(e.Body), nil
	case templates.Parametric:
		out, err := s.renderer.Render(e.Path, e.Body, n)
		if err != nil {
			return nil, fmt.Errorf("failed to synthesize %s: %w", e.Path, err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("failed to synthesize %s: unknown template kind %s", e.Path, e.Kind)
	}
}
