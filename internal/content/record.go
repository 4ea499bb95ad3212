package content

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Record is the caller-supplied description of a person. Required fields
// (name, title, email, about, skills) must be non-empty; everything else
// may be left blank and is then omitted from the generated project.
type Record struct {
	Name     string `yaml:"name" json:"name" validate:"required"`
	Title    string `yaml:"title" json:"title" validate:"required"`
	Email    string `yaml:"email" json:"email" validate:"required,email"`
	Phone    string `yaml:"phone,omitempty" json:"phone,omitempty"`
	Location string `yaml:"location,omitempty" json:"location,omitempty"`
	About    string `yaml:"about" json:"about" validate:"required"`

	GitHub   string `yaml:"github,omitempty" json:"github,omitempty" validate:"omitempty,url"`
	LinkedIn string `yaml:"linkedin,omitempty" json:"linkedin,omitempty" validate:"omitempty,url"`
	Twitter  string `yaml:"twitter,omitempty" json:"twitter,omitempty" validate:"omitempty,url"`

	Projects []ProjectEntry `yaml:"projects,omitempty" json:"projects,omitempty" validate:"dive"`
	Skills   string         `yaml:"skills" json:"skills" validate:"required,tokens"`

	// Resume is carried through generation untouched; it is never written
	// into the generated project.
	Resume *Attachment `yaml:"-" json:"-"`

	lines map[string]int
}

// ProjectEntry is one project as entered. Tech is a comma-separated list.
// Entries with an empty title are ignored during generation.
type ProjectEntry struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Tech        string `yaml:"tech,omitempty" json:"tech,omitempty"`
	Link        string `yaml:"link,omitempty" json:"link,omitempty" validate:"omitempty,url"`
	GitHub      string `yaml:"github,omitempty" json:"github,omitempty" validate:"omitempty,url"`
}

// Attachment is an uploaded file such as a résumé
type Attachment struct {
	FileName    string `yaml:"file_name" json:"file_name"`
	ContentType string `yaml:"content_type,omitempty" json:"content_type,omitempty"`
	Data        []byte `yaml:"data,omitempty" json:"data,omitempty"`
}

// Load reads a profile file (YAML or JSON)
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	return Parse(data)
}

// Parse decodes a profile. Unknown keys are rejected so that typos such as
// "linkdin" surface instead of silently dropping a link. Line numbers are
// remembered for validation messages.
func Parse(data []byte) (*Record, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&root); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	lines := make(map[string]int)
	collectLines(&root, "", lines)

	var rec Record
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rec); err != nil {
		if hints := unknownFieldHints(err); hints != "" {
			return nil, fmt.Errorf("failed to parse profile (%s): %w", hints, err)
		}
		return nil, fmt.Errorf("failed to parse profile (check for unknown/misspelled fields): %w", err)
	}
	rec.lines = lines

	return &rec, nil
}

// Marshal encodes a record as YAML
func Marshal(rec *Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(rec); err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}
	return buf.Bytes(), nil
}

// collectLines records the line of every mapping value and sequence item
// under a dotted path such as "projects.0.title".
func collectLines(node *yaml.Node, path string, lines map[string]int) {
	if node == nil {
		return
	}
	if path != "" {
		lines[path] = node.Line
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) > 0 {
			collectLines(node.Content[0], path, lines)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			if path != "" {
				key = path + "." + key
			}
			collectLines(node.Content[i+1], key, lines)
		}
	case yaml.SequenceNode:
		for i, child := range node.Content {
			collectLines(child, fmt.Sprintf("%s.%d", path, i), lines)
		}
	}
}
