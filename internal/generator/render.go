package generator

import (
	"bytes"
	"fmt"
	"sync"
	"text/template"
)

// Template delimiters. JSX uses {{ }} for object literals, so the default
// Go delimiters cannot be used.
const (
	LeftDelim  = "[["
	RightDelim = "]]"
)

// Renderer parses and renders templates, caching parsed templates by name.
// It is safe for concurrent use.
type Renderer struct {
	funcMap template.FuncMap
	cache   map[string]cachedTemplate
	mu      sync.RWMutex // Protect cache for concurrent access
}

type cachedTemplate struct {
	body string
	tmpl *template.Template
}

// NewRenderer creates a renderer with built-in helper functions
func NewRenderer() *Renderer {
	return &Renderer{
		funcMap: defaultFuncMap(),
		cache:   make(map[string]cachedTemplate),
	}
}

// Render renders body as a template named name. Fields missing from data
// are an error rather than "<no value>".
func (r *Renderer) Render(name, body string, data any) ([]byte, error) {
	// Check cache with read lock
	r.mu.RLock()
	cached, ok := r.cache[name]
	r.mu.RUnlock()
	if ok && cached.body == body {
		return r.executeTemplate(cached.tmpl, data)
	}

	tmpl, err := template.New(name).
		Delims(LeftDelim, RightDelim).
		Option("missingkey=error").
		Funcs(r.funcMap).
		Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
	}

	// Cache with write lock
	r.mu.Lock()
	r.cache[name] = cachedTemplate{body: body, tmpl: tmpl}
	r.mu.Unlock()

	return r.executeTemplate(tmpl, data)
}

// ClearCache clears the template cache (useful for testing)
func (r *Renderer) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]cachedTemplate)
}

// executeTemplate executes a parsed template with the given data
func (r *Renderer) executeTemplate(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}
