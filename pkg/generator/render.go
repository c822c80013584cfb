package generator

import (
	"bytes"
	"fmt"
	"io/fs"
	"sync"
	"text/template"
)

// Renderer parses and renders asset templates, caching parsed templates
// by source.
type Renderer struct {
	cache map[string]*template.Template
	mu    sync.RWMutex
}

// NewRenderer creates a renderer with an empty cache. Missing map keys are
// render errors.
func NewRenderer() *Renderer {
	return &Renderer{cache: make(map[string]*template.Template)}
}

// RenderString renders a template from a string.
// The name is used for caching and error messages.
func (r *Renderer) RenderString(name, templateStr string, data any) ([]byte, error) {
	tmpl, err := r.parse("string:"+name, name, func() (string, error) { return templateStr, nil })
	if err != nil {
		return nil, err
	}
	return r.execute(tmpl, data)
}

// RenderFS renders a template read from fsys (usually an embed.FS).
func (r *Renderer) RenderFS(fsys fs.FS, path string, data any) ([]byte, error) {
	tmpl, err := r.parse("fs:"+path, path, func() (string, error) {
		b, err := fs.ReadFile(fsys, path)
		if err != nil {
			return "", fmt.Errorf("failed to read template from fs '%s': %w", path, err)
		}
		return string(b), nil
	})
	if err != nil {
		return nil, err
	}
	return r.execute(tmpl, data)
}

func (r *Renderer) parse(key, name string, source func() (string, error)) (*template.Template, error) {
	r.mu.RLock()
	tmpl, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	text, err := source()
	if err != nil {
		return nil, err
	}
	tmpl, err = template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
	}

	r.mu.Lock()
	r.cache[key] = tmpl
	r.mu.Unlock()
	return tmpl, nil
}

func (r *Renderer) execute(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}
