package synth

import (
	"bytes"
	"fmt"
	"maps"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/simonhull/firebird-suite/nest/internal/artifact"
	"github.com/simonhull/firebird-suite/nest/internal/assets"
	"github.com/simonhull/firebird-suite/nest/internal/normalize"
	"github.com/simonhull/firebird-suite/nest/pkg/generator"
	"github.com/simonhull/firebird-suite/nest/pkg/project"
)

// Marker is the provenance line written into generated files.
var Marker = fmt.Sprintf("~~ Generated by nest. To modify, edit %s and run \"nest synth\".", project.RCFileName)

// markerKey carries the marker in generated JSON objects.
const markerKey = "//"

// yamlMarshaler is implemented by the workflow object model.
type yamlMarshaler interface {
	Marshal() ([]byte, error)
}

// commentPrefix returns the line comment syntax for a path, or "" when the
// format has none.
func commentPrefix(p string) string {
	base := path.Base(p)
	switch ext := path.Ext(p); {
	case ext == ".yml" || ext == ".yaml":
		return "#"
	case strings.HasPrefix(base, "Dockerfile"):
		return "#"
	case strings.HasPrefix(base, ".") && strings.HasSuffix(base, "ignore"):
		return "#"
	case strings.HasPrefix(base, ".env"):
		return "#"
	case ext == ".js" || ext == ".cjs" || ext == ".mjs" || ext == ".ts" || ext == ".tsx" || ext == ".jsx":
		return "//"
	default:
		return ""
	}
}

// renderFile produces the bytes of f, marker included.
func renderFile(f *artifact.File, r *generator.Renderer, data map[string]any) ([]byte, error) {
	var content []byte
	var err error

	switch {
	case f.Object != nil:
		return renderObject(f)
	case f.Asset != "" && f.Template:
		content, err = r.RenderFS(assets.FS(), f.Asset, data)
	case f.Asset != "":
		content, err = assets.Read(f.Asset)
	case f.Template:
		content, err = r.RenderString(f.Path, string(f.Content), data)
	default:
		content = f.Content
	}
	if err != nil {
		return nil, err
	}

	if f.Generated {
		content = withMarker(f.Path, content)
	}
	return content, nil
}

func withMarker(p string, content []byte) []byte {
	prefix := commentPrefix(p)
	if prefix == "" {
		return content
	}
	line := prefix + " " + Marker + "\n"
	if bytes.HasPrefix(content, []byte(line)) {
		return content
	}
	out := make([]byte, 0, len(line)+len(content))
	out = append(out, line...)
	return append(out, content...)
}

func renderObject(f *artifact.File) ([]byte, error) {
	switch f.Format {
	case artifact.FormatJSON:
		obj := f.Object
		if m, ok := obj.(map[string]any); ok && f.Generated {
			m = maps.Clone(m)
			m[markerKey] = Marker
			obj = m
		}
		return normalize.EncodeJSON(obj)

	case artifact.FormatYAML:
		var body []byte
		var err error
		if m, ok := f.Object.(yamlMarshaler); ok {
			body, err = m.Marshal()
		} else {
			body, err = encodeYAML(f.Object)
		}
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", f.Path, err)
		}
		if f.Generated {
			body = withMarker(f.Path, body)
		}
		return body, nil

	default:
		return nil, fmt.Errorf("file %s: unsupported format %d", f.Path, f.Format)
	}
}

func encodeYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
