// Package normalize canonicalizes files after synthesis. Each target gets a
// built-in canonical form and, optionally, external formatter runs. Every
// step is idempotent; failures are reported as warnings and never undo
// anything already written.
package normalize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/simonhull/firebird-suite/nest/pkg/exec"
	"github.com/simonhull/firebird-suite/nest/pkg/output"
)

// Canonicalizer names a built-in canonical form.
type Canonicalizer string

const (
	None Canonicalizer = ""
	YAML Canonicalizer = "yaml"
	JSON Canonicalizer = "json"
	Text Canonicalizer = "text"
)

// Target is one file to normalize.
type Target struct {
	Path      string // relative to the output root
	Canonical Canonicalizer

	// Commands run after the canonical pass, in order, from the output
	// root. A command whose binary is not installed is skipped.
	Commands [][]string
}

// Runner runs an external command. *exec.Executor satisfies it.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// NormalizationError reports a failed normalization step.
type NormalizationError struct {
	Path string
	Step string
	Err  error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalize %s (%s): %v", e.Path, e.Step, e.Err)
}

func (e *NormalizationError) Unwrap() error {
	return e.Err
}

// Normalize processes every target under root and returns the failures.
// A missing target file is a failure of that target only.
func Normalize(ctx context.Context, root string, targets []Target, runner Runner) []error {
	var errs []error
	for _, t := range targets {
		errs = append(errs, normalizeTarget(ctx, root, t, runner)...)
	}
	return errs
}

func normalizeTarget(ctx context.Context, root string, t Target, runner Runner) []error {
	full := filepath.Join(root, filepath.FromSlash(t.Path))

	if t.Canonical != None {
		if err := canonicalizeFile(full, t.Canonical); err != nil {
			return []error{&NormalizationError{Path: t.Path, Step: string(t.Canonical), Err: err}}
		}
	}

	var errs []error
	for _, cmd := range t.Commands {
		if len(cmd) == 0 || runner == nil {
			continue
		}
		step := strings.Join(cmd, " ")
		output.Verbose("normalize: " + step)

		err := runner.Run(ctx, cmd[0], cmd[1:]...)
		if exec.IsNotFound(err) {
			output.Verbose(fmt.Sprintf("normalize: %s not installed, skipping", cmd[0]))
			continue
		}
		if err != nil {
			errs = append(errs, &NormalizationError{Path: t.Path, Step: step, Err: err})
		}
	}
	return errs
}

func canonicalizeFile(path string, c Canonicalizer) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	out, err := Canonicalize(data, c)
	if err != nil {
		return err
	}
	if bytes.Equal(out, data) {
		return nil
	}
	return os.WriteFile(path, out, info.Mode().Perm())
}

// Canonicalize returns the canonical form of data.
func Canonicalize(data []byte, c Canonicalizer) ([]byte, error) {
	switch c {
	case None:
		return data, nil
	case YAML:
		return canonicalYAML(data)
	case JSON:
		return canonicalJSON(data)
	case Text:
		return canonicalText(data), nil
	default:
		return nil, fmt.Errorf("unknown canonicalizer %q", c)
	}
}

// canonicalYAML re-encodes with 2-space indentation and sorted keys.
// Comments are not preserved.
func canonicalYAML(data []byte) ([]byte, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []byte{}, nil
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return ensureFinalNewline(buf.Bytes()), nil
}

// canonicalJSON re-indents with 2 spaces, sorts object keys, and keeps
// numbers exactly as written.
func canonicalJSON(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing json: trailing data")
	}
	return EncodeJSON(doc)
}

// EncodeJSON renders v the way nest writes every JSON file.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// canonicalText strips trailing whitespace and leaves exactly one final
// newline.
func canonicalText(data []byte) []byte {
	lines := strings.Split(string(data), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t\r")
	}
	s := strings.TrimRight(strings.Join(lines, "\n"), "\n")
	if s == "" {
		return []byte{}
	}
	return []byte(s + "\n")
}

func ensureFinalNewline(b []byte) []byte {
	b = bytes.TrimRight(b, "\n")
	return append(b, '\n')
}
