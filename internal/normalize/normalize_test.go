package normalize

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	calls   []string
	missing map[string]bool
	fail    map[string]error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	f.calls = append(f.calls, fmt.Sprint(append([]string{name}, args...)))
	if f.missing[name] {
		return fmt.Errorf("%w: %s", errors.New("command not found"), name)
	}
	return f.fail[name]
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name string
		c    Canonicalizer
		in   string
		want string
	}{
		{
			name: "yaml sorts keys and indents by two",
			c:    YAML,
			in:   "b: 1\na:\n    - x\n    - y\n",
			want: "a:\n  - x\n  - y\nb: 1\n",
		},
		{
			name: "yaml empty document stays empty",
			c:    YAML,
			in:   "\n\n",
			want: "",
		},
		{
			name: "json sorts keys and keeps numbers",
			c:    JSON,
			in:   `{"b": 1.50, "a": {"<": true}}`,
			want: "{\n  \"a\": {\n    \"<\": true\n  },\n  \"b\": 1.50\n}\n",
		},
		{
			name: "text trims trailing space and newlines",
			c:    Text,
			in:   "one  \ntwo\t\n\n\n",
			want: "one\ntwo\n",
		},
		{
			name: "text adds missing final newline",
			c:    Text,
			in:   "one",
			want: "one\n",
		},
		{
			name: "none is identity",
			c:    None,
			in:   "as is  ",
			want: "as is  ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Canonicalize([]byte(tt.in), tt.c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))

			again, err := Canonicalize(got, tt.c)
			require.NoError(t, err)
			assert.Equal(t, string(got), string(again), "not idempotent")
		})
	}
}

func TestCanonicalize_Errors(t *testing.T) {
	_, err := Canonicalize([]byte("{"), JSON)
	assert.Error(t, err)

	_, err = Canonicalize([]byte(`{} {}`), JSON)
	assert.Error(t, err)

	_, err = Canonicalize([]byte("a: [\n"), YAML)
	assert.Error(t, err)

	_, err = Canonicalize(nil, Canonicalizer("toml"))
	assert.Error(t, err)
}

func TestNormalize_RewritesInPlace(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ".nestrc.yml")
	require.NoError(t, os.WriteFile(path, []byte("template: cdk\noptions:\n    jest: false\n"), 0o600))

	errs := Normalize(context.Background(), root, []Target{{Path: ".nestrc.yml", Canonical: YAML}}, nil)
	assert.Empty(t, errs)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "options:\n  jest: false\ntemplate: cdk\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestNormalize_Commands(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.json"), []byte(`{}`), 0o644))

	runner := &fakeRunner{
		missing: map[string]bool{"ofmt": true},
		fail:    map[string]error{"eslint": errors.New("exit status 1")},
	}
	targets := []Target{{
		Path:      "a.json",
		Canonical: JSON,
		Commands: [][]string{
			{"ofmt", "a.json"},
			{"prettier", "--write", "a.json"},
			{"eslint", "--fix", "a.json"},
			{},
		},
	}}

	errs := Normalize(context.Background(), root, targets, runner)

	assert.Equal(t, []string{"[ofmt a.json]", "[prettier --write a.json]", "[eslint --fix a.json]"}, runner.calls)
	require.Len(t, errs, 1)

	var nerr *NormalizationError
	require.ErrorAs(t, errs[0], &nerr)
	assert.Equal(t, "a.json", nerr.Path)
	assert.Equal(t, "eslint --fix a.json", nerr.Step)
}

func TestNormalize_FailuresAreIsolated(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "bad.json"), []byte(`{`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "ok.yml"), []byte("a:    1\n"), 0o644))

	errs := Normalize(context.Background(), root, []Target{
		{Path: "missing.yml", Canonical: YAML},
		{Path: "bad.json", Canonical: JSON, Commands: [][]string{{"prettier", "bad.json"}}},
		{Path: "ok.yml", Canonical: YAML},
	}, &fakeRunner{})

	require.Len(t, errs, 2)
	for _, err := range errs {
		var nerr *NormalizationError
		assert.ErrorAs(t, err, &nerr)
	}

	data, err := os.ReadFile(filepath.Join(root, "ok.yml"))
	require.NoError(t, err)
	assert.Equal(t, "a: 1\n", string(data))

	// A failed canonical pass leaves the file untouched.
	bad, err := os.ReadFile(filepath.Join(root, "bad.json"))
	require.NoError(t, err)
	assert.Equal(t, "{", string(bad))
}
