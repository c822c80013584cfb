// Package config reads and writes the project rc file, .nestrc.yml, which
// records the template a project was created from and the caller options.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/firebird-suite/nest/internal/options"
	"github.com/simonhull/firebird-suite/nest/pkg/project"
)

// EnvPrefix prefixes environment overrides: NEST_TEMPLATE and
// NEST_OPTIONS_<KEY>.
const EnvPrefix = "NEST"

const optionsEnvPrefix = EnvPrefix + "_OPTIONS_"

// RC is the content of .nestrc.yml.
type RC struct {
	Template string         `yaml:"template"`
	Options  options.Values `yaml:"options,omitempty"`
}

// Path returns the rc file path inside dir.
func Path(dir string) string {
	return filepath.Join(dir, project.RCFileName)
}

// ErrNotFound means dir holds no rc file.
var ErrNotFound = errors.New(project.RCFileName + " not found")

// Load reads the rc file in dir and applies environment overrides.
//
// Viper folds keys to lower case, so option keys are restored to the
// spelling declared in known (matched without case). Keys not in known stay
// lower case. Values from the environment are strings; those of list
// options split on commas, the rest are coerced by the option resolver.
func Load(dir string, known options.Declarations) (*RC, error) {
	path := Path(dir)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w in %s. Run \"nest new\" first", ErrNotFound, dir)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", project.RCFileName, err)
	}

	rc := &RC{Template: v.GetString("template")}
	if rc.Template == "" {
		return nil, fmt.Errorf("%s does not name a template", project.RCFileName)
	}

	keys := make(map[string]bool)
	for k := range v.GetStringMap("options") {
		keys[k] = true
	}
	for _, env := range os.Environ() {
		name, _, _ := strings.Cut(env, "=")
		if suffix, ok := strings.CutPrefix(name, optionsEnvPrefix); ok && suffix != "" {
			keys[strings.ToLower(suffix)] = true
		}
	}

	if len(keys) > 0 {
		rc.Options = make(options.Values, len(keys))
	}
	for k := range keys {
		decl := lookupFold(k, known)
		val := v.Get("options." + k)
		if s, ok := val.(string); ok && decl.Type == options.TypeStringList && fromEnv(k) {
			val = options.SplitList(s)
		}
		rc.Options[decl.Key] = val
	}
	return rc, nil
}

// lookupFold finds the declaration matching key without case. Unknown
// keys get an untyped declaration under key itself.
func lookupFold(key string, known options.Declarations) options.Declaration {
	i := slices.IndexFunc(known, func(d options.Declaration) bool { return strings.EqualFold(d.Key, key) })
	if i < 0 {
		return options.Declaration{Key: key}
	}
	return known[i]
}

func fromEnv(key string) bool {
	_, ok := os.LookupEnv(optionsEnvPrefix + strings.ToUpper(key))
	return ok
}

// Save writes rc to dir, keeping option keys as given.
func Save(dir string, rc *RC) error {
	if rc.Template == "" {
		return fmt.Errorf("cannot save %s without a template", project.RCFileName)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(rc); err != nil {
		return fmt.Errorf("encoding %s: %w", project.RCFileName, err)
	}
	if err := enc.Close(); err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(Path(dir), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", project.RCFileName, err)
	}
	return nil
}
