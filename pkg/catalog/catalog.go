// Package catalog keeps named template bundles: a template, the context it is
// meant to be rendered with, and optionally the output it must produce.
// Bundles ship embedded in the binary and can be shadowed by YAML files in an
// override directory.
package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/neurodesk/yartl/pkg/yartl"
	v "github.com/neurodesk/yartl/pkg/validator"
	"gopkg.in/yaml.v3"
)

// ErrNoExpectation is returned by Check for entries without an expect field.
var ErrNoExpectation = errors.New("entry has no expected output")

type Entry struct {
	Name        string               `yaml:"name"`
	Description string               `yaml:"description,omitempty"`
	Template    yartl.TemplateString `yaml:"template"`
	Context     map[string]any       `yaml:"context,omitempty"`
	Expect      *string              `yaml:"expect,omitempty"`
}

func (e Entry) Validate() error {
	return v.All(
		v.Identifier(e.Name, "name"),
		v.NotEmpty(string(e.Template), "template"),
		e.Template.Validate(),
		v.MapDict(e.Context, func(key string, _ any) error {
			return v.All(
				v.NotEmpty(key, "context key"),
				v.HasNoDirectives(key, "context key"),
			)
		}, "context"),
	)
}

// ContextValue returns the entry's context as a template value.
func (e Entry) ContextValue() yartl.Value {
	return yartl.FromGo(e.Context)
}

// Render renders the entry's template against its own context.
func (e Entry) Render() (string, error) {
	out, err := e.Template.Render(e.ContextValue())
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", e.Name, err)
	}
	return out, nil
}

// Check renders the entry and compares the result with Expect.
func (e Entry) Check() error {
	if e.Expect == nil {
		return ErrNoExpectation
	}
	got, err := e.Render()
	if err != nil {
		return err
	}
	if got != *e.Expect {
		return fmt.Errorf("%s: output mismatch:\n got: %q\nwant: %q", e.Name, got, *e.Expect)
	}
	return nil
}

func decodeEntry(name string, content []byte) (Entry, error) {
	var e Entry
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&e); err != nil {
		return Entry{}, fmt.Errorf("failed to decode catalog entry %q: %w", name, err)
	}
	if e.Name == "" {
		e.Name = name
	}
	if err := e.Validate(); err != nil {
		return Entry{}, fmt.Errorf("invalid catalog entry %q: %w", name, err)
	}
	return e, nil
}

//go:embed *.yaml
var Files embed.FS

var (
	builtins = map[string]Entry{}

	mu          sync.RWMutex
	templateDir string
)

// SetTemplateDir sets a directory whose <name>.yaml files take precedence over
// the built-in entries. An empty dir disables overrides.
func SetTemplateDir(dir string) {
	mu.Lock()
	defer mu.Unlock()
	templateDir = dir
}

func overrideDir() string {
	mu.RLock()
	defer mu.RUnlock()
	return templateDir
}

func loadOverride(dir, name string) (Entry, bool, error) {
	for _, ext := range []string{".yaml", ".yml"} {
		content, err := os.ReadFile(filepath.Join(dir, name+ext))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return Entry{}, false, err
		}
		e, err := decodeEntry(name, content)
		if err != nil {
			return Entry{}, false, err
		}
		return e, true, nil
	}
	return Entry{}, false, nil
}

// Get returns the entry called name, preferring the override directory.
func Get(name string) (Entry, error) {
	if dir := overrideDir(); dir != "" {
		e, ok, err := loadOverride(dir, name)
		if err != nil {
			return Entry{}, err
		}
		if ok {
			slog.Debug("using catalog override", "name", name, "dir", dir)
			return e, nil
		}
	}
	if e, ok := builtins[name]; ok {
		return e, nil
	}
	return Entry{}, fmt.Errorf("template %q not found", name)
}

// List returns the names of all entries, sorted.
func List() ([]string, error) {
	seen := map[string]bool{}
	for name := range builtins {
		seen[name] = true
	}
	if dir := overrideDir(); dir != "" {
		entries, err := os.ReadDir(dir)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading template dir: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			ext := filepath.Ext(entry.Name())
			if ext == ".yaml" || ext == ".yml" {
				seen[strings.TrimSuffix(entry.Name(), ext)] = true
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

type loader struct{}

func (loader) Load(name string) (string, error) {
	e, err := Get(name)
	if err != nil {
		return "", yartl.ErrTemplateNotFound{Name: name}
	}
	return string(e.Template), nil
}

// Loader exposes the catalog's templates by entry name.
func Loader() yartl.Loader { return loader{} }

func init() {
	entries, err := Files.ReadDir(".")
	if err != nil {
		panic(err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		content, err := Files.ReadFile(name)
		if err != nil {
			panic(err)
		}
		key := strings.TrimSuffix(name, ".yaml")
		e, err := decodeEntry(key, content)
		if err != nil {
			panic(err)
		}
		builtins[key] = e
	}
}
