package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"

	"calfmt/internal/format"
	"calfmt/internal/iso"
	"calfmt/internal/pattern"
	"calfmt/internal/trace"
)

// FileNames are the catalog names Find looks for, in order.
var FileNames = []string{"calfmt.toml", "calfmt.yaml", "calfmt.yml"}

// Defaults apply to every entry of a catalog.
type Defaults struct {
	Locale        string `toml:"locale" yaml:"locale"`
	CaseSensitive *bool  `toml:"case_sensitive" yaml:"case_sensitive"`
	Strict        *bool  `toml:"strict" yaml:"strict"`
	Zone          string `toml:"zone" yaml:"zone"`
}

// FormatCase is an RFC 3339 instant and the text it must format to.
type FormatCase struct {
	At   string `toml:"at" yaml:"at"`
	Want string `toml:"want" yaml:"want"`
}

// Entry is one named pattern.
type Entry struct {
	Name      string       `toml:"-" yaml:"-"`
	Pattern   string       `toml:"pattern" yaml:"pattern"`
	Canonical string       `toml:"canonical" yaml:"canonical"`
	Samples   []string     `toml:"samples" yaml:"samples"`
	Formats   []FormatCase `toml:"formats" yaml:"formats"`
}

type document struct {
	Defaults Defaults         `toml:"defaults" yaml:"defaults"`
	Patterns map[string]Entry `toml:"patterns" yaml:"patterns"`
}

// Catalog is a loaded catalog file.
type Catalog struct {
	Path     string
	Defaults Defaults
	entries  []Entry
}

// Find walks up from startDir looking for a catalog file.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load reads a catalog; the extension selects TOML or YAML.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	kind := "toml"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		kind = "yaml"
	}
	c, err := Decode(data, kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.Path = path
	return c, nil
}

// Decode parses catalog data in the given syntax ("toml" or "yaml").
// Unknown keys are rejected.
func Decode(data []byte, kind string) (*Catalog, error) {
	var doc document
	switch kind {
	case "toml":
		meta, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&doc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
		}
	case "yaml":
		if err := yaml.UnmarshalWithOptions(data, &doc, yaml.DisallowUnknownField()); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown catalog syntax %q", kind)
	}

	c := &Catalog{Defaults: doc.Defaults, entries: make([]Entry, 0, len(doc.Patterns))}
	for name, e := range doc.Patterns {
		if e.Pattern == "" {
			return nil, fmt.Errorf("pattern %q: missing pattern", name)
		}
		e.Name = name
		c.entries = append(c.entries, e)
	}
	slices.SortFunc(c.entries, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) })
	if c.Defaults.Zone != "" {
		if _, err := iso.NewZones().Load(c.Defaults.Zone); err != nil {
			return nil, fmt.Errorf("defaults.zone: %w", err)
		}
	}
	return c, nil
}

// Entries returns the entries sorted by name.
func (c *Catalog) Entries() []Entry { return slices.Clone(c.entries) }

// Names returns the entry names in order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Name
	}
	return out
}

// Lookup returns the entry with the given name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	i, ok := slices.BinarySearchFunc(c.entries, name, func(e Entry, n string) int { return strings.Compare(e.Name, n) })
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Resolve expands "@name" references; other text is returned unchanged.
// A nil catalog resolves nothing.
func (c *Catalog) Resolve(ref string) (string, error) {
	name, ok := strings.CutPrefix(ref, "@")
	if !ok {
		return ref, nil
	}
	if c == nil {
		return "", fmt.Errorf("pattern reference %q needs a catalog (calfmt.toml)", ref)
	}
	e, ok := c.Lookup(name)
	if !ok {
		return "", fmt.Errorf("pattern %q is not in %s", name, c.Path)
	}
	return e.Pattern, nil
}

// Location returns the default zone, or UTC.
func (d Defaults) Location() *time.Location {
	if d.Zone == "" {
		return time.UTC
	}
	loc, err := iso.NewZones().Load(d.Zone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Compile compiles src with the defaults applied to the formatter.
func (d Defaults) Compile(src string, tracer trace.Tracer) (*format.Formatter, error) {
	f, err := pattern.Compile(src, pattern.Options{Locale: d.Locale, Tracer: tracer})
	if err != nil {
		return nil, err
	}
	caseSensitive, strict := true, true
	if d.CaseSensitive != nil {
		caseSensitive = *d.CaseSensitive
	}
	if d.Strict != nil {
		strict = *d.Strict
	}
	return f.WithParseDefaults(caseSensitive, strict), nil
}
