package aioconf

import (
	"sort"
	"strings"
)

// OptionSpec describes one configurable value: its name, kind, default, the
// sources that may supply it, and whether resolution must yield a value.
// It is pure data; Validate checks structural integrity.
type OptionSpec struct {
	// Name is the option's identifier, unique within its enclosing
	// ConfigSpec level.
	Name string

	// Kind governs coercion during extraction.
	Kind Kind

	// Default is used when no source supplies the option. May be nil only
	// if the option is not Required.
	Default any

	// Env is the name of an environment variable that supplies the raw
	// value. Empty means no environment binding.
	Env string

	// CLI holds one or more command-line flag spellings, e.g. "--port" and
	// "-p". All spellings are aliases for the same option.
	CLI []string

	// Required marks options that must resolve to a non-nil value.
	Required bool

	// Description documents the option. Not semantically load-bearing.
	Description string
}

// Option starts a fluent OptionSpec declaration.
func Option(name string, kind Kind) *OptionSpec {
	return &OptionSpec{Name: name, Kind: kind}
}

// WithDefault sets the default value, normalized to the kind's canonical
// scalar type when possible. Values that cannot be coerced are kept as
// declared.
func (o *OptionSpec) WithDefault(v any) *OptionSpec {
	if coerced, err := o.Kind.Coerce(v); err == nil {
		o.Default = coerced
	} else {
		o.Default = v
	}
	return o
}

// WithEnv binds the option to an environment variable name.
func (o *OptionSpec) WithEnv(name string) *OptionSpec {
	o.Env = name
	return o
}

// WithCLI binds the option to one or more flag spellings.
func (o *OptionSpec) WithCLI(flags ...string) *OptionSpec {
	o.CLI = append(o.CLI, flags...)
	return o
}

// Require marks the option as required.
func (o *OptionSpec) Require() *OptionSpec {
	o.Required = true
	return o
}

// WithDescription attaches documentation text.
func (o *OptionSpec) WithDescription(text string) *OptionSpec {
	o.Description = text
	return o
}

// ConfigSpec is an ordered collection of OptionSpecs, optionally organized
// into named nested sections, each itself a ConfigSpec. A spec is constructed
// once (programmatically or from a JSON document) and read-only thereafter:
// every extractor and the merge engine walk it, none mutate it.
type ConfigSpec struct {
	// Options in declaration order. Order matters for CLI flag
	// registration, not for merge semantics.
	Options []*OptionSpec

	// Sections maps section names to nested specs.
	Sections map[string]*ConfigSpec
}

// NewSpec creates an empty ConfigSpec.
func NewSpec() *ConfigSpec {
	return &ConfigSpec{}
}

// Add appends options to this level and returns the spec for chaining.
func (s *ConfigSpec) Add(opts ...*OptionSpec) *ConfigSpec {
	s.Options = append(s.Options, opts...)
	return s
}

// Section returns the named nested spec, creating it if absent.
func (s *ConfigSpec) Section(name string) *ConfigSpec {
	if s.Sections == nil {
		s.Sections = make(map[string]*ConfigSpec)
	}
	sub, ok := s.Sections[name]
	if !ok {
		sub = NewSpec()
		s.Sections[name] = sub
	}
	return sub
}

// Lookup returns the option with the given name at this level, or nil.
func (s *ConfigSpec) Lookup(name string) *OptionSpec {
	for _, opt := range s.Options {
		if opt.Name == name {
			return opt
		}
	}
	return nil
}

// sectionNames returns section names in sorted order for deterministic
// traversal.
func (s *ConfigSpec) sectionNames() []string {
	names := make([]string, 0, len(s.Sections))
	for name := range s.Sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// walk visits every option depth-first, carrying the section path. It is the
// single traversal shared by validation, CLI registration, environment
// extraction, and merging. Returning an error stops the walk.
func (s *ConfigSpec) walk(prefix []string, fn func(path []string, opt *OptionSpec) error) error {
	for _, opt := range s.Options {
		path := append(append([]string{}, prefix...), opt.Name)
		if err := fn(path, opt); err != nil {
			return err
		}
	}
	for _, name := range s.sectionNames() {
		if err := s.Sections[name].walk(append(append([]string{}, prefix...), name), fn); err != nil {
			return err
		}
	}
	return nil
}

// Walk visits every option in the spec tree depth-first. The path is the
// option's dotted location, e.g. "database.port".
func (s *ConfigSpec) Walk(fn func(path string, opt *OptionSpec) error) error {
	return s.walk(nil, func(path []string, opt *OptionSpec) error {
		return fn(strings.Join(path, "."), opt)
	})
}
