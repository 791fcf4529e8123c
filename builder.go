package aioconf

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// ValidatorFunc validates a fully loaded Config. Validators run at the end
// of Build, after resolution.
type ValidatorFunc func(c *Config) error

// Builder provides a fluent interface for declaring and resolving a
// configuration in one chain.
type Builder struct {
	spec       *ConfigSpec
	specFile   string
	args       []string
	environ    map[string]string
	file       string
	logger     *zerolog.Logger
	validators []ValidatorFunc
}

// NewBuilder creates a builder with process arguments as the default CLI
// source. The environment defaults to the process environment unless
// WithEnviron injects a substitute.
func NewBuilder() *Builder {
	return &Builder{
		args: os.Args[1:],
	}
}

// WithSpec sets the configuration spec.
func (b *Builder) WithSpec(spec *ConfigSpec) *Builder {
	b.spec = spec
	return b
}

// WithSpecFile sets a spec JSON document to load. Ignored when WithSpec was
// also called.
func (b *Builder) WithSpecFile(path string) *Builder {
	b.specFile = path
	return b
}

// WithArgs sets the command-line arguments.
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithEnviron injects an environment map, replacing the process environment.
func (b *Builder) WithEnviron(environ map[string]string) *Builder {
	b.environ = environ
	return b
}

// WithFile sets the configuration file path.
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithLogger sets the logger used for resolution debug events.
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = &logger
	return b
}

// WithValidator adds a validation function run after loading. Multiple
// validators execute in the order they were added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build validates the spec, resolves all sources, and runs validators.
func (b *Builder) Build() (*Config, error) {
	spec := b.spec
	if spec == nil && b.specFile != "" {
		loaded, err := LoadSpecFile(b.specFile)
		if err != nil {
			return nil, err
		}
		spec = loaded
	}
	if spec == nil {
		return nil, ErrNoSpec
	}

	cfg, err := New(spec)
	if err != nil {
		return nil, err
	}
	if b.logger != nil {
		cfg.SetLogger(*b.logger)
	}

	if err := cfg.Load(LoadOptions{
		Args:     b.args,
		Environ:  b.environ,
		FilePath: b.file,
	}); err != nil {
		return nil, err
	}

	for _, validator := range b.validators {
		if err := validator(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	return cfg, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Config {
	cfg, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return cfg
}

// BuildAndScan builds and decodes the resolved values into the provided
// target struct pointer.
func (b *Builder) BuildAndScan(target any) error {
	cfg, err := b.Build()
	if err != nil {
		return err
	}
	return cfg.Scan("", target)
}
