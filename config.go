package aioconf

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
)

// Config resolves a ConfigSpec against its sources and owns the resulting
// value tree. The spec is validated on construction and never mutated; each
// Load produces a fresh tree. A Config is not safe for concurrent mutation;
// the spec itself may be shared across instances freely.
type Config struct {
	spec   *ConfigSpec
	values map[string]any
	log    zerolog.Logger
}

// New validates the spec and returns a Config seeded from defaults.
func New(spec *ConfigSpec) (*Config, error) {
	if err := Validate(spec); err != nil {
		return nil, err
	}

	return &Config{
		spec:   spec,
		values: Merge(spec, nil, nil, nil),
		log:    zerolog.Nop(),
	}, nil
}

// LoadSpec builds a Config from a spec JSON document on disk.
func LoadSpec(path string) (*Config, error) {
	spec, err := LoadSpecFile(path)
	if err != nil {
		return nil, err
	}
	return New(spec)
}

// LoadOptions carries the raw sources for one resolution call.
type LoadOptions struct {
	// Args are command-line arguments, e.g. os.Args[1:].
	Args []string

	// Environ is the environment map. nil snapshots the process
	// environment via EnvironMap; pass an explicit map in tests.
	Environ map[string]string

	// FilePath is an optional configuration file. Empty or missing paths
	// contribute nothing.
	FilePath string
}

// Load resolves the spec against all four sources and replaces the value
// tree. Any extractor error aborts the whole call; there is no
// partial-success mode.
func (c *Config) Load(opts LoadOptions) error {
	environ := opts.Environ
	if environ == nil {
		environ = EnvironMap()
	}

	cli, err := ParseCLI(c.spec, opts.Args)
	if err != nil {
		return err
	}

	env, err := ParseEnv(c.spec, environ)
	if err != nil {
		return err
	}

	file, err := LoadFile(c.spec, opts.FilePath)
	if err != nil {
		return err
	}

	c.values = Merge(c.spec, cli, env, file)
	c.log.Debug().
		Str("file", opts.FilePath).
		Int("cli_entries", len(cli)).
		Int("env_entries", len(env)).
		Msg("configuration resolved")
	return nil
}

// Spec returns the underlying ConfigSpec.
func (c *Config) Spec() *ConfigSpec {
	return c.spec
}

// SetLogger installs a logger used for resolution debug events.
func (c *Config) SetLogger(logger zerolog.Logger) {
	c.log = logger
}

// Values returns a deep copy of the resolved value tree, owned by the
// caller.
func (c *Config) Values() map[string]any {
	return deepCopyTree(c.values)
}

// Get retrieves a resolved value by dotted path (e.g. "database.port"). The
// second result is false when the path does not exist in the tree.
func (c *Config) Get(path string) (any, bool) {
	return navigate(c.values, path)
}

// String retrieves a string value by path, converting common scalar types.
func (c *Config) String(path string) (string, error) {
	val, found := c.Get(path)
	if !found {
		return "", fmt.Errorf("path not resolved: %s", path)
	}
	if val == nil {
		return "", nil
	}

	if strVal, ok := val.(string); ok {
		return strVal, nil
	}

	switch v := val.(type) {
	case fmt.Stringer:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), nil
	}
	return "", fmt.Errorf("cannot convert type %T to string for path %s", val, path)
}

// Int64 retrieves an integer value by path, converting numeric types and
// parsable strings.
func (c *Config) Int64(path string) (int64, error) {
	val, found := c.Get(path)
	if !found {
		return 0, fmt.Errorf("path not resolved: %s", path)
	}
	if val == nil {
		return 0, fmt.Errorf("value for path %s is nil, cannot convert to int64", path)
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Float32, reflect.Float64:
		return int64(rv.Float()), nil
	case reflect.String:
		i, err := strconv.ParseInt(rv.String(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert string %q to int64 for path %s: %w", rv.String(), path, err)
		}
		return i, nil
	case reflect.Bool:
		if rv.Bool() {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("cannot convert type %T to int64 for path %s", val, path)
}

// Float64 retrieves a float value by path, converting numeric types and
// parsable strings.
func (c *Config) Float64(path string) (float64, error) {
	val, found := c.Get(path)
	if !found {
		return 0, fmt.Errorf("path not resolved: %s", path)
	}
	if val == nil {
		return 0, fmt.Errorf("value for path %s is nil, cannot convert to float64", path)
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.String:
		f, err := strconv.ParseFloat(rv.String(), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert string %q to float64 for path %s: %w", rv.String(), path, err)
		}
		return f, nil
	}
	return 0, fmt.Errorf("cannot convert type %T to float64 for path %s", val, path)
}

// Bool retrieves a boolean value by path, converting strings through the
// boolean token set and numbers through non-zero truthiness.
func (c *Config) Bool(path string) (bool, error) {
	val, found := c.Get(path)
	if !found {
		return false, fmt.Errorf("path not resolved: %s", path)
	}
	if val == nil {
		return false, fmt.Errorf("value for path %s is nil, cannot convert to bool", path)
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		return trueTokens[strings.ToLower(rv.String())], nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0, nil
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0, nil
	}
	return false, fmt.Errorf("cannot convert type %T to bool for path %s", val, path)
}

// Scan decodes the resolved values under basePath into the target struct or
// map. The target must be a non-nil pointer; fields map through "json" tags.
func (c *Config) Scan(basePath string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("target of Scan must be a non-nil pointer, got %T", target)
	}

	section, found := navigate(c.values, basePath)
	if !found {
		section = map[string]any{}
	}

	sectionMap, ok := section.(map[string]any)
	if !ok {
		return fmt.Errorf("path %q refers to a value, not a section (type %T)", basePath, section)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(sectionMap); err != nil {
		return fmt.Errorf("failed to scan section %q into %T: %w", basePath, target, err)
	}
	return nil
}

// SaveINI writes the resolved value tree to an INI file atomically.
func (c *Config) SaveINI(path string) error {
	data, err := WriteINI(c.values)
	if err != nil {
		return err
	}
	return atomicWriteFile(path, data)
}
