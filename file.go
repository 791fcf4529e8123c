package aioconf

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// LoadFile extracts a partial value tree from a configuration file,
// dispatching on the file extension: .json, .yaml/.yml, .ini, and
// .toml/.tml. The file source is optional by design: an empty path, a
// missing file, or an unrecognized extension all yield an empty tree and no
// error. A recognized extension with malformed content is a FileFormatError.
//
// Parsed values are coerced against the spec recursively; keys the spec does
// not declare pass through untouched and are ignored by the merge.
func LoadFile(spec *ConfigSpec, path string) (map[string]any, error) {
	if path == "" {
		return map[string]any{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var raw map[string]any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		raw, err = parseJSONTree(data)
		if err != nil {
			return nil, &FileFormatError{Path: path, Format: "json", Err: err}
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &FileFormatError{Path: path, Format: "yaml", Err: err}
		}
	case ".ini":
		raw, err = parseINITree(data)
		if err != nil {
			return nil, &FileFormatError{Path: path, Format: "ini", Err: err}
		}
	case ".toml", ".tml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, &FileFormatError{Path: path, Format: "toml", Err: err}
		}
	default:
		return map[string]any{}, nil
	}

	if raw == nil {
		raw = map[string]any{}
	}
	return coerceTree(spec, raw, nil)
}

// parseJSONTree decodes a JSON object with number precision preserved, so
// integer options are not forced through float64.
func parseJSONTree(data []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	tree := make(map[string]any)
	if err := decoder.Decode(&tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// parseINITree converts INI content into a value tree: keys of the default
// section become root entries, each named section becomes one nested map.
// INI offers exactly one level of nesting, matching its native shape.
func parseINITree(data []byte) (map[string]any, error) {
	file, err := ini.Load(data)
	if err != nil {
		return nil, err
	}

	tree := make(map[string]any)
	for _, section := range file.Sections() {
		keys := section.KeysHash()
		if section.Name() == ini.DefaultSection {
			for key, value := range keys {
				tree[key] = value
			}
			continue
		}
		if len(keys) == 0 {
			continue
		}
		sub := make(map[string]any, len(keys))
		for key, value := range keys {
			sub[key] = value
		}
		tree[section.Name()] = sub
	}
	return tree, nil
}

// coerceTree applies option kinds to a freshly parsed tree. Section keys
// recurse; option keys coerce; anything else passes through.
func coerceTree(spec *ConfigSpec, data map[string]any, prefix []string) (map[string]any, error) {
	out := make(map[string]any, len(data))

	for key, value := range data {
		if sub, isSection := spec.Sections[key]; isSection {
			if subData, isMap := toStringMap(value); isMap {
				coerced, err := coerceTree(sub, subData, append(prefix, key))
				if err != nil {
					return nil, err
				}
				out[key] = coerced
				continue
			}
		}

		if opt := spec.Lookup(key); opt != nil {
			coerced, err := opt.Kind.Coerce(value)
			if err != nil {
				return nil, &InvalidValueError{
					Path: dotted(prefix, key),
					Raw:  fmt.Sprintf("%v", value),
					Kind: opt.Kind,
					Err:  err,
				}
			}
			out[key] = coerced
			continue
		}

		out[key] = value
	}

	return out, nil
}

// toStringMap normalizes decoded section values. YAML and JSON both decode
// objects as map[string]any; TOML may produce map[string]any as well, so a
// single assertion suffices.
func toStringMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}
