package aioconf

import "strings"

// ParseEnv extracts a partial value tree from an environment map. Only
// options with an Env binding that is actually present in the map contribute
// an entry; unset variables are "no contribution", never placeholders.
//
// The environment is an explicit parameter rather than an implicit process
// read; pass EnvironMap() for the real environment or any map in tests.
// Malformed numeric values fail loudly with InvalidValueError.
func ParseEnv(spec *ConfigSpec, environ map[string]string) (map[string]any, error) {
	result := make(map[string]any)

	err := spec.walk(nil, func(path []string, opt *OptionSpec) error {
		if opt.Env == "" {
			return nil
		}
		raw, present := environ[opt.Env]
		if !present {
			return nil
		}

		value, err := opt.Kind.Parse(raw)
		if err != nil {
			return &InvalidValueError{
				Path: strings.Join(path, "."),
				Raw:  raw,
				Kind: opt.Kind,
				Err:  err,
			}
		}
		setNested(result, path, value)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
