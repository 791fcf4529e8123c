package aioconf

import (
	"fmt"
	"strings"
)

// Validate checks a ConfigSpec for structural integrity before resolution:
// option names must be non-empty and unique within their level (section
// names count toward uniqueness), and a required option must carry a
// default. Callers should validate before resolving; the merge engine does
// not re-validate and will propagate nil for an invalid required option.
func Validate(spec *ConfigSpec) error {
	return validateLevel(spec, nil)
}

func validateLevel(spec *ConfigSpec, prefix []string) error {
	seen := make(map[string]bool, len(spec.Options))

	for _, opt := range spec.Options {
		path := dotted(prefix, opt.Name)
		if opt.Name == "" {
			return fmt.Errorf("option with empty name at level %q", strings.Join(prefix, "."))
		}
		if seen[opt.Name] {
			return &DuplicateOptionError{Path: path}
		}
		seen[opt.Name] = true

		if opt.Required && opt.Default == nil {
			return &MissingDefaultError{Path: path}
		}
	}

	for _, name := range spec.sectionNames() {
		if seen[name] {
			return &DuplicateOptionError{Path: dotted(prefix, name)}
		}
		if err := validateLevel(spec.Sections[name], append(prefix, name)); err != nil {
			return err
		}
	}

	return nil
}

func dotted(prefix []string, name string) string {
	if len(prefix) == 0 {
		return name
	}
	return strings.Join(prefix, ".") + "." + name
}
