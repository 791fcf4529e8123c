package aioconf

import (
	"bytes"
	"fmt"
	"sort"

	"gopkg.in/ini.v1"
)

// WriteINI renders a resolved value tree as INI text. Scalars at the tree
// root are written under the INI default section; each nested section
// becomes its own INI section with stringified values. Output is sorted for
// determinism.
//
// INI has no native multi-level nesting, so a tree nested deeper than one
// section level returns ErrINIDepth rather than silently flattening.
func WriteINI(resolved map[string]any) ([]byte, error) {
	file := ini.Empty()

	rootKeys, sectionKeys := splitKeys(resolved)

	root := file.Section(ini.DefaultSection)
	for _, key := range rootKeys {
		if _, err := root.NewKey(key, formatScalar(resolved[key])); err != nil {
			return nil, fmt.Errorf("failed to write key %q: %w", key, err)
		}
	}

	for _, name := range sectionKeys {
		section, err := file.NewSection(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create section %q: %w", name, err)
		}

		values := resolved[name].(map[string]any)
		childKeys, deeper := splitKeys(values)
		if len(deeper) > 0 {
			return nil, fmt.Errorf("section %q: %w", name, ErrINIDepth)
		}
		for _, key := range childKeys {
			if _, err := section.NewKey(key, formatScalar(values[key])); err != nil {
				return nil, fmt.Errorf("failed to write key %q in section %q: %w", key, name, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := file.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to render ini: %w", err)
	}
	return buf.Bytes(), nil
}

// splitKeys partitions a tree level into sorted scalar keys and sorted
// nested-map keys.
func splitKeys(tree map[string]any) (scalars, sections []string) {
	for key, value := range tree {
		if _, isMap := value.(map[string]any); isMap {
			sections = append(sections, key)
		} else {
			scalars = append(scalars, key)
		}
	}
	sort.Strings(scalars)
	sort.Strings(sections)
	return scalars, sections
}
